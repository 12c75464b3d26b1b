package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*(\w+)\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+(\w+)\[(\d+)\]`)
)

// Gate is one operation placed on the circuit. Rotation gates carry their
// angle in Params[0]; controlled gates carry the control wire in Control.
type Gate struct {
	Type    string
	Target  int
	Control int // -1 if not a controlled gate
	Step    int // position in circuit timeline
	Params  []float64
}

// IsRotation reports whether the gate is a parameterized rotation,
// controlled or not.
func (g Gate) IsRotation() bool {
	switch g.Type {
	case "RX", "RY", "RZ", "CRX", "CRY", "CRZ", "P":
		return true
	}
	return false
}

// gateReferences reports whether the gate touches the given qubit.
func (g Gate) gateReferences(qubit int) bool {
	return g.Target == qubit || g.Control == qubit
}

// Circuit holds the gate sequence under construction.
type Circuit struct {
	NumQubits int
	Gates     []Gate
	MaxSteps  int
}

// NewCircuit returns an empty circuit over the given number of qubits.
func NewCircuit(numQubits int) *Circuit {
	return &Circuit{NumQubits: numQubits}
}

// AddGate appends an unparameterized gate to the circuit.
func (c *Circuit) AddGate(gateType string, target, step int, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{
		Type:    gateType,
		Target:  target,
		Control: ctrl,
		Step:    step,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddParameterizedGate appends a rotation gate, optionally controlled.
func (c *Circuit) AddParameterizedGate(gateType string, target, step int, params []float64, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{
		Type:    gateType,
		Target:  target,
		Control: ctrl,
		Step:    step,
		Params:  params,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddBarrier appends a barrier spanning all qubits at the given step.
func (c *Circuit) AddBarrier(step int) {
	c.Gates = append(c.Gates, Gate{
		Type:    "BARRIER",
		Target:  -1,
		Control: -1,
		Step:    step,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// GetGateAt returns the gate at the given step and qubit, or nil.
func (c *Circuit) GetGateAt(step, qubit int) *Gate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.gateReferences(qubit) {
			return g
		}
	}
	return nil
}

// RotationGateCount returns how many elementary rotation gates the circuit
// carries.
func (c *Circuit) RotationGateCount() int {
	n := 0
	for _, g := range c.Gates {
		if g.IsRotation() {
			n++
		}
	}
	return n
}

// MeasureAll appends a measurement on every register qubit, one step each,
// after the current last step.
func (c *Circuit) MeasureAll() {
	step := c.MaxSteps
	for q := 0; q < c.NumQubits; q++ {
		c.AddGate("MEASURE", q, step)
		step++
	}
}

// ToQASM generates OpenQASM 2.0 output from the circuit.
func (c *Circuit) ToQASM() string {
	maxQubit := -1
	hasMeasure := false
	for _, g := range c.Gates {
		if g.Target > maxQubit {
			maxQubit = g.Target
		}
		if g.Control > maxQubit {
			maxQubit = g.Control
		}
		if g.Type == "MEASURE" {
			hasMeasure = true
		}
	}
	numQubits := max(maxQubit+1, c.NumQubits, 1)

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	if hasMeasure {
		fmt.Fprintf(&sb, "creg c[%d];\n", numQubits)
	}
	sb.WriteString("\n")

	for step := 0; step < c.MaxSteps; step++ {
		for _, g := range c.Gates {
			if g.Step != step {
				continue
			}
			switch {
			case g.Type == "BARRIER":
				wires := make([]string, numQubits)
				for q := range wires {
					wires[q] = fmt.Sprintf("q[%d]", q)
				}
				fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(wires, ", "))
			case g.Type == "MEASURE":
				fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", g.Target, g.Target)
			case g.Control >= 0 && len(g.Params) > 0:
				fmt.Fprintf(&sb, "%s(%s) q[%d], q[%d];\n",
					strings.ToLower(g.Type), formatParam(g.Params[0]), g.Control, g.Target)
			case g.Control >= 0:
				fmt.Fprintf(&sb, "%s q[%d], q[%d];\n", strings.ToLower(g.Type), g.Control, g.Target)
			case len(g.Params) > 0:
				fmt.Fprintf(&sb, "%s(%s) q[%d];\n",
					strings.ToLower(g.Type), formatParam(g.Params[0]), g.Target)
			default:
				fmt.Fprintf(&sb, "%s q[%d];\n", strings.ToLower(g.Type), g.Target)
			}
		}
	}

	return sb.String()
}

// ParseQASM parses QASM text and rebuilds the circuit from it. Recognizes the
// gate surface this tool works with: single-qubit gates, rotation gates with
// a parameter, controlled gates (plain and rotation), measure, barrier.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Gates = nil
	c.MaxSteps = 0
	step := 0
	declared := false

	for _, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			if m := qregRegex.FindStringSubmatch(line); len(m) > 2 {
				n, _ := strconv.Atoi(m[2])
				c.NumQubits = n
				declared = true
			}
			continue
		}
		if strings.HasPrefix(line, "creg") {
			continue
		}
		if strings.HasPrefix(line, "barrier") {
			c.AddBarrier(step)
			step++
			continue
		}

		if m := measureRegex.FindStringSubmatch(line); m != nil {
			target, _ := strconv.Atoi(m[1])
			c.AddGate("MEASURE", target, step)
			step++
			continue
		}

		// Controlled rotations: crx/cry/crz(theta) q[c], q[t]
		if m := twoQubitParamRegex.FindStringSubmatch(line); m != nil {
			gateType := strings.ToUpper(m[1])
			param, ok := parseParamExpr(m[2])
			if !ok {
				return fmt.Errorf("parse qasm: bad parameter %q in %q", m[2], line)
			}
			control, _ := strconv.Atoi(m[3])
			target, _ := strconv.Atoi(m[4])
			c.AddParameterizedGate(gateType, target, step, []float64{param}, control)
			step++
			continue
		}

		// Plain two-qubit gates: cx/cz q[c], q[t]
		if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
			gateType := strings.ToUpper(m[1])
			control, _ := strconv.Atoi(m[2])
			target, _ := strconv.Atoi(m[3])
			c.AddGate(gateType, target, step, control)
			step++
			continue
		}

		// Single-qubit rotations: rx/ry/rz/p(theta) q[t]
		if m := singleGateParamRegex.FindStringSubmatch(line); m != nil {
			gateType := strings.ToUpper(m[1])
			param, ok := parseParamExpr(m[2])
			if !ok {
				return fmt.Errorf("parse qasm: bad parameter %q in %q", m[2], line)
			}
			target, _ := strconv.Atoi(m[3])
			c.AddParameterizedGate(gateType, target, step, []float64{param})
			step++
			continue
		}

		if m := singleGateRegex.FindStringSubmatch(line); m != nil {
			gateType := strings.ToUpper(m[1])
			target, _ := strconv.Atoi(m[2])
			c.AddGate(gateType, target, step)
			step++
			continue
		}
	}

	// Gates must stay inside the register: a declared qreg bounds them, and
	// without one the register grows to cover whatever the gates reference.
	// Simulation indexes the statevector by these wire numbers.
	maxQubit := -1
	for _, g := range c.Gates {
		maxQubit = max(maxQubit, g.Target, g.Control)
	}
	if declared && maxQubit >= c.NumQubits {
		return fmt.Errorf("parse qasm: gate references q[%d] beyond register of size %d", maxQubit, c.NumQubits)
	}
	if maxQubit >= c.NumQubits {
		c.NumQubits = maxQubit + 1
	}

	return nil
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *Gate
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
	isBarrier   bool
}

// getCellInfo returns rendering information for the cell at (step, qubit).
func (c *Circuit) getCellInfo(step, qubit int) cellInfo {
	var info cellInfo

	gate := c.GetGateAt(step, qubit)
	if gate != nil {
		info.gate = gate
		info.isControl = gate.Control == qubit
		info.isTarget = gate.Target == qubit && gate.Control >= 0
	}

	for i := range c.Gates {
		if c.Gates[i].Step == step && c.Gates[i].Type == "BARRIER" {
			info.isBarrier = true
			if info.gate == nil {
				info.gate = &c.Gates[i]
			}
			break
		}
	}

	// Vertical connector between control and target wires.
	for _, g := range c.Gates {
		if g.Step != step || g.Control < 0 {
			continue
		}
		minQ, maxQ := min(g.Control, g.Target), max(g.Control, g.Target)
		if qubit >= minQ && qubit <= maxQ {
			if qubit > minQ {
				info.vertAbove = true
			}
			if qubit < maxQ {
				info.vertBelow = true
			}
			if qubit > minQ && qubit < maxQ && info.gate == nil {
				info.passThrough = true
			}
		}
	}

	return info
}
