package main

import (
	"math"
	"strings"
	"testing"
)

func TestPreparedCircuitQASM(t *testing.T) {
	c := NewCircuit(3)
	if _, err := PrepareGaussianState(c, DefaultGaussianParams(), 6, 3); err != nil {
		t.Fatalf("PrepareGaussianState error: %v", err)
	}

	qasm := c.ToQASM()

	if !strings.Contains(qasm, "qreg q[3];") {
		t.Errorf("expected 'qreg q[3];' in QASM, got:\n%s", qasm)
	}
	// Level 0 encodes 0.1114387... as 000111, giving the pi/4, pi/8, pi/16
	// rotations on the first wire.
	for _, want := range []string{"ry(pi/4) q[0];", "ry(pi/8) q[0];", "ry(pi/16) q[0];"} {
		if !strings.Contains(qasm, want) {
			t.Errorf("expected %q in QASM, got:\n%s", want, qasm)
		}
	}
	// Level 1 keeps a single controlled rotation.
	if !strings.Contains(qasm, "cry(pi/16) q[0], q[1];") {
		t.Errorf("expected 'cry(pi/16) q[0], q[1];' in QASM, got:\n%s", qasm)
	}
}

func TestRoundTripQASM(t *testing.T) {
	c := NewCircuit(3)
	if _, err := PrepareGaussianState(c, DefaultGaussianParams(), 6, 3); err != nil {
		t.Fatalf("PrepareGaussianState error: %v", err)
	}
	c.MeasureAll()

	qasm := c.ToQASM()
	c2 := Circuit{}
	if err := c2.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}

	if c2.NumQubits != c.NumQubits {
		t.Errorf("round-trip qubits: got %d, want %d", c2.NumQubits, c.NumQubits)
	}
	if len(c2.Gates) != len(c.Gates) {
		t.Fatalf("round-trip gates: got %d, want %d", len(c2.Gates), len(c.Gates))
	}
	for i, g := range c.Gates {
		g2 := c2.Gates[i]
		if g2.Type != g.Type || g2.Target != g.Target || g2.Control != g.Control {
			t.Errorf("gate %d: got %s t=%d c=%d, want %s t=%d c=%d",
				i, g2.Type, g2.Target, g2.Control, g.Type, g.Target, g.Control)
		}
		if len(g.Params) > 0 {
			if len(g2.Params) == 0 {
				t.Errorf("gate %d: lost parameter", i)
			} else if math.Abs(g2.Params[0]-g.Params[0]) > 1e-10 {
				t.Errorf("gate %d param: got %g, want %g", i, g2.Params[0], g.Params[0])
			}
		}
	}
}

func TestMeasureAllQASM(t *testing.T) {
	c := NewCircuit(2)
	c.AddGate("H", 0, 0)
	c.MeasureAll()

	qasm := c.ToQASM()
	for _, want := range []string{"creg c[2];", "measure q[0] -> c[0];", "measure q[1] -> c[1];"} {
		if !strings.Contains(qasm, want) {
			t.Errorf("expected %q in QASM, got:\n%s", want, qasm)
		}
	}
}

func TestParseQASMRejectsOutOfRangeQubit(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[1];

ry(pi/2) q[3];`

	c := Circuit{}
	if err := c.ParseQASM(qasm); err == nil {
		t.Fatal("expected error for gate beyond declared register, got nil")
	}

	// Controls are wire references too.
	c2 := Circuit{}
	if err := c2.ParseQASM("qreg q[2];\ncry(pi/4) q[5], q[1];"); err == nil {
		t.Fatal("expected error for control beyond declared register, got nil")
	}
}

func TestParseQASMGrowsUndeclaredRegister(t *testing.T) {
	// Without a qreg line the register covers whatever the gates reference,
	// so simulation stays in bounds.
	c := Circuit{}
	if err := c.ParseQASM("ry(pi/2) q[3];"); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	if c.NumQubits != 4 {
		t.Errorf("NumQubits = %d, want 4", c.NumQubits)
	}

	state := SimulateCircuit(&c)
	if got := len(state.Amplitudes); got != 16 {
		t.Errorf("statevector length = %d, want 16", got)
	}
}

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"0", 0, true},
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"pi/16", math.Pi / 16, true},
		{"pi/32", math.Pi / 32, true},
		{"2pi", 2 * math.Pi, true},
		{"2*pi", 2 * math.Pi, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"-pi", -math.Pi, true},
		{"-pi/2", -math.Pi / 2, true},
		{" pi / 2 ", math.Pi / 2, true},
		{"", 0, false},
		{"abc", 0, false},
		{"pi/0", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseParamExpr(tt.input)
		if ok != tt.ok {
			t.Errorf("parseParamExpr(%q): ok=%v, want ok=%v", tt.input, ok, tt.ok)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("parseParamExpr(%q) = %g, want %g", tt.input, got, tt.want)
		}
	}
}

func TestFormatParam(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 16, "pi/16"},
		{math.Pi / 1024, "pi/1024"},
		{2 * math.Pi, "2*pi"},
		{-math.Pi / 4, "-pi/4"},
		{math.Pi / 3, "pi/3"},
		{3 * math.Pi / 4, "3*pi/4"},
		{1.5, "1.5"},
		{0, "0"},
	}

	for _, tt := range tests {
		got := formatParam(tt.input)
		if got != tt.want {
			t.Errorf("formatParam(%g) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRotationGateCount(t *testing.T) {
	c := NewCircuit(2)
	c.AddGate("H", 0, 0)
	c.AddParameterizedGate("RY", 0, 1, []float64{math.Pi / 4})
	c.AddParameterizedGate("CRY", 1, 2, []float64{math.Pi / 8}, 0)
	c.MeasureAll()

	if got := c.RotationGateCount(); got != 2 {
		t.Errorf("RotationGateCount = %d, want 2", got)
	}
}
