package main

import (
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/floats"
)

type Complex = complex128

// StateVector holds the amplitudes of an n-qubit register. Basis state i has
// qubit q in the bit (i>>q)&1, matching the circuit's wire numbering.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]Complex, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// ApplyGate dispatches a gate from the circuit model onto the state. Control
// is -1 for uncontrolled gates.
func (s *StateVector) ApplyGate(gateType string, target, control int, params []float64) {
	theta := 0.0
	if len(params) > 0 {
		theta = params[0]
	}
	switch gateType {
	case "H":
		s.applyH(target)
	case "X":
		s.applyX(target)
	case "RX":
		s.applyRX(target, -1, theta)
	case "RY":
		s.applyRY(target, -1, theta)
	case "RZ", "P":
		s.applyRZ(target, -1, theta)
	case "CRX":
		s.applyRX(target, control, theta)
	case "CRY":
		s.applyRY(target, control, theta)
	case "CRZ":
		s.applyRZ(target, control, theta)
	case "CX":
		if control >= 0 {
			s.applyCX(control, target)
		}
	case "CZ":
		if control >= 0 {
			s.applyCZ(control, target)
		}
	case "MEASURE", "BARRIER":
	}
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = hFactor * (s.Amplitudes[i] + s.Amplitudes[j])
			newAmps[j] = hFactor * (s.Amplitudes[i] - s.Amplitudes[j])
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// applyRX rotates target by theta about X, restricted to the control qubit's
// |1> subspace when control >= 0.
func (s *StateVector) applyRX(target, control int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << target
	cBit := 0
	if control >= 0 {
		cBit = 1 << control
	}
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	newAmps := make([]Complex, n)
	copy(newAmps, s.Amplitudes)
	for i := 0; i < n; i++ {
		if i&bit == 0 && i&cBit == cBit {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] + js*s.Amplitudes[j]
			newAmps[j] = js*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

// applyRY rotates target by theta about Y, restricted to the control qubit's
// |1> subspace when control >= 0. RY(theta)|0> = cos(theta/2)|0> +
// sin(theta/2)|1>.
func (s *StateVector) applyRY(target, control int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << target
	cBit := 0
	if control >= 0 {
		cBit = 1 << control
	}
	c := complex(math.Cos(theta/2), 0)
	s_ := complex(math.Sin(theta/2), 0)
	newAmps := make([]Complex, n)
	copy(newAmps, s.Amplitudes)
	for i := 0; i < n; i++ {
		if i&bit == 0 && i&cBit == cBit {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] - s_*s.Amplitudes[j]
			newAmps[j] = s_*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyRZ(target, control int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << target
	cBit := 0
	if control >= 0 {
		cBit = 1 << control
	}
	phase := cmplx.Exp(complex(0, theta/2))
	for i := 0; i < n; i++ {
		if i&cBit != cBit {
			continue
		}
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

// BasisProbabilities returns |amp|^2 per basis state.
func (s *StateVector) BasisProbabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, amp := range s.Amplitudes {
		probs[i] = real(amp * cmplx.Conj(amp))
	}
	return probs
}

// Norm returns the Euclidean norm of the amplitude vector; 1 for any state
// produced by unitary gates.
func (s *StateVector) Norm() float64 {
	return math.Sqrt(floats.Sum(s.BasisProbabilities()))
}

// MarginalProbability returns P(qubit q = 0).
func (s *StateVector) MarginalProbability(q int) float64 {
	bit := 1 << q
	p0 := 0.0
	for i, amp := range s.Amplitudes {
		if i&bit == 0 {
			p0 += real(amp * cmplx.Conj(amp))
		}
	}
	return p0
}

// SimulateCircuit executes the gate sequence against a fresh statevector and
// returns the final amplitude vector. Gates are applied in step order;
// measurements and barriers are skipped (the statevector keeps all branches).
func SimulateCircuit(circuit *Circuit) *StateVector {
	if circuit.NumQubits == 0 {
		return NewStateVector(1)
	}
	state := NewStateVector(circuit.NumQubits)

	gates := make([]Gate, len(circuit.Gates))
	copy(gates, circuit.Gates)
	sort.SliceStable(gates, func(i, j int) bool { return gates[i].Step < gates[j].Step })

	for _, gate := range gates {
		state.ApplyGate(gate.Type, gate.Target, gate.Control, gate.Params)
	}

	return state
}
