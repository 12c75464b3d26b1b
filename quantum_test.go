package main

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestRYPreparesCosSin(t *testing.T) {
	theta := math.Pi / 3
	s := NewStateVector(1)
	s.ApplyGate("RY", 0, -1, []float64{theta})

	want0 := math.Cos(theta / 2)
	want1 := math.Sin(theta / 2)
	if math.Abs(real(s.Amplitudes[0])-want0) > 1e-12 {
		t.Errorf("amp |0>: got %g, want %g", real(s.Amplitudes[0]), want0)
	}
	if math.Abs(real(s.Amplitudes[1])-want1) > 1e-12 {
		t.Errorf("amp |1>: got %g, want %g", real(s.Amplitudes[1]), want1)
	}
}

func TestCRYIdleWhenControlClear(t *testing.T) {
	s := NewStateVector(2)
	s.ApplyGate("CRY", 1, 0, []float64{math.Pi})

	if cmplx.Abs(s.Amplitudes[0]-1) > 1e-12 {
		t.Errorf("CRY fired with clear control: amplitudes %v", s.Amplitudes)
	}
}

func TestCRYFiresWhenControlSet(t *testing.T) {
	s := NewStateVector(2)
	s.ApplyGate("X", 0, -1, nil)
	s.ApplyGate("CRY", 1, 0, []float64{math.Pi})

	// |01> rotated fully onto |11> (qubit 0 is the low bit).
	if cmplx.Abs(s.Amplitudes[3]-1) > 1e-12 {
		t.Errorf("expected all amplitude on |11>, got %v", s.Amplitudes)
	}
}

func TestCascadeAnglesAdd(t *testing.T) {
	// Two half-angle rotations on the same wire compose additively.
	s := NewStateVector(1)
	s.ApplyGate("RY", 0, -1, []float64{math.Pi / 4})
	s.ApplyGate("RY", 0, -1, []float64{math.Pi / 8})

	want := math.Cos((math.Pi/4 + math.Pi/8) / 2)
	if math.Abs(real(s.Amplitudes[0])-want) > 1e-12 {
		t.Errorf("amp |0>: got %g, want %g", real(s.Amplitudes[0]), want)
	}
}

func TestSimulatePreparedCircuitNorm(t *testing.T) {
	c := NewCircuit(4)
	if _, err := PrepareGaussianState(c, GaussianParams{Mu: 0.5, Sigma: 1.5, Radius: 1000}, 8, 4); err != nil {
		t.Fatalf("PrepareGaussianState error: %v", err)
	}

	state := SimulateCircuit(c)
	if math.Abs(state.Norm()-1) > 1e-9 {
		t.Errorf("statevector norm = %g, want 1", state.Norm())
	}

	probs := state.BasisProbabilities()
	if len(probs) != 16 {
		t.Fatalf("expected 16 basis probabilities, got %d", len(probs))
	}
}

func TestMeasureAndBarrierAreNoOps(t *testing.T) {
	c := NewCircuit(2)
	c.AddParameterizedGate("RY", 0, 0, []float64{math.Pi / 2})
	c.AddBarrier(1)
	c.MeasureAll()

	with := SimulateCircuit(c)

	c2 := NewCircuit(2)
	c2.AddParameterizedGate("RY", 0, 0, []float64{math.Pi / 2})
	without := SimulateCircuit(c2)

	for i := range with.Amplitudes {
		if cmplx.Abs(with.Amplitudes[i]-without.Amplitudes[i]) > 1e-12 {
			t.Errorf("amplitude %d differs: %v vs %v", i, with.Amplitudes[i], without.Amplitudes[i])
		}
	}
}
