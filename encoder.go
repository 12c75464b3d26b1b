package main

import (
	"fmt"
	"math"
)

// AngleApproximation is the fixed-point binary expansion of a value in [0, 1).
// Bits[i] carries weight 2^-(i+1); Value is the reconstructed sum, which never
// exceeds the input and differs from it by less than 2^-len(Bits).
type AngleApproximation struct {
	Bits  []int
	Value float64
}

// ApproxAngle expands value into a precision-bit binary fraction using the
// greedy policy: a bit is set only when the running total plus its weight
// still fits under value. Rounding is deliberately never applied, so the
// reconstruction approaches value from below; it equals
// floor(value*2^precision)/2^precision, which makes re-encoding a
// reconstructed value a fixed point.
//
// value must lie in [0, 1) and precision must be positive; anything else is a
// caller contract violation.
func ApproxAngle(value float64, precision int) (AngleApproximation, error) {
	if precision <= 0 {
		return AngleApproximation{}, fmt.Errorf("approx angle: precision must be positive, got %d", precision)
	}
	if math.IsNaN(value) || value < 0 || value >= 1 {
		return AngleApproximation{}, fmt.Errorf("approx angle: value %g outside [0,1)", value)
	}

	bits := make([]int, precision)
	total := 0.0
	weight := 1.0
	for i := range bits {
		weight /= 2
		if value >= total+weight {
			bits[i] = 1
			total += weight
		}
	}
	return AngleApproximation{Bits: bits, Value: total}, nil
}

// GateCount returns the number of set bits, i.e. how many rotation gates the
// cascade for this approximation emits.
func (a AngleApproximation) GateCount() int {
	n := 0
	for _, b := range a.Bits {
		n += b
	}
	return n
}
