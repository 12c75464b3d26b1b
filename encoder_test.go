package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproxAngleResidualBound(t *testing.T) {
	values := []float64{0, 0.001, 0.0625, 0.1114387, 0.25, 1.0 / 3, 0.5, 0.7071, 0.999999}
	for _, v := range values {
		for k := 1; k <= 20; k++ {
			a, err := ApproxAngle(v, k)
			require.NoError(t, err)
			require.Len(t, a.Bits, k)

			residual := v - a.Value
			assert.GreaterOrEqual(t, residual, 0.0, "value=%g k=%d", v, k)
			assert.Less(t, residual, math.Exp2(float64(-k)), "value=%g k=%d", v, k)

			// The reconstruction must be an exact k-bit dyadic fraction.
			scaled := a.Value * math.Exp2(float64(k))
			assert.Equal(t, math.Trunc(scaled), scaled, "value=%g k=%d", v, k)
		}
	}
}

func TestApproxAngleDocumentedExample(t *testing.T) {
	a, err := ApproxAngle(0.1114387, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, a.Bits)
	assert.Equal(t, 0.109375, a.Value)
	assert.Equal(t, 3, a.GateCount())
}

func TestApproxAngleZero(t *testing.T) {
	a, err := ApproxAngle(0, 8)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0, 0}, a.Bits)
	assert.Zero(t, a.Value)
	assert.Zero(t, a.GateCount())
}

func TestApproxAngleIdempotent(t *testing.T) {
	values := []float64{0.1114387, 0.3, 0.5, 0.755, 0.9999}
	for _, v := range values {
		for _, k := range []int{1, 4, 6, 12} {
			first, err := ApproxAngle(v, k)
			require.NoError(t, err)
			second, err := ApproxAngle(first.Value, k)
			require.NoError(t, err)
			assert.Equal(t, first.Bits, second.Bits, "value=%g k=%d", v, k)
			assert.Equal(t, first.Value, second.Value, "value=%g k=%d", v, k)
		}
	}
}

func TestApproxAngleContractViolations(t *testing.T) {
	_, err := ApproxAngle(0.5, 0)
	assert.Error(t, err)
	_, err = ApproxAngle(0.5, -3)
	assert.Error(t, err)
	_, err = ApproxAngle(-0.1, 6)
	assert.Error(t, err)
	_, err = ApproxAngle(1.0, 6)
	assert.Error(t, err)
	_, err = ApproxAngle(1.5, 6)
	assert.Error(t, err)
	// NaN would otherwise slip past ordered comparisons and encode as an
	// all-zero cascade.
	_, err = ApproxAngle(math.NaN(), 6)
	assert.Error(t, err)
}
