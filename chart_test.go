package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDistributionChart(t *testing.T) {
	p := DefaultGaussianParams()
	target := TargetDistribution(p, 3)

	c := NewCircuit(3)
	_, err := PrepareGaussianState(c, p, 6, 3)
	require.NoError(t, err)
	simulated := SimulateCircuit(c).BasisProbabilities()

	path := filepath.Join(t.TempDir(), "dist.html")
	require.NoError(t, WriteDistributionChart(path, p, target, simulated))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "echarts")
	assert.Contains(t, string(data), "simulated")
}

func TestWriteDistributionChartLengthMismatch(t *testing.T) {
	err := WriteDistributionChart("unused.html", DefaultGaussianParams(),
		[]float64{0.5, 0.5}, []float64{1})
	assert.Error(t, err)
}
