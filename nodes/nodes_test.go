/*
File    : volsung/nodes/nodes_test.go
*/
package nodes

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBiasAndPort(t *testing.T) {
	n, err := NewAdd(44100, nil, []float64{5})
	require.NoError(t, err)
	in, out := make([]float64, 2), make([]float64, 1)
	in[0], in[1] = 2, 3
	n.Process(in, out)
	assert.Equal(t, 2+(3+5), out[0])
}

func TestDivideByBiasOnly(t *testing.T) {
	n, err := NewDivide(44100, nil, []float64{2})
	require.NoError(t, err)
	in, out := []float64{10, 0}, make([]float64, 1)
	n.Process(in, out)
	assert.Equal(t, 5.0, out[0])
}

func TestAbsNode(t *testing.T) {
	n, _ := NewAbs(44100, nil, nil)
	in, out := []float64{-3.5}, make([]float64, 1)
	n.Process(in, out)
	assert.Equal(t, 3.5, out[0])
}

func TestComparatorNode(t *testing.T) {
	n, _ := NewComparator(44100, nil, []float64{0.5})
	out := make([]float64, 1)
	n.Process([]float64{0.9}, out)
	assert.Equal(t, 1.0, out[0])
	n.Process([]float64{0.1}, out)
	assert.Equal(t, 0.0, out[0])
}

func TestDelayLineDelaysBySampleCount(t *testing.T) {
	n, err := NewDelayLine(44100, nil, []float64{2})
	require.NoError(t, err)
	out := make([]float64, 1)
	inputs := []float64{1, 2, 3, 4, 5}
	var got []float64
	for _, s := range inputs {
		n.Process([]float64{s}, out)
		got = append(got, out[0])
	}
	assert.Equal(t, []float64{0, 0, 1, 2, 3}, got)
}

func TestSineOscillatorAdvancesPhase(t *testing.T) {
	n, err := NewSineOscillator(4, nil, []float64{1})
	require.NoError(t, err)
	out := make([]float64, 1)
	in := []float64{0}
	n.Process(in, out)
	assert.InDelta(t, 0, out[0], 1e-9)
	n.Process(in, out)
	assert.InDelta(t, 1, out[0], 1e-6)
}

func TestClockFiresAtInterval(t *testing.T) {
	n, err := NewClock(44100, nil, []float64{3})
	require.NoError(t, err)
	out := make([]float64, 1)
	var pulses []float64
	for i := 0; i < 4; i++ {
		n.Process(nil, out)
		pulses = append(pulses, out[0])
	}
	assert.Equal(t, []float64{0, 0, 0, 1}, pulses)
}

func TestTimerResetsOnRisingEdge(t *testing.T) {
	n, err := NewTimer(1, nil, nil)
	require.NoError(t, err)
	out := make([]float64, 1)
	n.Process([]float64{0}, out)
	assert.Equal(t, 0.0, out[0])
	n.Process([]float64{0}, out)
	assert.Equal(t, 1.0, out[0])
	n.Process([]float64{1}, out) // rising edge: value read before reset is 2, then resets
	assert.Equal(t, 2.0, out[0])
	n.Process([]float64{1}, out)
	assert.Equal(t, 0.0, out[0])
}

func TestNoiseStaysWithinRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n, err := NewNoise(44100, rng, nil)
	require.NoError(t, err)
	out := make([]float64, 1)
	for i := 0; i < 100; i++ {
		n.Process(nil, out)
		assert.True(t, out[0] >= -1 && out[0] <= 1)
	}
}

func TestTanhSaturates(t *testing.T) {
	n, err := NewTanh(44100, nil, []float64{1, 1})
	require.NoError(t, err)
	out := make([]float64, 1)
	n.Process([]float64{100}, out)
	assert.InDelta(t, math.Tanh(100), out[0], 1e-9)
}
