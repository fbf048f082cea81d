/*
File    : volsung/program/program_test.go
*/
package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volsung-lang/volsung/value"
)

func TestConstantSymbolsArePreBound(t *testing.T) {
	p := New(44100)
	v, err := p.GetSymbolValue("sample_rate")
	require.NoError(t, err)
	assert.True(t, v.EqualReal(44100))

	v, err = p.GetSymbolValue("tau")
	require.NoError(t, err)
	assert.InDelta(t, 6.283185307, v.Re(), 1e-6)
}

func TestNameCollisionAcrossNamespaces(t *testing.T) {
	p := New(44100)
	require.NoError(t, p.AddSymbol("gain", value.NumberOf(1)))
	err := p.MakeObject("Abs", "gain", nil)
	require.Error(t, err)
}

func TestSimpleChainOneToOne(t *testing.T) {
	p := New(44100)
	p.ConfigureIO(1, 1)
	p.Reset()
	require.NoError(t, p.MakeObject("Abs", "a", nil))
	require.NoError(t, p.MakeObject("Abs", "b", nil))
	require.NoError(t, p.ConnectObjects("input", 0, "a", 0, OneToOne))
	require.NoError(t, p.ConnectObjects("a", 0, "b", 0, OneToOne))
	require.NoError(t, p.ConnectObjects("b", 0, "output", 0, OneToOne))

	out, err := p.Run([]float64{-5})
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, out)
}

func TestGroupManyToOneFanIn(t *testing.T) {
	p := New(44100)
	count := 0
	require.NoError(t, p.MakeGroup("Abs", "grp", 3, func(n int) ([]value.Value, error) {
		count++
		return nil, nil
	}))
	assert.Equal(t, 3, count)
	require.NoError(t, p.MakeObject("Abs", "sink", nil))
	require.NoError(t, p.ConnectObjects("grp", 0, "sink", 0, ManyToOne))

	size, ok := p.GroupSize("grp")
	assert.True(t, ok)
	assert.Equal(t, 3, size)
}

func TestParallelRequiresEqualGroupSizes(t *testing.T) {
	p := New(44100)
	require.NoError(t, p.MakeGroup("Abs", "a", 2, func(int) ([]value.Value, error) { return nil, nil }))
	require.NoError(t, p.MakeGroup("Abs", "b", 3, func(int) ([]value.Value, error) { return nil, nil }))
	err := p.ConnectObjects("a", 0, "b", 0, ManyToMany)
	require.Error(t, err)
}

func TestOneFrameLagOnCycle(t *testing.T) {
	p := New(44100)
	require.NoError(t, p.MakeObject("Add", "a", []value.Value{value.NumberOf(0)}))
	require.NoError(t, p.MakeObject("Add", "b", []value.Value{value.NumberOf(1)}))
	// a's first input fed by b's output, and b's by a's: a cycle.
	require.NoError(t, p.ConnectObjects("b", 0, "a", 0, OneToOne))
	require.NoError(t, p.ConnectObjects("a", 0, "b", 0, OneToOne))

	p.Simulate()
	firstA := p.nodeOut[p.nodeByName["a"]][0]
	p.Simulate()
	secondA := p.nodeOut[p.nodeByName["a"]][0]
	assert.NotEqual(t, firstA, secondA)
}

func TestCountNodesAndObjectExists(t *testing.T) {
	p := New(44100)
	require.NoError(t, p.MakeObject("Abs", "a", nil))
	assert.Equal(t, 1, p.CountNodes())
	assert.True(t, p.ObjectExists("a"))
	assert.False(t, p.ObjectExists("nope"))
}
