/*
File    : volsung/procedure/procedure_test.go
*/
package procedure

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volsung-lang/volsung/value"
)

func noPrint(string) {}

func TestAbsAndRe(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r, err := Call("abs", rng, noPrint, []value.Value{value.ComplexOf(3, 4)})
	require.NoError(t, err)
	assert.True(t, r.EqualReal(5))

	r, err = Call("Re", rng, noPrint, []value.Value{value.ComplexOf(3, 4)})
	require.NoError(t, err)
	assert.True(t, r.EqualReal(3))

	r, err = Call("Im", rng, noPrint, []value.Value{value.ComplexOf(3, 4)})
	require.NoError(t, err)
	assert.InDelta(t, 0, r.Re(), 1e-9)
	assert.InDelta(t, 4, r.Im(), 1e-9)
}

func TestMappableBroadcastsOverSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seq := value.SequenceOf(value.ComplexOf(3, 4), value.ComplexOf(6, 8))
	r, err := Call("abs", rng, noPrint, []value.Value{seq})
	require.NoError(t, err)
	require.True(t, r.IsSequence())
	assert.True(t, r.Elements()[0].EqualReal(5))
	assert.True(t, r.Elements()[1].EqualReal(10))
}

func TestReverseIsNotMappable(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seq := value.SequenceOf(value.NumberOf(1), value.NumberOf(2), value.NumberOf(3))
	r, err := Call("reverse", rng, noPrint, []value.Value{seq})
	require.NoError(t, err)
	assert.True(t, r.Elements()[0].EqualReal(3))
	assert.True(t, r.Elements()[2].EqualReal(1))
}

func TestArityErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := Call("abs", rng, noPrint, nil)
	require.Error(t, err)

	_, err = Call("random", rng, noPrint, []value.Value{value.NumberOf(1), value.NumberOf(2), value.NumberOf(3)})
	require.Error(t, err)
}

func TestRandomWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r, err := Call("random", rng, noPrint, []value.Value{value.NumberOf(5), value.NumberOf(10)})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.Re(), 5.0)
	assert.LessOrEqual(t, r.Re(), 10.0)
}

func TestPrintCollectsArgsAndReturnsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var captured []string
	sink := func(s string) { captured = append(captured, s) }
	r, err := Call("print", rng, sink, []value.Value{value.NumberOf(1), value.TextOf("hi")})
	require.NoError(t, err)
	assert.True(t, r.EqualReal(0))
	assert.Equal(t, []string{"1", "hi"}, captured)
}

func TestUnknownProcedure(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := Call("nonexistent", rng, noPrint, nil)
	require.Error(t, err)
}
