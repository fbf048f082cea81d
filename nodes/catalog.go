/*
File    : volsung/nodes/catalog.go
*/
package nodes

import (
	"math/rand"

	"github.com/volsung-lang/volsung/node"
)

// RNG is the shared random source threaded through constructors that need
// one (Noise, and anything seeded from the owning Program).
type RNG = *rand.Rand

// Catalog maps a source-level object type name to its Constructor, the
// Go analogue of the original's object_creators lookup table. It is
// deliberately small: a handful of arithmetic, oscillator, timing, and
// utility nodes, enough to make the parser's object-declaration grammar
// and the runtime's execution model exercisable end to end.
var Catalog = map[string]node.Constructor{
	"Add":             NewAdd,
	"Subtract":        NewSubtract,
	"Multiply":        NewMultiply,
	"Divide":          NewDivide,
	"Power":           NewPower,
	"Modulo":          NewModulo,
	"Abs":             NewAbs,
	"Comparator":      NewComparator,
	"Tanh":            NewTanh,
	"Delay_Line":      NewDelayLine,
	"Sine_Oscillator": NewSineOscillator,
	"Noise":           NewNoise,
	"Clock":           NewClock,
	"Timer":           NewTimer,
}
