/*
File    : volsung/nodes/arith.go
*/

// Package nodes is the minimal concrete catalog of graph objects: the
// small, demonstration-sized set of arithmetic, oscillator, delay, and
// utility nodes needed to run an end-to-end graph. Each node mirrors the
// transfer function of its counterpart in Objects.cpp; the two-input
// arithmetic nodes simplify the original's pointer-bound "default value
// overridden by an incoming connection" mechanism into a plain additive
// bias: the constructor argument becomes a constant added to whatever
// signal (0 if nothing is wired) arrives on the second port.
package nodes

import (
	"math"

	"github.com/volsung-lang/volsung/node"
)

// binaryBiased is the shared shape of Add/Subtract/Multiply/Divide/Power
// and Modulo: two inputs, one output, a constant bias folded into the
// second input.
type binaryBiased struct {
	node.Base
	bias float64
	op   func(a, b float64) float64
}

func (b *binaryBiased) Process(in, out []float64) {
	out[0] = b.op(in[0], in[1]+b.bias)
}

func newBinaryBiased(args []float64, op func(a, b float64) float64) node.Node {
	bias := 0.0
	if len(args) > 0 {
		bias = args[0]
	}
	return &binaryBiased{Base: node.Base{NumInputs: 2, NumOutputs: 1}, bias: bias, op: op}
}

// NewAdd constructs an Add node: out = a + (b + bias).
func NewAdd(_ float64, _ RNG, args []float64) (node.Node, error) {
	return newBinaryBiased(args, func(a, b float64) float64 { return a + b }), nil
}

// NewSubtract constructs a Subtract node: out = a - (b + bias).
func NewSubtract(_ float64, _ RNG, args []float64) (node.Node, error) {
	return newBinaryBiased(args, func(a, b float64) float64 { return a - b }), nil
}

// NewMultiply constructs a Multiply node: out = a * (b + bias).
func NewMultiply(_ float64, _ RNG, args []float64) (node.Node, error) {
	return newBinaryBiased(args, func(a, b float64) float64 { return a * b }), nil
}

// NewDivide constructs a Divide node: out = a / (b + bias).
func NewDivide(_ float64, _ RNG, args []float64) (node.Node, error) {
	return newBinaryBiased(args, func(a, b float64) float64 { return a / b }), nil
}

// NewPower constructs a Power node: out = a ^ (b + bias).
func NewPower(_ float64, _ RNG, args []float64) (node.Node, error) {
	return newBinaryBiased(args, math.Pow), nil
}

// NewModulo constructs a Modulo node: out = fmod(a, b + bias).
func NewModulo(_ float64, _ RNG, args []float64) (node.Node, error) {
	return newBinaryBiased(args, math.Mod), nil
}

// abs is a single-input, single-output node with no construction
// arguments: out = |in|.
type abs struct{ node.Base }

func (a *abs) Process(in, out []float64) { out[0] = math.Abs(in[0]) }

// NewAbs constructs an Abs node.
func NewAbs(_ float64, _ RNG, _ []float64) (node.Node, error) {
	return &abs{Base: node.Base{NumInputs: 1, NumOutputs: 1}}, nil
}

// comparator compares its input against a fixed threshold.
type comparator struct {
	node.Base
	threshold float64
}

func (c *comparator) Process(in, out []float64) {
	if in[0] > c.threshold {
		out[0] = 1
	} else {
		out[0] = 0
	}
}

// NewComparator constructs a Comparator node: out = in > threshold.
func NewComparator(_ float64, _ RNG, args []float64) (node.Node, error) {
	threshold := 0.0
	if len(args) > 0 {
		threshold = args[0]
	}
	return &comparator{Base: node.Base{NumInputs: 1, NumOutputs: 1}, threshold: threshold}, nil
}

// drive is a soft clipper: out = tanh(pregain*in) * postgain.
type drive struct {
	node.Base
	pregain, postgain float64
}

func (d *drive) Process(in, out []float64) {
	out[0] = math.Tanh(d.pregain*in[0]) * d.postgain
}

// NewTanh constructs a Tanh (drive) node.
func NewTanh(_ float64, _ RNG, args []float64) (node.Node, error) {
	pregain, postgain := 1.0, 1.0
	if len(args) > 0 {
		pregain = args[0]
	}
	if len(args) > 1 {
		postgain = args[1]
	}
	return &drive{Base: node.Base{NumInputs: 1, NumOutputs: 1}, pregain: pregain, postgain: postgain}, nil
}
