/*
File    : volsung/node/node.go
*/

// Package node defines the runtime interface every Volsung object — the
// primitive building block of a graph — implements. A Node has a fixed
// number of input and output ports; each simulation step it reads one
// sample per input port and writes one sample per output port.
package node

import "math/rand"

// Node is the runtime behavior of a graph object: fixed I/O arity plus a
// per-step transfer function and an optional finalization hook. Node
// implementations hold their own private state (phase, history buffers,
// coefficients); the runtime never reaches into them.
type Node interface {
	// Inputs reports the fixed number of input ports.
	Inputs() int
	// Outputs reports the fixed number of output ports.
	Outputs() int
	// Process reads exactly Inputs() samples from in and writes exactly
	// Outputs() samples to out. It is called once per simulation frame,
	// in the Program's insertion order.
	Process(in, out []float64)
	// Finish runs once when the owning Program is torn down (e.g. to
	// flush a file-backed node). Most nodes leave it empty.
	Finish()
}

// Base can be embedded by concrete nodes to get fixed-arity accessors and
// a no-op Finish, so each node only needs to implement Process.
type Base struct {
	NumInputs  int
	NumOutputs int
}

func (b Base) Inputs() int  { return b.NumInputs }
func (b Base) Outputs() int { return b.NumOutputs }
func (b Base) Finish()      {}

// Constructor builds a Node from the graph's sample rate, a source of
// randomness shared by the owning Program (for nodes like Noise), and
// its construction-time arguments (already reduced to float64 by
// Program.MakeObject). It is the Go analogue of the original's per-type
// member-function-pointer creator.
type Constructor func(sampleRate float64, rng *rand.Rand, args []float64) (Node, error)
