/*
File    : volsung/program/simulate.go
*/
package program

import "github.com/volsung-lang/volsung/verr"

// Simulate advances the graph by one frame: every node, in the order it
// was declared, is asked to produce its next output sample from its
// currently summed input. Because a node's output slot is overwritten
// the instant it is processed, any later node in this same pass already
// sees the fresh value (zero lag along the forward edges of the
// insertion order) while any earlier node — including one further along
// a cycle — still reads last frame's value until its own turn comes
// around again. That is the one-frame lag the specification requires,
// and it falls out of this shared-scratch layout for free: no separate
// previous-frame buffer is needed.
//
// The mandatory output node is the one exception to plain insertion
// order: Reset creates it before anything the source declares, but it
// must still observe every other node's sample from this same frame, so
// it is always processed last regardless of its handle.
func (p *Program) Simulate() {
	inBuf := make([]float64, 0, 8)
	step := func(h handle) {
		n := p.nodeImpls[h]
		arity := n.Inputs()
		if cap(inBuf) < arity {
			inBuf = make([]float64, arity)
		} else {
			inBuf = inBuf[:arity]
			for i := range inBuf {
				inBuf[i] = 0
			}
		}
		for _, e := range p.edgesByDst[h] {
			inBuf[e.dstIndex] += p.nodeOut[e.srcHandle][e.srcIndex]
		}
		n.Process(inBuf, p.nodeOut[h])
	}

	for h := range p.nodeImpls {
		if handle(h) == p.outputHandle {
			continue
		}
		step(handle(h))
	}
	if p.outputHandle != invalidHandle {
		step(p.outputHandle)
	}
}

// Run pushes one input frame through the graph and returns the frame
// collected at the output node, advancing the simulation by exactly one
// step. sample must have length equal to the configured input arity (it
// may be empty if none is configured); the returned slice has length
// equal to the configured output arity.
func (p *Program) Run(sample []float64) ([]float64, error) {
	if p.inputs > 0 {
		if len(sample) != p.inputs {
			return nil, verr.New(verr.ArityError, "expected %d input samples, got %d", p.inputs, len(sample))
		}
		p.audioIn.SetFrame(sample)
	}

	p.Simulate()

	if p.outputs > 0 {
		return p.audioOut.Frame(), nil
	}
	return nil, nil
}

// Finish tears down every node, in declaration order, flushing anything
// buffered (a file-backed node's accumulated samples, for instance).
func (p *Program) Finish() {
	for _, n := range p.nodeImpls {
		n.Finish()
	}
}
