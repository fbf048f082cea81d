/*
File    : volsung/nodes/io.go
*/
package nodes

import "github.com/volsung-lang/volsung/node"

// AudioInput is the mandatory "input" node: it has no input ports of its
// own and broadcasts the Program's current input frame on its outputs.
// The owning Program installs the frame before each simulation step via
// SetFrame; Process then just copies that into the node's outputs.
type AudioInput struct {
	node.Base
	frame []float64
}

// NewAudioInput constructs the input node with the given number of
// channels (the Program's configured input arity).
func NewAudioInput(channels int) *AudioInput {
	return &AudioInput{Base: node.Base{NumInputs: 0, NumOutputs: channels}, frame: make([]float64, channels)}
}

// SetFrame installs the samples this node will emit on the next Process.
func (a *AudioInput) SetFrame(samples []float64) {
	copy(a.frame, samples)
}

func (a *AudioInput) Process(_, out []float64) {
	copy(out, a.frame)
}

// AudioOutput is the mandatory "output" node: it has no output ports of
// its own; Process copies its (already summed) inputs into a frame
// buffer, which the owning Program reads through Frame, zeroing it, after
// every simulation step (mirroring the original's clear-after-read
// behavior).
type AudioOutput struct {
	node.Base
	frame []float64
}

// NewAudioOutput constructs the output node with the given number of
// channels (the Program's configured output arity).
func NewAudioOutput(channels int) *AudioOutput {
	return &AudioOutput{Base: node.Base{NumInputs: channels, NumOutputs: 0}, frame: make([]float64, channels)}
}

func (a *AudioOutput) Process(in, _ []float64) {
	copy(a.frame, in)
}

// Frame returns the samples collected during the last Process call and
// then clears them, matching the original's read-then-zero-fill
// behavior for the audio output buffer.
func (a *AudioOutput) Frame() []float64 {
	out := make([]float64, len(a.frame))
	copy(out, a.frame)
	for i := range a.frame {
		a.frame[i] = 0
	}
	return out
}
