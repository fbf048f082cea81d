/*
File    : volsung/nodes/oscillator.go
*/
package nodes

import (
	"math"

	"github.com/volsung-lang/volsung/node"
)

const tau = 2 * math.Pi

// sineOscillator is a phase-accumulator sine generator. Frequency is a
// constant bias plus whatever arrives on the single modulation input,
// following the same additive-bias convention as the arithmetic nodes.
type sineOscillator struct {
	node.Base
	sampleRate float64
	freqBias   float64
	phase      float64
}

func (o *sineOscillator) Process(in, out []float64) {
	out[0] = math.Sin(tau * o.phase)
	o.phase += (o.freqBias + in[0]) / o.sampleRate
	if o.phase >= 1 {
		o.phase -= 1
	}
}

// NewSineOscillator constructs a Sine_Oscillator node, with an optional
// construction-time frequency argument.
func NewSineOscillator(sampleRate float64, _ RNG, args []float64) (node.Node, error) {
	freq := 0.0
	if len(args) > 0 {
		freq = args[0]
	}
	return &sineOscillator{
		Base:       node.Base{NumInputs: 1, NumOutputs: 1},
		sampleRate: sampleRate,
		freqBias:   freq,
	}, nil
}

// clock emits a single-sample pulse every "interval" samples.
type clock struct {
	node.Base
	interval float64
	elapsed  float64
}

func (c *clock) Process(_, out []float64) {
	if c.elapsed >= c.interval {
		out[0] = 1
		c.elapsed = 0
	} else {
		out[0] = 0
	}
	c.elapsed++
}

// NewClock constructs a Clock node: interval is in samples (the parser's
// s/ms literal suffixes already scale seconds/milliseconds to samples).
func NewClock(_ float64, _ RNG, args []float64) (node.Node, error) {
	interval := 1.0
	if len(args) > 0 {
		interval = args[0]
	}
	return &clock{Base: node.Base{NumInputs: 0, NumOutputs: 1}, interval: interval}, nil
}

// timer outputs an ever-increasing elapsed-time value, reset to zero on
// a rising edge of its gate input.
type timer struct {
	node.Base
	sampleRate float64
	value      float64
	lastGate   float64
}

func (t *timer) Process(in, out []float64) {
	out[0] = t.value
	t.value += 1 / t.sampleRate
	if in[0] > 0 && t.lastGate <= 0 {
		t.value = 0
	}
	t.lastGate = in[0]
}

// NewTimer constructs a Timer node.
func NewTimer(sampleRate float64, _ RNG, _ []float64) (node.Node, error) {
	return &timer{Base: node.Base{NumInputs: 1, NumOutputs: 1}, sampleRate: sampleRate}, nil
}

// noise emits a uniform random sample in [-1, 1] every frame.
type noise struct {
	node.Base
	rng RNG
}

func (n *noise) Process(_, out []float64) {
	out[0] = -1 + 2*n.rng.Float64()
}

// NewNoise constructs a Noise node, drawing from the Program's shared
// random source rather than a process-global one.
func NewNoise(_ float64, rng RNG, _ []float64) (node.Node, error) {
	return &noise{Base: node.Base{NumInputs: 0, NumOutputs: 1}, rng: rng}, nil
}
