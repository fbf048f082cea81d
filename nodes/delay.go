/*
File    : volsung/nodes/delay.go
*/
package nodes

import (
	"github.com/volsung-lang/volsung/node"
	"github.com/volsung-lang/volsung/verr"
)

// delayLine reads its input through a fixed-length ring buffer, so each
// frame's output is the input from sampleDelay frames ago.
type delayLine struct {
	node.Base
	buf   []float64
	write int
}

func (d *delayLine) Process(in, out []float64) {
	n := len(d.buf)
	readIdx := (d.write + 1) % n
	out[0] = d.buf[readIdx]
	d.buf[d.write] = in[0]
	d.write = (d.write + 1) % n
}

// NewDelayLine constructs a Delay_Line node. args[0] is the delay length
// in samples (already scaled from seconds/milliseconds by the parser's
// literal suffixes); a length below 1 is clamped to 1.
func NewDelayLine(_ float64, _ RNG, args []float64) (node.Node, error) {
	if len(args) == 0 {
		return nil, verr.New(verr.ArityError, "Delay_Line requires a delay-length argument")
	}
	length := int(args[0])
	if length < 1 {
		length = 1
	}
	return &delayLine{
		Base: node.Base{NumInputs: 1, NumOutputs: 1},
		buf:  make([]float64, length+1),
	}, nil
}
