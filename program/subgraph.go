/*
File    : volsung/program/subgraph.go
*/
package program

import (
	"fmt"

	"github.com/volsung-lang/volsung/node"
	"github.com/volsung-lang/volsung/value"
	"github.com/volsung-lang/volsung/verr"
)

// subgraphObject is the host node a subgraph instantiation compiles down
// to: it owns a child Program and, each frame, feeds the parent's inputs
// into the child's "input" node, simulates the child, and copies the
// child's "output" frame back out.
type subgraphObject struct {
	node.Base
	child *Program
}

func (s *subgraphObject) Process(in, out []float64) {
	result, err := s.child.Run(in)
	if err != nil {
		// A subgraph's configured arity is fixed at instantiation time
		// and always matches this wrapper's own port count, so Run
		// cannot fail on arity; anything else leaves the frame silent
		// rather than aborting a running simulation.
		return
	}
	copy(out, result)
}

func (s *subgraphObject) Finish() { s.child.Finish() }

// instantiateSubgraph creates a child Program from a stored subgraph
// definition, binds any extra construction arguments as "_1", "_2", ...
// symbols in the child, reparses the subgraph's captured body into it,
// and registers the resulting subgraphObject as name in the parent.
//
// The first two of def's (inputs, outputs) become the child's configured
// I/O arity; any arguments beyond that become the child's numbered
// symbols, exactly as Parser::make_object assembles
// [inputs, outputs, arg1, arg2, ...] before constructing a SubgraphObject.
func (p *Program) instantiateSubgraph(def SubgraphDef, name string, extraArgs []value.Value) error {
	if ParseSource == nil {
		return verr.New(verr.SubgraphError, "no parser registered to instantiate subgraphs")
	}

	child := New(p.SampleRate)
	child.Parent = p
	child.ConfigureIO(def.Inputs, def.Outputs)
	child.Reset()

	for i, arg := range extraArgs {
		symbolName := fmt.Sprintf("_%d", i+1)
		if err := child.AddSymbol(symbolName, arg); err != nil {
			return err
		}
	}

	if !ParseSource(child, def.Body) {
		return verr.New(verr.SubgraphError, "subgraph failed to parse")
	}

	wrapper := &subgraphObject{
		Base:  node.Base{NumInputs: def.Inputs, NumOutputs: def.Outputs},
		child: child,
	}
	return p.AddNode(name, wrapper)
}
