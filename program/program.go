/*
File    : volsung/program/program.go
*/

// Package program implements the Volsung runtime graph: a Program holds
// the nodes, connections, symbols, groups, subgraph definitions, and
// custom directives that a parsed source file produces, and knows how to
// simulate one frame at a time.
//
// Nodes live in an insertion-ordered arena addressed by integer handle
// rather than by pointer: a Channel is plain data (source handle/port,
// destination handle/port), which keeps the execution model free of
// aliasing and makes simulation order the order objects were declared
// (except that the mandatory output node always runs last), matching this
// runtime's one-frame-lag contract.
package program

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/volsung-lang/volsung/node"
	"github.com/volsung-lang/volsung/nodes"
	"github.com/volsung-lang/volsung/value"
	"github.com/volsung-lang/volsung/verr"
)

// ConnectionType identifies which of the five wiring operators produced a
// Channel.
type ConnectionType int

const (
	OneToOne ConnectionType = iota
	ManyToOne
	OneToMany
	Biclique
	ManyToMany
)

type handle int

const invalidHandle handle = -1

type channel struct {
	srcHandle, srcIndex int
	dstHandle, dstIndex int
}

// SubgraphDef is a verbatim-captured subgraph body plus its declared
// input/output arity, stored until the subgraph is instantiated.
type SubgraphDef struct {
	Body    string
	Inputs  int
	Outputs int
}

// DirectiveFunc implements a custom directive ("&name arg, arg").
type DirectiveFunc func(args []value.Value) error

// ParseSource is set by the parser package (to avoid an import cycle
// between program and parser) and is used to reparse a subgraph's
// captured body into its freshly allocated child Program.
var ParseSource func(prog *Program, source string) bool

// Program is one graph: either the top-level program parsed from a file,
// or a child Program instantiated for a subgraph, linked to its parent
// for scoping purposes only.
type Program struct {
	nodeNames  []string        // insertion order; index is the handle
	nodeByName map[string]handle
	nodeImpls  []node.Node
	nodeOut    [][]float64 // each node's last-produced output sample set

	edgesByDst map[handle][]channel

	groupSizes map[string]int
	symbols    map[string]value.Value
	subgraphs  map[string]SubgraphDef
	directives map[string]DirectiveFunc

	Parent *Program

	SampleRate float64
	inputs     int
	outputs    int
	audioIn    *nodes.AudioInput
	audioOut   *nodes.AudioOutput

	// DiagSink receives one message per reported error. The default
	// discards everything; callers (CLI, REPL, server) install their own.
	DiagSink func(string)

	rng *rand.Rand

	inlineObjectIndex int

	// outputHandle is the mandatory output node's handle, tracked so
	// Simulate can process it last regardless of where insertion order
	// placed it: the output node must see every other node's freshly
	// produced sample this same frame, not the previous frame's value.
	outputHandle handle
}

// New constructs a fresh, empty Program at the given sample rate.
func New(sampleRate float64) *Program {
	p := &Program{
		SampleRate: sampleRate,
		DiagSink:   func(string) {},
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	p.Reset()
	return p
}

// RNG returns the Program's private random source, shared by Noise nodes
// and the "random" procedure so a whole graph can be seeded
// deterministically through a single Program.
func (p *Program) RNG() *rand.Rand { return p.rng }

// ConfigureIO sets the number of audio input/output channels the graph
// exposes through its mandatory "input"/"output" nodes.
func (p *Program) ConfigureIO(inputs, outputs int) {
	p.inputs, p.outputs = inputs, outputs
}

// Reset discards all nodes, symbols, and groups (but keeps subgraph
// definitions and custom directives, which survive a reparse), then
// recreates the mandatory input/output nodes if configured, and rebinds
// the constant symbols every fresh parse expects to find.
func (p *Program) Reset() {
	p.nodeNames = nil
	p.nodeByName = make(map[string]handle)
	p.nodeImpls = nil
	p.nodeOut = nil
	p.edgesByDst = make(map[handle][]channel)
	p.groupSizes = make(map[string]int)
	p.symbols = make(map[string]value.Value)
	if p.subgraphs == nil {
		p.subgraphs = make(map[string]SubgraphDef)
	}
	if p.directives == nil {
		p.directives = make(map[string]DirectiveFunc)
	}
	p.inlineObjectIndex = 0
	p.outputHandle = invalidHandle

	if p.inputs > 0 {
		p.audioIn = nodes.NewAudioInput(p.inputs)
		p.addNodeImpl("input", p.audioIn)
	}
	if p.outputs > 0 {
		p.audioOut = nodes.NewAudioOutput(p.outputs)
		p.outputHandle = p.addNodeImpl("output", p.audioOut)
	}

	p.symbols["sample_rate"] = value.NumberOf(p.SampleRate)
	p.symbols["fs"] = value.NumberOf(p.SampleRate)
	p.symbols["tau"] = value.NumberOf(6.28318530717958647692)
	p.symbols["e"] = value.NumberOf(2.718281828459045)
}

// nameInUse reports whether name is already bound to a node, a group, or
// a symbol: the specification's invariant that a name occupies at most
// one of those three namespaces at a time.
func (p *Program) nameInUse(name string) bool {
	if _, ok := p.nodeByName[name]; ok {
		return true
	}
	if _, ok := p.groupSizes[name]; ok {
		return true
	}
	if _, ok := p.symbols[name]; ok {
		return true
	}
	return false
}

func (p *Program) addNodeImpl(name string, n node.Node) handle {
	h := handle(len(p.nodeNames))
	p.nodeNames = append(p.nodeNames, name)
	p.nodeImpls = append(p.nodeImpls, n)
	p.nodeOut = append(p.nodeOut, make([]float64, n.Outputs()))
	p.nodeByName[name] = h
	return h
}

// AddNode registers an already-constructed node under name, erroring if
// the name is already taken by a node, group, or symbol.
func (p *Program) AddNode(name string, n node.Node) error {
	if p.nameInUse(name) {
		return verr.New(verr.NameError, "name %q is already in use", name)
	}
	p.addNodeImpl(name, n)
	return nil
}

// nextInlineName generates the "Unnamed Object N" names the parser uses
// for anonymous inline objects and group members declared without a name.
func (p *Program) nextInlineName() string {
	p.inlineObjectIndex++
	return fmt.Sprintf("Unnamed Object %d", p.inlineObjectIndex)
}

// NextInlineName is the exported form nextInlineName, used by the
// parser when it needs to name an anonymous object before creating it.
func (p *Program) NextInlineName() string { return p.nextInlineName() }

// MakeObject constructs and registers a node named name of the given
// source-level type, looked up first in the concrete node catalog and
// then among this Program's own subgraph definitions.
func (p *Program) MakeObject(typeName, name string, args []value.Value) error {
	if name == "" {
		name = p.nextInlineName()
	}
	if _, ok := p.groupSizes[name]; ok {
		return verr.New(verr.NameError, "%q already names a group", name)
	}
	if ctor, ok := nodes.Catalog[typeName]; ok {
		floats := make([]float64, len(args))
		for i, a := range args {
			if !a.IsNumber() {
				return verr.New(verr.TypeMismatch, "argument %d to %q must be a Number", i, typeName)
			}
			floats[i] = a.Float64()
		}
		n, err := ctor(p.SampleRate, p.rng, floats)
		if err != nil {
			return err
		}
		return p.AddNode(name, n)
	}
	if def, ok := p.subgraphs[typeName]; ok {
		return p.instantiateSubgraph(def, name, args)
	}
	return verr.New(verr.NameError, "no such object type %q", typeName)
}

// MakeGroup declares count instances of typeName, named
// "__grp_"+name+i for i in [0,count), recording the group's size so
// fan-out/fan-in connection operators can address it as a unit.
func (p *Program) MakeGroup(typeName, name string, count int, argsPerMember func(n int) ([]value.Value, error)) error {
	if p.nameInUse(name) {
		return verr.New(verr.NameError, "name %q is already in use", name)
	}
	for i := 0; i < count; i++ {
		args, err := argsPerMember(i)
		if err != nil {
			return err
		}
		memberName := groupMemberName(name, i)
		if err := p.MakeObject(typeName, memberName, args); err != nil {
			return err
		}
	}
	p.groupSizes[name] = count
	return nil
}

func groupMemberName(group string, index int) string {
	return fmt.Sprintf("__grp_%s%d", group, index)
}

// GroupMemberName returns the synthetic node name of one member of a
// declared group, for callers (the parser's "[index]" subscript syntax)
// that need to address a single member directly.
func GroupMemberName(group string, index int) string {
	return groupMemberName(group, index)
}

// ObjectExists reports whether name is bound to a node or a group.
func (p *Program) ObjectExists(name string) bool {
	if _, ok := p.nodeByName[name]; ok {
		return true
	}
	if _, ok := p.groupSizes[name]; ok {
		return true
	}
	return false
}

// GroupSize returns the size of a declared group, or (0, false) if name
// does not name a group.
func (p *Program) GroupSize(name string) (int, bool) {
	n, ok := p.groupSizes[name]
	return n, ok
}

// CreateUserObject registers a host-callback node under name, failing if
// the name is already used (mirrors Program::create_user_object).
func (p *Program) CreateUserObject(name string, inputs, outputs int, callback nodes.UserCallback) error {
	if p.nameInUse(name) {
		return verr.New(verr.NameError, "name %q is already in use", name)
	}
	p.addNodeImpl(name, nodes.NewUser(inputs, outputs, callback))
	return nil
}

// --- symbols ---

// AddSymbol binds name to v, failing if the name is already a symbol, a
// node, or a group.
func (p *Program) AddSymbol(name string, v value.Value) error {
	if p.nameInUse(name) {
		return verr.New(verr.NameError, "name %q is already in use", name)
	}
	p.symbols[name] = v
	return nil
}

// RemoveSymbol unbinds name, if it was bound as a symbol. It is a no-op
// otherwise, matching the group-scoped "n" symbol's push/pop lifecycle
// in group object declarations.
func (p *Program) RemoveSymbol(name string) {
	delete(p.symbols, name)
}

// SymbolExists reports whether name is currently bound as a symbol.
func (p *Program) SymbolExists(name string) bool {
	_, ok := p.symbols[name]
	return ok
}

// GetSymbolValue returns the value bound to name, erroring if it is not
// a symbol.
func (p *Program) GetSymbolValue(name string) (value.Value, error) {
	v, ok := p.symbols[name]
	if !ok {
		return value.Value{}, verr.New(verr.NameError, "symbol not found: %q", name)
	}
	return v, nil
}

// --- subgraphs & directives ---

// AddSubgraph records a subgraph definition's verbatim body and arity.
func (p *Program) AddSubgraph(name string, def SubgraphDef) {
	p.subgraphs[name] = def
}

// SubgraphSource returns the raw captured body of a subgraph definition,
// used verbatim by the "implementation_of" procedure.
func (p *Program) SubgraphSource(name string) (string, error) {
	def, ok := p.subgraphs[name]
	if !ok {
		return "", verr.New(verr.NameError, "no such subgraph %q", name)
	}
	return def.Body, nil
}

// AddDirective registers a custom directive. It is idempotent: a second
// registration under the same name is silently ignored, matching the
// original's "only insert if absent" behavior.
func (p *Program) AddDirective(name string, fn DirectiveFunc) {
	if _, exists := p.directives[name]; exists {
		return
	}
	p.directives[name] = fn
}

// InvokeDirective runs a registered directive, erroring if name is not a
// known directive.
func (p *Program) InvokeDirective(name string, args []value.Value) error {
	fn, ok := p.directives[name]
	if !ok {
		return verr.New(verr.NameError, "unknown directive %q", name)
	}
	return fn(args)
}

// CountNodes returns the number of live nodes in the table, backing the
// "count_nodes" procedure.
func (p *Program) CountNodes() int { return len(p.nodeImpls) }
