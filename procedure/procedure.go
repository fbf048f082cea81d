/*
File    : volsung/procedure/procedure.go
*/

// Package procedure implements Volsung's built-in procedure table: the
// small set of functions ("random", "abs", "print", ...) callable from
// expression position. Each entry is registered the way the teacher
// registers its builtins — a package-level slice populated by an init()
// — but keyed by name in a map for O(1) lookup, and carrying the
// min/max arity and "mappable" (auto-broadcast over a Sequence) metadata
// the original's procedure table tracks.
package procedure

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/volsung-lang/volsung/value"
	"github.com/volsung-lang/volsung/verr"
)

// Callback implements a procedure's body: it receives the already
// evaluated arguments and a Writer-like sink for anything it prints
// ("print"), and returns a single Value or an error.
type Callback func(rng *rand.Rand, print func(string), args []value.Value) (value.Value, error)

// Procedure is one entry of the built-in table: its implementation, its
// accepted argument-count range, and whether it auto-broadcasts over a
// leading Sequence argument.
type Procedure struct {
	Name     string
	Fn       Callback
	MinArgs  int
	MaxArgs  int // -1 means unbounded
	Mappable bool
}

// Table is the set of built-ins, keyed by name, assembled once at
// package init time by the same register-then-look-up pattern the
// teacher uses for its Builtins slice.
var Table = make(map[string]*Procedure)

func register(p *Procedure) {
	Table[p.Name] = p
}

func init() {
	register(&Procedure{Name: "random", Fn: randomProc, MinArgs: 0, MaxArgs: 2, Mappable: false})
	register(&Procedure{Name: "Arg", Fn: argProc, MinArgs: 1, MaxArgs: 1, Mappable: true})
	register(&Procedure{Name: "abs", Fn: absProc, MinArgs: 1, MaxArgs: 1, Mappable: true})
	register(&Procedure{Name: "sin", Fn: sinProc, MinArgs: 1, MaxArgs: 1, Mappable: true})
	register(&Procedure{Name: "Re", Fn: reProc, MinArgs: 1, MaxArgs: 1, Mappable: true})
	register(&Procedure{Name: "Im", Fn: imProc, MinArgs: 1, MaxArgs: 1, Mappable: true})
	register(&Procedure{Name: "reverse", Fn: reverseProc, MinArgs: 1, MaxArgs: 1, Mappable: false})
	register(&Procedure{Name: "print", Fn: printProc, MinArgs: 1, MaxArgs: -1, Mappable: false})
	register(&Procedure{Name: "length_of", Fn: lengthOfProc, MinArgs: 1, MaxArgs: 1, Mappable: false})
}

// Call invokes the named procedure, applying the mappable broadcast rule
// before dispatching to its Callback: if the procedure is mappable and
// the first argument is a Sequence, it is applied elementwise and the
// result collected back into a Sequence.
func Call(name string, rng *rand.Rand, print func(string), args []value.Value) (value.Value, error) {
	proc, ok := Table[name]
	if !ok {
		return value.Value{}, verr.New(verr.NameError, "no such procedure %q", name)
	}
	if len(args) < proc.MinArgs || (proc.MaxArgs >= 0 && len(args) > proc.MaxArgs) {
		return value.Value{}, verr.New(verr.ArityError, "%q expects %s, got %d", name, arityDescription(proc), len(args))
	}
	if proc.Mappable && len(args) > 0 && args[0].IsSequence() {
		elems := args[0].Elements()
		out := make([]value.Value, len(elems))
		for i, e := range elems {
			callArgs := append([]value.Value{e}, args[1:]...)
			r, err := proc.Fn(rng, print, callArgs)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = r
		}
		return value.SequenceOf(out...), nil
	}
	return proc.Fn(rng, print, args)
}

func arityDescription(p *Procedure) string {
	if p.MaxArgs < 0 {
		return fmt.Sprintf("at least %d argument(s)", p.MinArgs)
	}
	if p.MinArgs == p.MaxArgs {
		return fmt.Sprintf("%d argument(s)", p.MinArgs)
	}
	return fmt.Sprintf("%d to %d argument(s)", p.MinArgs, p.MaxArgs)
}

func requireNumber(args []value.Value, i int) (value.Value, error) {
	if i >= len(args) || !args[i].IsNumber() {
		return value.Value{}, verr.New(verr.TypeMismatch, "expected a Number argument")
	}
	return args[i], nil
}

func randomProc(rng *rand.Rand, _ func(string), args []value.Value) (value.Value, error) {
	min, max := 0.0, 1.0
	switch len(args) {
	case 0:
		// default unit range
	case 1:
		v, err := requireNumber(args, 0)
		if err != nil {
			return value.Value{}, err
		}
		max = v.Re()
	default:
		lo, err := requireNumber(args, 0)
		if err != nil {
			return value.Value{}, err
		}
		hi, err := requireNumber(args, 1)
		if err != nil {
			return value.Value{}, err
		}
		min, max = lo.Re(), hi.Re()
	}
	return value.NumberOf(min + rng.Float64()*(max-min)), nil
}

func argProc(_ *rand.Rand, _ func(string), args []value.Value) (value.Value, error) {
	v, err := requireNumber(args, 0)
	if err != nil {
		return value.Value{}, err
	}
	return value.NumberOf(v.Angle()), nil
}

func absProc(_ *rand.Rand, _ func(string), args []value.Value) (value.Value, error) {
	v, err := requireNumber(args, 0)
	if err != nil {
		return value.Value{}, err
	}
	return value.NumberOf(v.Magnitude()), nil
}

// sinProc applies sin to the real part only, matching the original's
// implicit float conversion of a Number before calling std::sin.
func sinProc(_ *rand.Rand, _ func(string), args []value.Value) (value.Value, error) {
	v, err := requireNumber(args, 0)
	if err != nil {
		return value.Value{}, err
	}
	return value.NumberOf(math.Sin(v.Re())), nil
}

func reProc(_ *rand.Rand, _ func(string), args []value.Value) (value.Value, error) {
	v, err := requireNumber(args, 0)
	if err != nil {
		return value.Value{}, err
	}
	return value.NumberOf(v.Re()), nil
}

// imProc returns a purely-imaginary Number (0 + im*i), matching the
// original's Im builtin, rather than the imaginary part as a real
// scalar: "Im(3+4i) + 1" should give "4i + 1", not "5".
func imProc(_ *rand.Rand, _ func(string), args []value.Value) (value.Value, error) {
	v, err := requireNumber(args, 0)
	if err != nil {
		return value.Value{}, err
	}
	return value.ComplexOf(0, v.Im()), nil
}

// reverseProc builds a new Sequence with elements in reverse order. Not
// mappable: it operates on the whole Sequence at once.
func reverseProc(_ *rand.Rand, _ func(string), args []value.Value) (value.Value, error) {
	if !args[0].IsSequence() {
		return value.Value{}, verr.New(verr.TypeMismatch, "reverse expects a Sequence")
	}
	elems := args[0].Elements()
	out := make([]value.Value, len(elems))
	for i, e := range elems {
		out[len(elems)-1-i] = e
	}
	return value.SequenceOf(out...), nil
}

func printProc(_ *rand.Rand, print func(string), args []value.Value) (value.Value, error) {
	for _, a := range args {
		print(a.String())
	}
	return value.NumberOf(0), nil
}

func lengthOfProc(_ *rand.Rand, _ func(string), args []value.Value) (value.Value, error) {
	if !args[0].IsSequence() {
		return value.Value{}, verr.New(verr.TypeMismatch, "length_of expects a Sequence")
	}
	return value.NumberOf(float64(args[0].Len())), nil
}
