/*
File    : volsung/value/value.go
*/

// Package value implements Volsung's typed-value algebra: the three-variant
// value every literal, symbol, node parameter, and procedure argument is
// made of. A Value is always exactly one of Number, Sequence, or Text; the
// arithmetic operators close over {Number, Sequence} and reject Text except
// for printing.
package value

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// Kind identifies which variant a Value currently holds.
type Kind int

const (
	// Number is a complex scalar (re, im), both finite.
	Number Kind = iota
	// Sequence is an ordered, mutable array of complex scalars.
	Sequence
	// Text is an immutable string.
	Text
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "Number"
	case Sequence:
		return "Sequence"
	case Text:
		return "Text"
	default:
		return "Unknown"
	}
}

// imaginaryEpsilon is the threshold below which the imaginary part of a
// Number is considered zero for printing and equality purposes.
const imaginaryEpsilon = 1e-3

// Value is the tagged union every expression in the language evaluates to.
// Only the field matching Kind is meaningful.
type Value struct {
	kind Kind
	re   float64
	im   float64
	seq  []Value // only populated when kind == Sequence; each element is a Number
	text string
}

// NumberOf constructs a real-valued Number.
func NumberOf(re float64) Value {
	return Value{kind: Number, re: re}
}

// ComplexOf constructs a general complex Number.
func ComplexOf(re, im float64) Value {
	return Value{kind: Number, re: re, im: im}
}

// SequenceOf constructs a Sequence from a slice of Numbers. The slice is
// copied so callers can continue to mutate the source.
func SequenceOf(elements ...Value) Value {
	cp := make([]Value, len(elements))
	copy(cp, elements)
	return Value{kind: Sequence, seq: cp}
}

// TextOf constructs a Text value.
func TextOf(s string) Value {
	return Value{kind: Text, text: s}
}

// Kind reports which variant this Value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNumber reports whether v holds a Number.
func (v Value) IsNumber() bool { return v.kind == Number }

// IsSequence reports whether v holds a Sequence.
func (v Value) IsSequence() bool { return v.kind == Sequence }

// IsText reports whether v holds a Text.
func (v Value) IsText() bool { return v.kind == Text }

// Re returns the real part of a Number value. The caller must have already
// checked IsNumber.
func (v Value) Re() float64 { return v.re }

// Im returns the imaginary part of a Number value.
func (v Value) Im() float64 { return v.im }

// IsComplex reports whether a Number's imaginary part is non-zero.
func (v Value) IsComplex() bool { return v.im != 0 }

// Magnitude returns the modulus of a Number.
func (v Value) Magnitude() float64 {
	return math.Hypot(v.re, v.im)
}

// Angle returns the argument (phase) of a Number, in radians.
func (v Value) Angle() float64 {
	return math.Atan2(v.im, v.re)
}

// Elements returns the backing slice of a Sequence. Mutating the returned
// slice mutates the Sequence in place.
func (v Value) Elements() []Value { return v.seq }

// Len returns the number of elements in a Sequence.
func (v Value) Len() int { return len(v.seq) }

// TextValue returns the raw string of a Text value.
func (v Value) TextValue() string { return v.text }

// Float64 truncates a Number to its real part, discarding any imaginary
// component. Used wherever the grammar requires a plain scalar (group
// counts, port indices, subgraph arities).
func (v Value) Float64() float64 { return v.re }

// String renders a Value the way the language prints it: a Number with a
// negligible imaginary part prints as just its real part, otherwise as
// "re + imi" (or just "imi" when the real part is negligible); a Sequence
// prints as "{ a, b, c }"; Text prints verbatim.
func (v Value) String() string {
	switch v.kind {
	case Number:
		return formatNumber(v.re, v.im)
	case Sequence:
		parts := make([]string, len(v.seq))
		for i, e := range v.seq {
			parts[i] = e.String()
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case Text:
		return v.text
	default:
		return ""
	}
}

func formatNumber(re, im float64) string {
	imagPart := math.Abs(im) >= imaginaryEpsilon
	realPart := math.Abs(re) >= imaginaryEpsilon || !imagPart

	var b strings.Builder
	if realPart {
		fmt.Fprintf(&b, "%g", re)
		if imagPart {
			b.WriteString(" + ")
		}
	}
	if imagPart {
		fmt.Fprintf(&b, "%gi", im)
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// EqualReal reports whether a Number equals a real scalar, projecting away
// a negligible imaginary part (testable property #4 in the specification).
func (v Value) EqualReal(f float64) bool {
	return v.kind == Number && math.Abs(v.im) < imaginaryEpsilon && v.re == f
}

// complex128 helpers used internally for the binary operators.

func (v Value) asComplex() complex128 { return complex(v.re, v.im) }

func fromComplex(c complex128) Value { return Value{kind: Number, re: real(c), im: imag(c)} }

// Negate returns the elementwise/scalar negation of v.
func (v Value) Negate() (Value, error) {
	switch v.kind {
	case Number:
		return Value{kind: Number, re: -v.re, im: -v.im}, nil
	case Sequence:
		out := make([]Value, len(v.seq))
		for i, e := range v.seq {
			neg, err := e.Negate()
			if err != nil {
				return Value{}, err
			}
			out[i] = neg
		}
		return Value{kind: Sequence, seq: out}, nil
	default:
		return Value{}, &TypeError{Op: "negate", Kind: v.kind}
	}
}

// TypeError reports an attempt to perform arithmetic on an unsupported
// variant (always Text, per the dispatch table in the specification).
type TypeError struct {
	Op   string
	Kind Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("cannot perform %s on a value of type %s", e.Op, e.Kind)
}

// LengthMismatchError reports elementwise arithmetic between two sequences
// of different sizes.
type LengthMismatchError struct {
	Left, Right int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("sequences of unequal length cannot be combined: %d vs %d", e.Left, e.Right)
}

type binaryNumberOp func(a, b complex128) complex128

func addNum(a, b complex128) complex128 { return a + b }
func subNum(a, b complex128) complex128 { return a - b }
func mulNum(a, b complex128) complex128 { return a * b }
func divNum(a, b complex128) complex128 { return a / b }
func powNum(a, b complex128) complex128 { return cmplx.Pow(a, b) }

func (v Value) dispatch(op string, fn binaryNumberOp, other Value) (Value, error) {
	switch v.kind {
	case Number:
		return v.numberOp(op, fn, other)
	case Sequence:
		return v.sequenceOp(op, fn, other)
	default:
		return Value{}, &TypeError{Op: op, Kind: v.kind}
	}
}

func (v Value) numberOp(op string, fn binaryNumberOp, other Value) (Value, error) {
	switch other.kind {
	case Number:
		return fromComplex(fn(v.asComplex(), other.asComplex())), nil
	case Sequence:
		out := make([]Value, len(other.seq))
		for i, e := range other.seq {
			out[i] = fromComplex(fn(v.asComplex(), e.asComplex()))
		}
		return Value{kind: Sequence, seq: out}, nil
	default:
		return Value{}, &TypeError{Op: op, Kind: Text}
	}
}

func (v Value) sequenceOp(op string, fn binaryNumberOp, other Value) (Value, error) {
	switch other.kind {
	case Number:
		out := make([]Value, len(v.seq))
		for i, e := range v.seq {
			out[i] = fromComplex(fn(e.asComplex(), other.asComplex()))
		}
		return Value{kind: Sequence, seq: out}, nil
	case Sequence:
		if len(v.seq) != len(other.seq) {
			return Value{}, &LengthMismatchError{Left: len(v.seq), Right: len(other.seq)}
		}
		out := make([]Value, len(v.seq))
		for i := range v.seq {
			out[i] = fromComplex(fn(v.seq[i].asComplex(), other.seq[i].asComplex()))
		}
		return Value{kind: Sequence, seq: out}, nil
	default:
		return Value{}, &TypeError{Op: op, Kind: Text}
	}
}

// Add implements '+'. Text + Number concatenation (the legacy operator
// mentioned in the specification as optional) is intentionally omitted:
// the rewrite keeps arithmetic closed over {Number, Sequence} only.
func (v Value) Add(other Value) (Value, error) { return v.dispatch("add", addNum, other) }

// Sub implements '-'.
func (v Value) Sub(other Value) (Value, error) { return v.dispatch("subtract", subNum, other) }

// Mul implements '*'.
func (v Value) Mul(other Value) (Value, error) { return v.dispatch("multiply", mulNum, other) }

// Div implements '/'.
func (v Value) Div(other Value) (Value, error) { return v.dispatch("divide", divNum, other) }

// Pow implements '^'.
func (v Value) Pow(other Value) (Value, error) { return v.dispatch("exponentiate", powNum, other) }

// Index implements signed, wraparound Sequence subscripting: negative
// indices count back from the end, and an out-of-range index is an error
// (testable property #3).
func (v Value) Index(i int) (Value, error) {
	if v.kind != Sequence {
		return Value{}, &TypeError{Op: "subscript", Kind: v.kind}
	}
	n := len(v.seq)
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return Value{}, &RangeError{Index: i, Length: n}
	}
	return v.seq[idx], nil
}

// Gather implements subscripting a Sequence by another Sequence of indices,
// returning a new Sequence of the gathered elements.
func (v Value) Gather(indices Value) (Value, error) {
	if v.kind != Sequence {
		return Value{}, &TypeError{Op: "subscript", Kind: v.kind}
	}
	if indices.kind != Sequence {
		return Value{}, &TypeError{Op: "index", Kind: indices.kind}
	}
	out := make([]Value, len(indices.seq))
	for i, idxVal := range indices.seq {
		if idxVal.kind != Number {
			return Value{}, &TypeError{Op: "index", Kind: idxVal.kind}
		}
		elem, err := v.Index(int(idxVal.re))
		if err != nil {
			return Value{}, err
		}
		out[i] = elem
	}
	return Value{kind: Sequence, seq: out}, nil
}

// RangeError reports a Sequence subscript outside [-len, len).
type RangeError struct {
	Index, Length int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("sequence index out of range: index is %d, length is %d", e.Index, e.Length)
}

// Range constructs the Sequence produced by a range literal "lo..hi" or
// "lo..hi|step" (specification §4.1). Step must be positive; the sequence
// ascends when lo <= hi and descends otherwise.
func Range(lo, hi, step float64) (Value, error) {
	if step <= 0 {
		return Value{}, fmt.Errorf("range step must be positive, got %g", step)
	}
	var elems []Value
	if lo <= hi {
		for n := lo; n <= hi; n += step {
			elems = append(elems, NumberOf(n))
		}
	} else {
		for n := lo; n >= hi; n -= step {
			elems = append(elems, NumberOf(n))
		}
	}
	return Value{kind: Sequence, seq: elems}, nil
}
