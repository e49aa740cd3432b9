package eval

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/born-ml/fsmooth/internal/term"
)

// Tag identifies the shape of a Value.
type Tag uint8

// Value tags.
const (
	TagNum Tag = iota
	TagBool
	TagArray
	TagPair
	TagFun
)

var tagNames = [...]string{"num", "bool", "array", "pair", "fun"}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "tag?"
}

// Value is a runtime value. Data holds float64, bool, []Value, [2]Value or a
// callable according to Tag.
type Value struct {
	Tag  Tag
	Data any
}

type closure struct {
	arity int
	body  *term.Term
	env   []Value
}

type builtin term.Op

// Num wraps a number.
func Num(x float64) Value { return Value{Tag: TagNum, Data: x} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{Tag: TagBool, Data: b} }

// Arr wraps an array of values.
func Arr(xs []Value) Value { return Value{Tag: TagArray, Data: xs} }

// Pair builds the pair (a, b).
func Pair(a, b Value) Value { return Value{Tag: TagPair, Data: [2]Value{a, b}} }

// Dual is the dual number Pair(Num(x), Num(dx)).
func Dual(x, dx float64) Value { return Pair(Num(x), Num(dx)) }

// Vector wraps xs as an array of numbers.
func Vector(xs []float64) Value { return Arr(lo.Map(xs, func(x float64, _ int) Value { return Num(x) })) }

// Float returns the number held by v.
func (v Value) Float() (float64, error) {
	if v.Tag != TagNum {
		return 0, fmt.Errorf("%w: want num, got %s", ErrType, v.Tag)
	}
	return v.Data.(float64), nil
}

// Floats returns the numbers of an array value.
func (v Value) Floats() ([]float64, error) {
	xs, err := v.Elems()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		f, err := x.Float()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// Elems returns the elements of an array value.
func (v Value) Elems() ([]Value, error) {
	if v.Tag != TagArray {
		return nil, fmt.Errorf("%w: want array, got %s", ErrType, v.Tag)
	}
	return v.Data.([]Value), nil
}

// Components returns the two halves of a pair value.
func (v Value) Components() (Value, Value, error) {
	if v.Tag != TagPair {
		return Value{}, Value{}, fmt.Errorf("%w: want pair, got %s", ErrType, v.Tag)
	}
	p := v.Data.([2]Value)
	return p[0], p[1], nil
}

func (v Value) String() string {
	switch v.Tag {
	case TagNum:
		return term.FormatReal(v.Data.(float64))
	case TagBool:
		return fmt.Sprint(v.Data.(bool))
	case TagArray:
		parts := lo.Map(v.Data.([]Value), func(x Value, _ int) string { return x.String() })
		return "[" + strings.Join(parts, " ") + "]"
	case TagPair:
		p := v.Data.([2]Value)
		return "(" + p[0].String() + ", " + p[1].String() + ")"
	case TagFun:
		if op, ok := v.Data.(builtin); ok {
			return "<" + string(op) + ">"
		}
		return "<lambda>"
	}
	return "<?>"
}
