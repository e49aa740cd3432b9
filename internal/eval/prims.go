package eval

import (
	"fmt"
	"math"

	"github.com/born-ml/fsmooth/internal/term"
)

var binary = map[term.Op]func(a, b float64) float64{
	term.Add: func(a, b float64) float64 { return a + b },
	term.Sub: func(a, b float64) float64 { return a - b },
	term.Mul: func(a, b float64) float64 { return a * b },
	term.Div: func(a, b float64) float64 { return a / b },
	term.Pow: math.Pow,
}

var unary = map[term.Op]func(float64) float64{
	term.Neg: func(a float64) float64 { return -a },
	term.Exp: math.Exp,
	term.Log: math.Log,
	term.Sin: math.Sin,
	term.Cos: math.Cos,
	term.Tan: math.Tan,
}

var compare = map[term.Op]func(a, b float64) bool{
	term.LT: func(a, b float64) bool { return a < b },
	term.GT: func(a, b float64) bool { return a > b },
	term.EQ: func(a, b float64) bool { return a == b },
}

func applyPrim(op term.Op, args []Value) (Value, error) {
	if f, ok := binary[op]; ok {
		a, b, err := twoNums(op, args)
		if err != nil {
			return Value{}, err
		}
		return Num(f(a, b)), nil
	}
	if f, ok := compare[op]; ok {
		a, b, err := twoNums(op, args)
		if err != nil {
			return Value{}, err
		}
		return Bool(f(a, b)), nil
	}
	if f, ok := unary[op]; ok {
		if err := arity(op, args, 1); err != nil {
			return Value{}, err
		}
		a, err := args[0].Float()
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", op, err)
		}
		return Num(f(a)), nil
	}

	switch op {
	case term.And, term.Or:
		if err := arity(op, args, 2); err != nil {
			return Value{}, err
		}
		a, err := asBool(args[0])
		if err != nil {
			return Value{}, err
		}
		b, err := asBool(args[1])
		if err != nil {
			return Value{}, err
		}
		if op == term.And {
			return Bool(a && b), nil
		}
		return Bool(a || b), nil
	case term.Not:
		if err := arity(op, args, 1); err != nil {
			return Value{}, err
		}
		a, err := asBool(args[0])
		if err != nil {
			return Value{}, err
		}
		return Bool(!a), nil
	case term.If:
		if err := arity(op, args, 3); err != nil {
			return Value{}, err
		}
		c, err := asBool(args[0])
		if err != nil {
			return Value{}, err
		}
		if c {
			return args[1], nil
		}
		return args[2], nil
	case term.Build:
		return build(args)
	case term.IFold:
		return ifold(args)
	case term.Get:
		if err := arity(op, args, 2); err != nil {
			return Value{}, err
		}
		xs, err := asArray(args[0])
		if err != nil {
			return Value{}, fmt.Errorf("get: %w", err)
		}
		i, err := asIndex(args[1])
		if err != nil {
			return Value{}, fmt.Errorf("get: %w", err)
		}
		if i >= len(xs) {
			return Value{}, fmt.Errorf("%w: get %d of %d", ErrIndex, i, len(xs))
		}
		return xs[i], nil
	case term.Length:
		if err := arity(op, args, 1); err != nil {
			return Value{}, err
		}
		xs, err := asArray(args[0])
		if err != nil {
			return Value{}, fmt.Errorf("length: %w", err)
		}
		return Num(float64(len(xs))), nil
	case term.Pair:
		if err := arity(op, args, 2); err != nil {
			return Value{}, err
		}
		return Pair(args[0], args[1]), nil
	case term.Fst, term.Snd:
		if err := arity(op, args, 1); err != nil {
			return Value{}, err
		}
		a, b, err := args[0].Components()
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", op, err)
		}
		if op == term.Fst {
			return a, nil
		}
		return b, nil
	}
	return Value{}, fmt.Errorf("%w: primitive %s has no value", ErrType, op)
}

func build(args []Value) (Value, error) {
	if err := arity(term.Build, args, 2); err != nil {
		return Value{}, err
	}
	n, err := asIndex(args[0])
	if err != nil {
		return Value{}, fmt.Errorf("build: %w", err)
	}
	out := make([]Value, n)
	for i := range out {
		if out[i], err = Apply(args[1], Num(float64(i))); err != nil {
			return Value{}, err
		}
	}
	return Arr(out), nil
}

func ifold(args []Value) (Value, error) {
	if err := arity(term.IFold, args, 3); err != nil {
		return Value{}, err
	}
	n, err := asIndex(args[2])
	if err != nil {
		return Value{}, fmt.Errorf("ifold: %w", err)
	}
	acc := args[1]
	for i := range n {
		if acc, err = Apply(args[0], acc, Num(float64(i))); err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

func arity(op term.Op, args []Value, want int) error {
	if len(args) != want {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrType, op, want, len(args))
	}
	return nil
}

func twoNums(op term.Op, args []Value) (float64, float64, error) {
	if err := arity(op, args, 2); err != nil {
		return 0, 0, err
	}
	a, err := args[0].Float()
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	b, err := args[1].Float()
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return a, b, nil
}

func asBool(v Value) (bool, error) {
	if v.Tag != TagBool {
		return false, fmt.Errorf("%w: want bool, got %s", ErrType, v.Tag)
	}
	return v.Data.(bool), nil
}

func asArray(v Value) ([]Value, error) {
	if v.Tag != TagArray {
		return nil, fmt.Errorf("%w: want array, got %s", ErrType, v.Tag)
	}
	return v.Data.([]Value), nil
}

func asIndex(v Value) (int, error) {
	x, err := v.Float()
	if err != nil {
		return 0, err
	}
	if math.IsInf(x, 0) || x < 0 || x > math.MaxInt32 || x != math.Trunc(x) {
		return 0, fmt.Errorf("%w: %v is not a valid index", ErrIndex, x)
	}
	return int(x), nil
}
