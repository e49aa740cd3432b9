// Package eval is a reference interpreter for closed terms.
//
// Integer and real literals both evaluate to float64 numbers; array sizes and
// indices must be integral. If evaluates only the branch it takes, every
// other application is strict. The derivative marker has no value.
package eval

import (
	"errors"
	"fmt"
	"slices"

	"github.com/born-ml/fsmooth/internal/term"
)

// Evaluation errors.
var (
	// ErrType reports a value of the wrong shape, such as adding a boolean
	// or applying a number.
	ErrType = errors.New("type error")

	// ErrIndex reports an array size or index that is negative, fractional,
	// not finite, too large or out of range.
	ErrIndex = errors.New("index out of range")

	// ErrUnbound reports a variable with no enclosing binder.
	ErrUnbound = errors.New("unbound variable")
)

// Eval evaluates the closed term t.
func Eval(t *term.Term) (Value, error) {
	return eval(t, nil)
}

// Apply calls the function value f.
func Apply(f Value, args ...Value) (Value, error) {
	if f.Tag != TagFun {
		return Value{}, fmt.Errorf("%w: cannot apply %s", ErrType, f.Tag)
	}
	switch fn := f.Data.(type) {
	case *closure:
		if len(args) != fn.arity {
			return Value{}, fmt.Errorf("%w: lambda of arity %d applied to %d arguments", ErrType, fn.arity, len(args))
		}
		return eval(fn.body, slices.Concat(fn.env, args))
	case builtin:
		return applyPrim(term.Op(fn), args)
	}
	return Value{}, fmt.Errorf("%w: unknown function value", ErrType)
}

// env holds the innermost binding last.
func eval(t *term.Term, env []Value) (Value, error) {
	switch t.Kind {
	case term.KindVar:
		if t.N >= len(env) {
			return Value{}, fmt.Errorf("%w: #%d at depth %d", ErrUnbound, t.N, len(env))
		}
		return env[len(env)-1-t.N], nil
	case term.KindLam:
		return Value{Tag: TagFun, Data: &closure{arity: t.N, body: t.Body, env: env}}, nil
	case term.KindPrim:
		return Value{Tag: TagFun, Data: builtin(t.Op)}, nil
	case term.KindInt:
		return Num(float64(t.Int)), nil
	case term.KindReal:
		return Num(t.Real), nil
	case term.KindApp:
		if t.IsPrimApp(term.If) && len(t.Args) == 3 {
			return evalIf(t.Args, env)
		}
		f, err := eval(t.Fun, env)
		if err != nil {
			return Value{}, err
		}
		args := make([]Value, len(t.Args))
		for i, a := range t.Args {
			if args[i], err = eval(a, env); err != nil {
				return Value{}, err
			}
		}
		return Apply(f, args...)
	}
	return Value{}, fmt.Errorf("%w: cannot evaluate %s", ErrType, t.Kind)
}

func evalIf(args []*term.Term, env []Value) (Value, error) {
	c, err := eval(args[0], env)
	if err != nil {
		return Value{}, err
	}
	b, err := asBool(c)
	if err != nil {
		return Value{}, fmt.Errorf("if: %w", err)
	}
	if b {
		return eval(args[1], env)
	}
	return eval(args[2], env)
}
