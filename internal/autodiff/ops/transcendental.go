package ops

import (
	"github.com/born-ml/fsmooth/internal/dsl"
	"github.com/born-ml/fsmooth/internal/term"
)

func transcendental() []Primitive {
	return []Primitive{
		{
			Op: term.Exp, Arity: 1,
			Deriv: dsl.Fun(func(a dsl.Expr) dsl.Expr {
				return primal(a).Exp().Pair(primal(a).Exp().Mul(tangent(a)))
			}),
		},
		{
			Op: term.Log, Arity: 1,
			Deriv: dsl.Fun(func(a dsl.Expr) dsl.Expr {
				return primal(a).Log().Pair(tangent(a).Div(primal(a)))
			}),
		},
		{
			Op: term.Sin, Arity: 1,
			Deriv: dsl.Fun(func(a dsl.Expr) dsl.Expr {
				return primal(a).Sin().Pair(primal(a).Cos().Mul(tangent(a)))
			}),
		},
		{
			Op: term.Cos, Arity: 1,
			Deriv: dsl.Fun(func(a dsl.Expr) dsl.Expr {
				return primal(a).Cos().Pair(primal(a).Sin().Neg().Mul(tangent(a)))
			}),
		},
		{
			// d tan a = da / cos²a
			Op: term.Tan, Arity: 1,
			Deriv: dsl.Fun(func(a dsl.Expr) dsl.Expr {
				c := primal(a).Cos()
				return primal(a).Tan().Pair(tangent(a).Div(c.Mul(c)))
			}),
		},
	}
}
