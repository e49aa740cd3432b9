package ops

import (
	"github.com/born-ml/fsmooth/internal/dsl"
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/term"
)

func arith() []Primitive {
	return []Primitive{
		{
			Op: term.Add, Arity: 2,
			Deriv: dsl.Fun2(func(a, b dsl.Expr) dsl.Expr {
				return primal(a).Add(primal(b)).Pair(tangent(a).Add(tangent(b)))
			}),
			Simplify: []egraph.Rule{
				rewrite("add-zero", x.Add(zero), x),
				rewrite("zero-add", zero.Add(x), x),
				rewrite("add-zero-int", x.Add(izero), x),
				rewrite("zero-add-int", izero.Add(x), x),
				rewrite("add-neg", x.Add(y.Neg()), x.Sub(y)),
				rewrite("distribute", x.Mul(y).Add(x.Mul(z)), x.Mul(y.Add(z))),
				rewrite("add-comm", x.Add(y), y.Add(x)),
			},
		},
		{
			Op: term.Sub, Arity: 2,
			Deriv: dsl.Fun2(func(a, b dsl.Expr) dsl.Expr {
				return primal(a).Sub(primal(b)).Pair(tangent(a).Sub(tangent(b)))
			}),
			Simplify: []egraph.Rule{
				rewrite("sub-self", x.Sub(x), zero),
			},
		},
		{
			// d(ab) = da b + a db
			Op: term.Mul, Arity: 2,
			Deriv: dsl.Fun2(func(a, b dsl.Expr) dsl.Expr {
				return primal(a).Mul(primal(b)).
					Pair(tangent(a).Mul(primal(b)).Add(primal(a).Mul(tangent(b))))
			}),
			Simplify: []egraph.Rule{
				rewrite("mul-one", x.Mul(one), x),
				rewrite("one-mul", one.Mul(x), x),
				rewrite("mul-zero", x.Mul(zero), zero),
				rewrite("zero-mul", zero.Mul(x), zero),
				rewrite("mul-one-int", x.Mul(ione), x),
				rewrite("one-mul-int", ione.Mul(x), x),
				rewrite("mul-zero-int", x.Mul(izero), izero),
				rewrite("zero-mul-int", izero.Mul(x), izero),
				rewrite("mul-comm", x.Mul(y), y.Mul(x)),
			},
		},
		{
			// d(a/b) = (da b - a db) / b²
			Op: term.Div, Arity: 2,
			Deriv: dsl.Fun2(func(a, b dsl.Expr) dsl.Expr {
				num := tangent(a).Mul(primal(b)).Sub(primal(a).Mul(tangent(b)))
				return primal(a).Div(primal(b)).Pair(num.Div(primal(b).Mul(primal(b))))
			}),
		},
		{
			// d(a^b) = b a^(b-1) da + ln(a) a^b db
			//
			// The second term is NaN for a negative base even when db is 0,
			// so an unsimplified Diff of x^2 at x < 0 has a NaN tangent.
			// Optim and GradOpt drop the term once db folds to the literal 0.0.
			Op: term.Pow, Arity: 2,
			Deriv: dsl.Fun2(func(a, b dsl.Expr) dsl.Expr {
				p := primal(a).Pow(primal(b))
				da := primal(b).Mul(primal(a).Pow(primal(b).Sub(one))).Mul(tangent(a))
				db := primal(a).Log().Mul(p).Mul(tangent(b))
				return p.Pair(da.Add(db))
			}),
		},
		{
			Op: term.Neg, Arity: 1,
			Deriv: dsl.Fun(func(a dsl.Expr) dsl.Expr {
				return primal(a).Neg().Pair(tangent(a).Neg())
			}),
		},
	}
}
