package ops

import (
	"github.com/born-ml/fsmooth/internal/dsl"
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/term"
)

func array() []Primitive {
	return []Primitive{
		{
			// The lifted body expects a dual index.
			Op: term.Build, Arity: 2,
			Deriv: dsl.Fun2(func(size, body dsl.Expr) dsl.Expr {
				return primal(size).Build(func(k dsl.Expr) dsl.Expr { return body.App(index(k)) })
			}),
		},
		{
			Op: term.IFold, Arity: 3,
			Deriv: dsl.Fun3(func(step, init, size dsl.Expr) dsl.Expr {
				return dsl.IFold(func(acc, k dsl.Expr) dsl.Expr {
					return step.App(acc, index(k))
				}, init, primal(size))
			}),
			Simplify: []egraph.Rule{
				rewrite("ifold-ignore", dsl.IFoldFn(dsl.Lam(2, dsl.Var(1)), x, y), x),
			},
		},
		{
			Op: term.Get, Arity: 2,
			Deriv: dsl.Fun2(func(v, k dsl.Expr) dsl.Expr { return v.Get(primal(k)) }),
			Simplify: []egraph.Rule{
				rewrite("get-build", n.BuildFn(f).Get(i), f.App(i)).Subsuming(),
			},
		},
		{
			Op: term.Length, Arity: 1,
			Deriv: dsl.Fun(func(v dsl.Expr) dsl.Expr { return index(v.Length()) }),
			Simplify: []egraph.Rule{
				rewrite("length-build", n.BuildFn(f).Length(), n),
			},
		},
	}
}
