package ops

import (
	"github.com/born-ml/fsmooth/internal/dsl"
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/term"
)

// Comparisons are locally constant: their lifting compares primal parts.
// Booleans are not duals, so the logic rows pass their arguments through.
func compare() []Primitive {
	cmp := func(op term.Op, sym func(a, b dsl.Expr) dsl.Expr) Primitive {
		return Primitive{
			Op: op, Arity: 2,
			Deriv: dsl.Fun2(func(a, b dsl.Expr) dsl.Expr { return sym(primal(a), primal(b)) }),
		}
	}
	eq := cmp(term.EQ, dsl.Expr.EQ)
	eq.Simplify = []egraph.Rule{rewrite("eq-comm", x.EQ(y), y.EQ(x))}

	return []Primitive{
		cmp(term.LT, dsl.Expr.LT),
		cmp(term.GT, dsl.Expr.GT),
		eq,
		{
			Op: term.And, Arity: 2,
			Deriv: dsl.Fun2(func(a, b dsl.Expr) dsl.Expr { return a.And(b) }),
		},
		{
			Op: term.Or, Arity: 2,
			Deriv: dsl.Fun2(func(a, b dsl.Expr) dsl.Expr { return a.Or(b) }),
		},
		{
			Op: term.Not, Arity: 1,
			Deriv: dsl.Fun(func(a dsl.Expr) dsl.Expr { return a.Not() }),
		},
		{
			Op: term.If, Arity: 3,
			Deriv: dsl.Fun3(func(c, a, b dsl.Expr) dsl.Expr { return c.IfThenElse(a, b) }),
			Simplify: []egraph.Rule{
				rewrite("if-same", x.IfThenElse(y, y), y),
			},
		},
	}
}
