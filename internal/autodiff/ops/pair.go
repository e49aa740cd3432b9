package ops

import (
	"github.com/born-ml/fsmooth/internal/dsl"
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/term"
)

func pair() []Primitive {
	return []Primitive{
		{
			Op: term.Pair, Arity: 2,
			Deriv: dsl.Fun2(func(a, b dsl.Expr) dsl.Expr { return a.Pair(b) }),
		},
		{
			Op: term.Fst, Arity: 1,
			Deriv: dsl.Fun(func(p dsl.Expr) dsl.Expr { return p.Fst() }),
			Simplify: []egraph.Rule{
				rewrite("fst-pair", x.Pair(y).Fst(), x).Subsuming(),
			},
		},
		{
			Op: term.Snd, Arity: 1,
			Deriv: dsl.Fun(func(p dsl.Expr) dsl.Expr { return p.Snd() }),
			Simplify: []egraph.Rule{
				rewrite("snd-pair", x.Pair(y).Snd(), y).Subsuming(),
			},
		},
	}
}
