package optim

import (
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/term"
)

// fusePairFold splits a fold whose step builds a pair from the projections of
// the accumulator:
//
//	ifold(λacc i. pair(F[fst acc], G[snd acc]), pair(x, y), n)
//	  => pair(ifold(λacc i. F[acc], x, n), ifold(λacc i. G[acc], y, n))
//
// F may use the accumulator only through fst and G only through snd.
func fusePairFold() egraph.Rule {
	x, y, n := term.Hole("x"), term.Hole("y"), term.Hole("n")
	lhs := term.AppPrim(term.IFold,
		term.Lam(2, term.AppPrim(term.Pair, term.Hole("a"), term.Hole("b"))),
		term.AppPrim(term.Pair, x, y),
		n)

	return egraph.Dynamic("fold-pair-fusion", lhs,
		func(g *egraph.EGraph, _ egraph.ClassID, s egraph.Subst) ([]egraph.ClassID, error) {
			a, err := g.Best(s.Class("a"))
			if err != nil {
				return nil, nil
			}
			b, err := g.Best(s.Class("b"))
			if err != nil {
				return nil, nil
			}
			fa, ok := project(a, 1, term.Fst)
			if !ok {
				return nil, nil
			}
			fb, ok := project(b, 1, term.Snd)
			if !ok {
				return nil, nil
			}
			rhs := term.AppPrim(term.Pair,
				term.AppPrim(term.IFold, term.Lam(2, fa), x, n),
				term.AppPrim(term.IFold, term.Lam(2, fb), y, n))
			id, err := g.Instantiate(rhs, s)
			if err != nil {
				return nil, err
			}
			return []egraph.ClassID{id}, nil
		})
}

// project replaces proj(#acc) with #acc in t. It fails if #acc occurs
// outside such a projection.
func project(t *term.Term, acc int, proj term.Op) (*term.Term, bool) {
	switch t.Kind {
	case term.KindVar:
		return t, t.N != acc
	case term.KindLam:
		body, ok := project(t.Body, acc+t.N, proj)
		if !ok {
			return nil, false
		}
		return term.Lam(t.N, body), true
	case term.KindApp:
		if t.IsPrimApp(proj) && len(t.Args) == 1 && isVar(t.Args[0], acc) {
			return term.Var(acc), true
		}
		fun, ok := project(t.Fun, acc, proj)
		if !ok {
			return nil, false
		}
		args := make([]*term.Term, len(t.Args))
		for i, a := range t.Args {
			if args[i], ok = project(a, acc, proj); !ok {
				return nil, false
			}
		}
		return term.App(fun, args...), true
	}
	return t, true
}

func isVar(t *term.Term, n int) bool { return t.Kind == term.KindVar && t.N == n }

func isZero(t *term.Term) bool {
	return (t.Kind == term.KindReal && t.Real == 0) || (t.Kind == term.KindInt && t.Int == 0)
}
