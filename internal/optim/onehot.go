package optim

import (
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/term"
)

// collapseOneHotFold rewrites, inside build(n, λi. body), every fold
//
//	ifold(λacc j. acc + if(j == i, c, 0), 0, n)
//
// to c[j := i]. Both i and j range over 0..n-1, so exactly one step adds c.
// This is the shape a gradient takes after one-hot seeding.
func collapseOneHotFold() egraph.Rule {
	n := term.Hole("n")
	lhs := term.AppPrim(term.Build, n, term.Lam(1, term.Hole("body")))

	return egraph.Dynamic("fold-one-hot", lhs,
		func(g *egraph.EGraph, _ egraph.ClassID, s egraph.Subst) ([]egraph.ClassID, error) {
			size, err := g.Best(s.Class("n"))
			if err != nil {
				return nil, nil
			}
			body, err := g.Best(s.Class("body"))
			if err != nil {
				return nil, nil
			}
			out, ok := collapse(body, size, 0)
			if !ok {
				return nil, nil
			}
			id, err := g.Instantiate(term.AppPrim(term.Build, n, term.Lam(1, out)), s)
			if err != nil {
				return nil, err
			}
			return []egraph.ClassID{id}, nil
		})
}

// collapse rewrites the one-hot folds in t, which sits d binders below the
// build body. The build index is #d there and the size is size.Lift(d+1).
func collapse(t, size *term.Term, d int) (*term.Term, bool) {
	if c, ok := oneHotFold(t, size, d); ok {
		return c, true
	}
	switch t.Kind {
	case term.KindLam:
		if body, ok := collapse(t.Body, size, d+t.N); ok {
			return term.Lam(t.N, body), true
		}
	case term.KindApp:
		changed := false
		fun, ok := collapse(t.Fun, size, d)
		changed = changed || ok
		args := make([]*term.Term, len(t.Args))
		for i, a := range t.Args {
			args[i], ok = collapse(a, size, d)
			changed = changed || ok
		}
		if changed {
			return term.App(fun, args...), true
		}
	}
	return t, false
}

func oneHotFold(t, size *term.Term, d int) (*term.Term, bool) {
	if !t.IsPrimApp(term.IFold) || len(t.Args) != 3 {
		return nil, false
	}
	step, init, length := t.Args[0], t.Args[1], t.Args[2]
	if step.Kind != term.KindLam || step.N != 2 || !isZero(init) || !length.Equal(size.Lift(d+1)) {
		return nil, false
	}
	// In the step body #1 is the accumulator, #0 the fold index and #(d+2)
	// the build index.
	c, ok := selected(step.Body, d+2)
	if !ok || c.Mentions(1) {
		return nil, false
	}
	return term.Subst(c, []*term.Term{term.Real(0), term.Var(d)}), true
}

// selected matches acc + if(j == i, c, 0) in either operand order and either
// comparison order, returning c.
func selected(body *term.Term, idx int) (*term.Term, bool) {
	if !body.IsPrimApp(term.Add) || len(body.Args) != 2 {
		return nil, false
	}
	acc, pick := body.Args[0], body.Args[1]
	if !isVar(acc, 1) {
		acc, pick = pick, acc
	}
	if !isVar(acc, 1) || !pick.IsPrimApp(term.If) || len(pick.Args) != 3 || !isZero(pick.Args[2]) {
		return nil, false
	}
	cond := pick.Args[0]
	if !cond.IsPrimApp(term.EQ) || len(cond.Args) != 2 {
		return nil, false
	}
	l, r := cond.Args[0], cond.Args[1]
	if !(isVar(l, 0) && isVar(r, idx)) && !(isVar(l, idx) && isVar(r, 0)) {
		return nil, false
	}
	return pick.Args[1], true
}
