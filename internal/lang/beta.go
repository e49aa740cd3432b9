package lang

import (
	"fmt"

	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/term"
)

func argName(i int) string { return fmt.Sprintf("a%d", i) }

// betaRule reduces App(Lam(k, body), a0..ak-1).
//
// The substitution runs on the current best terms of the body and the
// arguments. A body that ignores its parameters needs no argument terms, and a
// closed body is the result as is.
func betaRule(k int) egraph.Rule {
	args := make([]*term.Term, k)
	for i := range args {
		args[i] = term.Hole(argName(i))
	}
	lhs := term.App(term.Lam(k, term.Hole("body")), args...)

	return egraph.Dynamic(fmt.Sprintf("beta-%d", k), lhs,
		func(g *egraph.EGraph, _ egraph.ClassID, s egraph.Subst) ([]egraph.ClassID, error) {
			body := s.Class("body")
			fv := g.FreeVars(body)
			outer, err := outerVars(g, fv, k)
			if err != nil {
				return nil, err
			}
			usesParams := fv.MinBelow(k)
			if !usesParams && len(outer) == 0 {
				return []egraph.ClassID{body}, nil
			}

			bt, err := g.Best(body)
			if err != nil {
				return nil, nil // not extractable yet
			}
			var reduced *term.Term
			if usesParams {
				vals := make([]*term.Term, k)
				for i := range vals {
					if vals[i], err = g.Best(s.Class(argName(i))); err != nil {
						return nil, nil
					}
				}
				reduced = term.Subst(bt, vals)
			} else {
				reduced = bt.Shift(0, -k)
			}
			id, err := g.Add(reduced)
			if err != nil {
				return nil, err
			}
			return []egraph.ClassID{id}, nil
		})
}

// outerVars returns the free variables of a k-ary lambda over a body with free
// variables fv.
func outerVars(g *egraph.EGraph, fv egraph.VarSet, k int) (egraph.VarSet, error) {
	v := egraph.SetValue(fv)
	for range k {
		var err error
		if v, err = g.Call(SetShiftPrim, v); err != nil {
			return nil, err
		}
	}
	return v.Set, nil
}
