package optim

import (
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/term"
)

// hoistIf rewrites f(if(c, a, b)) to if(c, f(a), f(b)). The derivative marker
// is not hoisted over: the condition would leave the dual encoding.
func hoistIf() egraph.Rule {
	f, c, a, b := term.Hole("f"), term.Hole("c"), term.Hole("a"), term.Hole("b")
	lhs := term.App(f, term.AppPrim(term.If, c, a, b))
	rhs := term.AppPrim(term.If, c, term.App(f, a), term.App(f, b))

	return egraph.Dynamic("if-hoist", lhs,
		func(g *egraph.EGraph, _ egraph.ClassID, s egraph.Subst) ([]egraph.ClassID, error) {
			for _, n := range g.Nodes(s.Class("f")) {
				if n.Kind == term.KindPrim && n.Op == term.D {
					return nil, nil
				}
			}
			id, err := g.Instantiate(rhs, s)
			if err != nil {
				return nil, err
			}
			return []egraph.ClassID{id}, nil
		})
}
