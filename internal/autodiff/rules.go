package autodiff

import (
	"fmt"

	"github.com/born-ml/fsmooth/internal/autodiff/ops"
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/lang"
	"github.com/born-ml/fsmooth/internal/term"
)

// RuleSet is the name of the differentiation rule set.
const RuleSet = "deriv"

// marked is D(?t).
var marked = term.AppPrim(term.D, term.Hole("t"))

// Rules returns one rule per primitive, D(op) => lifting of op, followed by the
// structural rules that push D through applications, lambdas and leaves.
func Rules() ([]egraph.Rule, error) {
	table := ops.All()
	rules := make([]egraph.Rule, 0, len(table)+2)
	for _, p := range table {
		d, err := p.DerivTerm()
		if err != nil {
			return nil, fmt.Errorf("lifting of %s: %w", p.Op, err)
		}
		rules = append(rules, egraph.Rewrite("deriv-"+string(p.Op), term.AppPrim(term.D, term.Prim(p.Op)), d))
	}
	return append(rules, derivApp(), derivLeaf()), nil
}

// Install registers RuleSet on g. The "map" primitive of the base semantics
// must already be registered.
func Install(g *egraph.EGraph) error {
	rules, err := Rules()
	if err != nil {
		return err
	}
	return g.AddRules(RuleSet, rules...)
}

func mark(g *egraph.EGraph, id egraph.ClassID) (egraph.ClassID, error) {
	return g.Instantiate(marked, egraph.Subst{"t": egraph.ClassValue(id)})
}

// derivApp rewrites D(f(a1..an)) to (D f)(D a1 .. D an).
func derivApp() egraph.Rule {
	lhs := term.AppPrim(term.D, term.App(term.Hole("f"), term.Rest("args")))

	return egraph.Dynamic("deriv-app", lhs,
		func(g *egraph.EGraph, _ egraph.ClassID, s egraph.Subst) ([]egraph.ClassID, error) {
			d := egraph.FuncValue(func(id egraph.ClassID) (egraph.ClassID, error) { return mark(g, id) })
			args, err := g.Call(lang.MapPrim, d, egraph.VecValue(s.Vec("args")))
			if err != nil {
				return nil, err
			}
			df, err := mark(g, s.Class("f"))
			if err != nil {
				return nil, err
			}
			kids := append([]egraph.ClassID{df}, args.Vec...)
			return []egraph.ClassID{g.AddNode(egraph.Node{Kind: term.KindApp, Kids: kids})}, nil
		})
}

// derivLeaf handles the other members of the class under D: variables already
// hold duals, D moves under a lambda, and a literal c becomes pair(c, 0.0).
func derivLeaf() egraph.Rule {
	return egraph.Dynamic("deriv-leaf", marked,
		func(g *egraph.EGraph, _ egraph.ClassID, s egraph.Subst) ([]egraph.ClassID, error) {
			var out []egraph.ClassID
			for _, n := range g.Nodes(s.Class("t")) {
				switch {
				case n.Kind == term.KindVar:
					out = append(out, g.AddNode(n))
				case n.Kind == term.KindLam:
					id, err := g.Instantiate(term.Lam(n.N, marked), egraph.Subst{"t": egraph.ClassValue(n.Kids[0])})
					if err != nil {
						return nil, err
					}
					out = append(out, id)
				case n.IsLiteral():
					lit, _ := n.Leaf()
					id, err := g.Add(term.AppPrim(term.Pair, lit, term.Real(0)))
					if err != nil {
						return nil, err
					}
					out = append(out, id)
				}
			}
			return out, nil
		})
}
