package egraph

import (
	"math"

	"github.com/born-ml/fsmooth/internal/term"
)

type match struct {
	root  ClassID
	node  Node
	subst Subst
}

// search finds every node matching p, in class id order.
func (g *EGraph) search(p *term.Term) []match {
	var out []match
	for _, id := range g.classIDs() {
		for _, n := range g.classes[id].nodes {
			for _, s := range g.matchNode(p, n, Subst{}) {
				out = append(out, match{root: id, node: n, subst: s})
			}
		}
	}
	return out
}

func (g *EGraph) matchClass(p *term.Term, id ClassID, s Subst) []Subst {
	id = g.Find(id)
	if p.Kind == term.KindHole {
		if v, ok := s[p.Name]; ok {
			if v.Sort == SortClass && g.Find(v.Class) == id {
				return []Subst{s}
			}
			return nil
		}
		return []Subst{s.with(p.Name, ClassValue(id))}
	}
	var out []Subst
	for _, n := range g.classes[id].nodes {
		out = append(out, g.matchNode(p, n, s)...)
	}
	return out
}

func (g *EGraph) matchNode(p *term.Term, n Node, s Subst) []Subst {
	if p.Kind != n.Kind {
		return nil
	}
	switch p.Kind {
	case term.KindVar:
		if p.N != n.N {
			return nil
		}
	case term.KindPrim:
		if p.Op != n.Op {
			return nil
		}
	case term.KindInt:
		if p.Int != n.Int {
			return nil
		}
	case term.KindReal:
		if math.Float64bits(p.Real) != math.Float64bits(n.Real) {
			return nil
		}
	case term.KindLam:
		if p.N != n.N {
			return nil
		}
		return g.matchClass(p.Body, n.Kids[0], s)
	case term.KindApp:
		return g.matchApp(p, n, s)
	}
	return []Subst{s}
}

func (g *EGraph) matchApp(p *term.Term, n Node, s Subst) []Subst {
	args := n.Kids[1:]
	pargs := p.Args
	var rest *term.Term
	if k := len(pargs); k > 0 && pargs[k-1].Kind == term.KindRest {
		rest, pargs = pargs[k-1], pargs[:k-1]
		if len(args) < len(pargs) {
			return nil
		}
	} else if len(args) != len(pargs) {
		return nil
	}
	substs := g.matchClass(p.Fun, n.Kids[0], s)
	for i, pa := range pargs {
		var next []Subst
		for _, s := range substs {
			next = append(next, g.matchClass(pa, args[i], s)...)
		}
		substs = next
		if len(substs) == 0 {
			return nil
		}
	}
	if rest == nil {
		return substs
	}
	tail := make([]ClassID, 0, len(args)-len(pargs))
	for _, a := range args[len(pargs):] {
		tail = append(tail, g.Find(a))
	}
	var out []Subst
	for _, s := range substs {
		if v, ok := s[rest.Name]; ok {
			if v.Sort == SortVec && g.sameVec(v.Vec, tail) {
				out = append(out, s)
			}
			continue
		}
		out = append(out, s.with(rest.Name, VecValue(tail)))
	}
	return out
}

func (g *EGraph) sameVec(a, b []ClassID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if g.Find(a[i]) != g.Find(b[i]) {
			return false
		}
	}
	return true
}
