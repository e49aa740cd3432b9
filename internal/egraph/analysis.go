package egraph

import (
	"slices"

	"github.com/born-ml/fsmooth/internal/term"
)

// VarSet is a sorted set of de Bruijn indices.
type VarSet []int

// Shift moves the set out of one binder: index 0 is dropped, the rest decrease by one.
func (s VarSet) Shift() VarSet {
	out := make(VarSet, 0, len(s))
	for _, n := range s {
		if n > 0 {
			out = append(out, n-1)
		}
	}
	return out
}

// Union returns the sorted union of s and o.
func (s VarSet) Union(o VarSet) VarSet {
	out := append(slices.Clone(s), o...)
	slices.Sort(out)
	return slices.Compact(out)
}

// Has reports whether n is in s.
func (s VarSet) Has(n int) bool {
	_, ok := slices.BinarySearch(s, n)
	return ok
}

// MinBelow reports whether s holds an index smaller than n.
func (s VarSet) MinBelow(n int) bool { return len(s) > 0 && s[0] < n }

// analyze computes, per class, the union of the free indices of its nodes.
// The union over-approximates: a class may hold terms that drop a variable.
func (g *EGraph) analyze() {
	fv := make(map[ClassID]VarSet, len(g.classes))
	ids := g.classIDs()
	for changed := true; changed; {
		changed = false
		for _, id := range ids {
			cur := fv[id]
			next := cur
			for _, n := range g.classes[id].nodes {
				next = next.Union(g.nodeVars(n, fv))
			}
			if !slices.Equal(cur, next) {
				fv[id] = next
				changed = true
			}
		}
	}
	g.fv = fv
}

func (g *EGraph) nodeVars(n Node, fv map[ClassID]VarSet) VarSet {
	switch n.Kind {
	case term.KindVar:
		return VarSet{n.N}
	case term.KindLam:
		s := fv[g.Find(n.Kids[0])]
		for range n.N {
			s = s.Shift()
		}
		return s
	case term.KindApp:
		var s VarSet
		for _, k := range n.Kids {
			s = s.Union(fv[g.Find(k)])
		}
		return s
	}
	return nil
}

// FreeVars returns the free indices of the class of id as of the last round.
func (g *EGraph) FreeVars(id ClassID) VarSet {
	if s, ok := g.fv[id]; ok {
		return s
	}
	return g.fv[g.Find(id)]
}
