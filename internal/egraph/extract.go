package egraph

import (
	"fmt"

	"github.com/born-ml/fsmooth/internal/term"
)

type choice struct {
	cost int
	term *term.Term
	repr string
}

// extractAll picks, for every class, the node of least total size. Equal
// costs are broken by the printed term so the choice does not depend on class
// numbering. Derivative markers are never chosen; subsumed nodes pay
// Config.SubsumePenalty.
func (g *EGraph) extractAll() {
	best := make(map[ClassID]*choice, len(g.classes))
	ids := g.classIDs()
	for changed := true; changed; {
		changed = false
		for _, id := range ids {
			for _, n := range g.classes[id].nodes {
				cost, kids, ok := g.nodeCost(n, best)
				if !ok {
					continue
				}
				cur := best[id]
				if cur != nil && cost > cur.cost {
					continue
				}
				t := n.build(kids)
				if cur != nil && cost == cur.cost && t.Equal(cur.term) {
					continue
				}
				repr := t.String()
				if cur == nil || cost < cur.cost || repr < cur.repr {
					best[id] = &choice{cost: cost, term: t, repr: repr}
					changed = true
				}
			}
		}
	}
	g.best = best
}

// nodeCost sums the cost of n over the current choices of its children.
// The printed form is only built by the caller when n can still win.
func (g *EGraph) nodeCost(n Node, best map[ClassID]*choice) (int, []*term.Term, bool) {
	if n.Kind == term.KindPrim && n.Op == term.D {
		return 0, nil, false
	}
	cost := 1
	kids := make([]*term.Term, len(n.Kids))
	for i, k := range n.Kids {
		c, ok := best[g.Find(k)]
		if !ok {
			return 0, nil, false
		}
		cost += c.cost
		kids[i] = c.term
	}
	if g.isSubsumed(n) {
		cost += g.cfg.SubsumePenalty
	}
	return cost, kids, true
}

// Best returns the cheapest term of the class of id as of the start of the
// current round.
func (g *EGraph) Best(id ClassID) (*term.Term, error) {
	c, ok := g.best[id]
	if !ok {
		c, ok = g.best[g.Find(id)]
	}
	if !ok {
		return nil, newError(KindExtract, "best", fmt.Errorf("class %d", id))
	}
	return c.term, nil
}

// Extract rebuilds the graph and returns the cheapest term equivalent to id.
func (g *EGraph) Extract(id ClassID) (*term.Term, error) {
	if g.dirty {
		g.rebuild()
	}
	g.extractAll()
	t, err := g.Best(g.Find(id))
	if err != nil {
		return nil, newError(KindExtract, "extract", fmt.Errorf("class %d has no term without derivative markers: %w", id, err))
	}
	return t, nil
}
