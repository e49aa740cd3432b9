// Package egraph is a small equality-saturation engine over terms of the
// embedded language.
//
// Terms are submitted with Add, rule sets are registered with AddRules and run
// one round at a time with Step, and Extract returns the cheapest term
// equivalent to a class. Rules either instantiate a right-hand pattern or run
// an Applier, which may consult the current best terms, the free-variable
// analysis and registered primitives.
//
// An EGraph is not safe for concurrent use. Callers create one per request.
package egraph

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/samber/lo"

	"github.com/born-ml/fsmooth/internal/term"
)

type eclass struct {
	nodes []Node
}

// EGraph holds equivalence classes of terms.
type EGraph struct {
	cfg Config
	log *slog.Logger

	parent   []ClassID
	classes  map[ClassID]*eclass
	memo     map[string]ClassID
	subsumed map[string]Node

	rules map[string][]Rule
	sets  map[string][]string
	prims map[string]Primitive

	dirty   bool
	changed bool

	fv   map[ClassID]VarSet
	best map[ClassID]*choice
}

// New returns an empty engine.
func New(cfg Config) *EGraph {
	return &EGraph{
		cfg:      cfg,
		log:      cfg.logger(),
		classes:  make(map[ClassID]*eclass),
		memo:     make(map[string]ClassID),
		subsumed: make(map[string]Node),
		rules:    make(map[string][]Rule),
		sets:     make(map[string][]string),
		prims:    make(map[string]Primitive),
	}
}

// Find returns the canonical id of the class containing id.
func (g *EGraph) Find(id ClassID) ClassID {
	root := id
	for g.parent[root] != root {
		root = g.parent[root]
	}
	for g.parent[id] != root {
		next := g.parent[id]
		g.parent[id] = root
		id = next
	}
	return root
}

func (g *EGraph) canon(n Node) Node {
	if len(n.Kids) == 0 {
		return n
	}
	kids := make([]ClassID, len(n.Kids))
	for i, k := range n.Kids {
		kids[i] = g.Find(k)
	}
	n.Kids = kids
	return n
}

// AddNode inserts n, returning the class that already holds it if any.
func (g *EGraph) AddNode(n Node) ClassID {
	n = g.canon(n)
	k := n.key()
	if id, ok := g.memo[k]; ok {
		return g.Find(id)
	}
	id := ClassID(len(g.parent))
	g.parent = append(g.parent, id)
	g.classes[id] = &eclass{nodes: []Node{n}}
	g.memo[k] = id
	g.changed = true
	return id
}

// Add submits a hole-free term and returns its class.
func (g *EGraph) Add(t *term.Term) (ClassID, error) {
	return g.Instantiate(t, nil)
}

// Instantiate adds t with its holes replaced by the classes bound in s.
func (g *EGraph) Instantiate(t *term.Term, s Subst) (ClassID, error) {
	switch t.Kind {
	case term.KindHole:
		v, ok := s[t.Name]
		if !ok || v.Sort != SortClass {
			return 0, newError(KindSetup, "instantiate", fmt.Errorf("hole ?%s is not bound to a class", t.Name))
		}
		return g.Find(v.Class), nil
	case term.KindRest:
		return 0, newError(KindSetup, "instantiate", fmt.Errorf("?%s... outside an application", t.Name))
	case term.KindLam:
		body, err := g.Instantiate(t.Body, s)
		if err != nil {
			return 0, err
		}
		return g.AddNode(Node{Kind: term.KindLam, N: t.N, Kids: []ClassID{body}}), nil
	case term.KindApp:
		fun, err := g.Instantiate(t.Fun, s)
		if err != nil {
			return 0, err
		}
		kids := []ClassID{fun}
		for _, a := range t.Args {
			if a.Kind == term.KindRest {
				v, ok := s[a.Name]
				if !ok || v.Sort != SortVec {
					return 0, newError(KindSetup, "instantiate", fmt.Errorf("?%s... is not bound to a vector", a.Name))
				}
				kids = append(kids, v.Vec...)
				continue
			}
			id, err := g.Instantiate(a, s)
			if err != nil {
				return 0, err
			}
			kids = append(kids, id)
		}
		return g.AddNode(Node{Kind: term.KindApp, Kids: kids}), nil
	}
	return g.AddNode(leafNode(t)), nil
}

// Union merges the classes of a and b. It reports whether they were distinct.
func (g *EGraph) Union(a, b ClassID) bool {
	a, b = g.Find(a), g.Find(b)
	if a == b {
		return false
	}
	if len(g.classes[a].nodes) < len(g.classes[b].nodes) {
		a, b = b, a
	}
	g.parent[b] = a
	g.classes[a].nodes = append(g.classes[a].nodes, g.classes[b].nodes...)
	delete(g.classes, b)
	g.dirty = true
	g.changed = true
	return true
}

// Equiv reports whether a and b are in the same class.
func (g *EGraph) Equiv(a, b ClassID) bool { return g.Find(a) == g.Find(b) }

// Nodes returns the canonical nodes of the class of id.
func (g *EGraph) Nodes(id ClassID) []Node {
	c := g.classes[g.Find(id)]
	return lo.Map(c.nodes, func(n Node, _ int) Node { return g.canon(n) })
}

// NumNodes returns the number of nodes over all classes.
func (g *EGraph) NumNodes() int {
	return lo.SumBy(lo.Values(g.classes), func(c *eclass) int { return len(c.nodes) })
}

// NumClasses returns the number of live classes.
func (g *EGraph) NumClasses() int { return len(g.classes) }

func (g *EGraph) classIDs() []ClassID {
	ids := lo.Keys(g.classes)
	slices.Sort(ids)
	return ids
}

// rebuild restores the congruence invariant: no two classes hold nodes that
// are equal after canonicalising their children.
func (g *EGraph) rebuild() {
	for {
		memo := make(map[string]ClassID, len(g.memo))
		var merges [][2]ClassID
		for _, id := range g.classIDs() {
			c := g.classes[id]
			seen := make(map[string]bool, len(c.nodes))
			nodes := make([]Node, 0, len(c.nodes))
			for _, n := range c.nodes {
				n = g.canon(n)
				k := n.key()
				if seen[k] {
					continue
				}
				seen[k] = true
				nodes = append(nodes, n)
				if other, ok := memo[k]; ok && other != id {
					merges = append(merges, [2]ClassID{other, id})
					continue
				}
				memo[k] = id
			}
			c.nodes = nodes
		}
		g.memo = memo
		if len(merges) == 0 {
			break
		}
		for _, m := range merges {
			g.Union(m[0], m[1])
		}
	}
	subsumed := make(map[string]Node, len(g.subsumed))
	for _, n := range g.subsumed {
		n = g.canon(n)
		subsumed[n.key()] = n
	}
	g.subsumed = subsumed
	g.dirty = false
}

// subsume marks n as a node extraction should avoid.
func (g *EGraph) subsume(n Node) {
	n = g.canon(n)
	k := n.key()
	if _, ok := g.subsumed[k]; ok {
		return
	}
	g.subsumed[k] = n
	g.changed = true
}

func (g *EGraph) isSubsumed(n Node) bool {
	_, ok := g.subsumed[g.canon(n).key()]
	return ok
}

// Logger returns the logger the engine reports to.
func (g *EGraph) Logger() *slog.Logger { return g.log }
