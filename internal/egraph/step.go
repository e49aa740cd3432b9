package egraph

import (
	"errors"
	"fmt"
)

// Step applies every rule of set once to all matches found at the start of
// the round, then restores congruence. It reports whether the graph changed.
// Once the graph holds more than Config.MaxNodes nodes the remaining matches
// of the round are dropped, congruence is restored and ErrNodeLimit is returned.
func (g *EGraph) Step(set string) (bool, error) {
	rules, err := g.ruleSet(set)
	if err != nil {
		return false, err
	}
	if g.dirty {
		g.rebuild()
	}
	g.changed = false
	g.analyze()
	g.extractAll()

	found := make([][]match, len(rules))
	total := 0
	for i, r := range rules {
		found[i] = g.search(r.LHS)
		total += len(found[i])
	}
	limited := false
matches:
	for i, r := range rules {
		for _, m := range found[i] {
			if err := g.apply(r, m); err != nil {
				return g.changed, fmt.Errorf("rule %q: %w", r.Name, err)
			}
			if g.cfg.MaxNodes > 0 && len(g.memo) > g.cfg.MaxNodes {
				limited = true
				break matches
			}
		}
	}
	g.rebuild()

	g.log.Debug("egraph step",
		"set", set,
		"matches", total,
		"classes", g.NumClasses(),
		"nodes", g.NumNodes(),
		"changed", g.changed)

	if limited || (g.cfg.MaxNodes > 0 && g.NumNodes() > g.cfg.MaxNodes) {
		return g.changed, newError(KindLimit, "step", fmt.Errorf("%d nodes exceed %d", g.NumNodes(), g.cfg.MaxNodes))
	}
	return g.changed, nil
}

func (g *EGraph) apply(r Rule, m match) error {
	if r.Apply != nil {
		ids, err := r.Apply(g, m.root, m.subst)
		if errors.Is(err, ErrSortMismatch) {
			g.log.Debug("rule skipped", "rule", r.Name, "err", err)
			return nil
		}
		if err != nil {
			return err
		}
		for _, id := range ids {
			g.Union(m.root, id)
		}
	} else {
		id, err := g.Instantiate(r.RHS, m.subst)
		if err != nil {
			return err
		}
		g.Union(m.root, id)
	}
	if r.Subsume {
		g.subsume(m.node)
	}
	return nil
}
