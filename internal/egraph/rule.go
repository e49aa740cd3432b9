package egraph

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/born-ml/fsmooth/internal/term"
)

// Applier computes the right-hand side of a rule for one match. Each returned
// class is merged with root. Returning an error of kind KindSort means the
// rule does not fire for this match; any other error aborts the round.
type Applier func(g *EGraph, root ClassID, s Subst) ([]ClassID, error)

// Rule is an equation LHS => RHS. Exactly one of RHS and Apply is set. A
// subsuming rule also marks the matched node so extraction avoids it.
type Rule struct {
	Name    string
	LHS     *term.Term
	RHS     *term.Term
	Apply   Applier
	Subsume bool
}

// Rewrite is a pattern-to-pattern rule.
func Rewrite(name string, lhs, rhs *term.Term) Rule {
	return Rule{Name: name, LHS: lhs, RHS: rhs}
}

// Dynamic is a rule whose right-hand side is computed by apply.
func Dynamic(name string, lhs *term.Term, apply Applier) Rule {
	return Rule{Name: name, LHS: lhs, Apply: apply}
}

// Subsuming returns r marked as subsuming.
func (r Rule) Subsuming() Rule {
	r.Subsume = true
	return r
}

func (r Rule) validate() error {
	if r.LHS == nil {
		return errors.New("missing left-hand side")
	}
	if r.LHS.Kind == term.KindHole || r.LHS.Kind == term.KindRest {
		return errors.New("left-hand side is a bare pattern variable")
	}
	if (r.RHS == nil) == (r.Apply == nil) {
		return errors.New("exactly one of RHS and Apply must be set")
	}
	if err := checkRest(r.LHS); err != nil {
		return err
	}
	if r.RHS == nil {
		return nil
	}
	if err := checkRest(r.RHS); err != nil {
		return err
	}
	if missing, _ := lo.Difference(r.RHS.Holes(), r.LHS.Holes()); len(missing) > 0 {
		return fmt.Errorf("right-hand side uses unbound %v", missing)
	}
	return nil
}

func checkRest(t *term.Term) error {
	switch t.Kind {
	case term.KindRest:
		return fmt.Errorf("?%s... outside the last argument of an application", t.Name)
	case term.KindLam:
		return checkRest(t.Body)
	case term.KindApp:
		if err := checkRest(t.Fun); err != nil {
			return err
		}
		for i, a := range t.Args {
			if a.Kind == term.KindRest && i == len(t.Args)-1 {
				continue
			}
			if err := checkRest(a); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddRules appends rules to the named set, creating it if needed.
func (g *EGraph) AddRules(set string, rules ...Rule) error {
	if _, ok := g.sets[set]; ok {
		return newError(KindSetup, "add rules", fmt.Errorf("%q is a combined set", set))
	}
	for _, r := range rules {
		if err := r.validate(); err != nil {
			return newError(KindSetup, "add rules", fmt.Errorf("rule %q in %q: %w", r.Name, set, err))
		}
	}
	g.rules[set] = append(g.rules[set], rules...)
	return nil
}

// Combine declares name as the union of existing sets.
func (g *EGraph) Combine(name string, members ...string) error {
	if _, ok := g.rules[name]; ok {
		return newError(KindSetup, "combine", fmt.Errorf("%q already holds rules", name))
	}
	for _, m := range members {
		if !g.hasSet(m) {
			return newError(KindSetup, "combine", fmt.Errorf("%w %q", ErrUnknownRuleSet, m))
		}
	}
	g.sets[name] = members
	return nil
}

func (g *EGraph) hasSet(name string) bool {
	_, rules := g.rules[name]
	_, combined := g.sets[name]
	return rules || combined
}

func (g *EGraph) ruleSet(name string) ([]Rule, error) {
	if rules, ok := g.rules[name]; ok {
		return rules, nil
	}
	members, ok := g.sets[name]
	if !ok {
		return nil, newError(KindSetup, "step", fmt.Errorf("%w %q", ErrUnknownRuleSet, name))
	}
	var out []Rule
	for _, m := range members {
		rules, err := g.ruleSet(m)
		if err != nil {
			return nil, err
		}
		out = append(out, rules...)
	}
	return out, nil
}
