// Package lang installs the base semantics of the embedded language into an
// engine:
//   - beta reduction of applied lambdas, one rule per arity
//   - folding of arithmetic on literals
//   - the "map" and "set-shift" primitives used by the other rule sets
package lang

import "github.com/born-ml/fsmooth/internal/egraph"

// Base is the name of the rule set registered by Install.
const Base = "base"

// MaxArity is the largest lambda arity beta reduction handles.
const MaxArity = 6

// Install registers the primitives and the Base rule set on g.
func Install(g *egraph.EGraph) error {
	for _, p := range []egraph.Primitive{mapPrim{}, setShiftPrim{}} {
		if err := g.AddPrimitive(p); err != nil {
			return err
		}
	}
	return g.AddRules(Base, Rules()...)
}

// Rules returns the Base rules.
func Rules() []egraph.Rule {
	rules := make([]egraph.Rule, 0, MaxArity+len(binaryOps)+len(unaryOps))
	for k := 1; k <= MaxArity; k++ {
		rules = append(rules, betaRule(k))
	}
	return append(rules, foldRules()...)
}
