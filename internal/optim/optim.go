// Package optim implements the algebraic simplifier.
//
// This package provides:
//   - Rules: the "optim" rule set
//   - Install: registers the set on an engine
//   - Optim: base semantics plus the simplifier, saturated and extracted
//
// Most rules are the Simplify rows of the primitive table: identities and
// annihilators, commutativity, build/get fusion and pair projections. The rest
// look inside lambda bodies and live here: hoisting a conditional out of a
// one-argument application, splitting a fold over pairs into two folds, and
// collapsing a fold over a one-hot indicator of the enclosing build index.
//
// Commutativity is safe only because the engine unions instead of rewriting
// destructively.
package optim

import (
	"context"

	"github.com/born-ml/fsmooth/internal/autodiff/ops"
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/lang"
	"github.com/born-ml/fsmooth/internal/pipeline"
	"github.com/born-ml/fsmooth/internal/term"
)

// RuleSet is the name of the simplifier rule set.
const RuleSet = "optim"

// Rules returns the simplifier rules.
func Rules() []egraph.Rule {
	return append(ops.SimplifyRules(),
		hoistIf(),
		fusePairFold(),
		collapseOneHotFold(),
	)
}

// Install registers RuleSet on g.
func Install(g *egraph.EGraph) error {
	return g.AddRules(RuleSet, Rules()...)
}

// Stage saturates base semantics together with the simplifier.
func Stage() pipeline.Stage {
	return pipeline.Stage{
		Name:    RuleSet,
		RuleSet: "simplify",
		Install: []pipeline.Installer{
			lang.Install,
			Install,
			pipeline.Combine("simplify", lang.Base, RuleSet),
		},
	}
}

// Optim returns the smallest term equivalent to t found by the simplifier.
func Optim(ctx context.Context, t *term.Term, cfg egraph.Config) (*term.Term, error) {
	res, err := pipeline.Run(ctx, t, Stage(), cfg)
	if err != nil {
		return nil, err
	}
	return res.Term, nil
}
