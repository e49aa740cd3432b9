// Package pipeline runs a single rewriting request: a fresh engine is prepared
// by the stage's installers, the term is submitted, the stage's rule set is
// stepped until a round changes nothing, and the cheapest equivalent term is
// extracted.
//
// Nothing is shared between calls, so independent requests may run
// concurrently.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/term"
)

// Installer registers primitives or rule sets on a fresh engine.
type Installer func(g *egraph.EGraph) error

// Stage describes one request.
type Stage struct {
	Name    string      // Used in errors and logs.
	RuleSet string      // Set that is saturated.
	Install []Installer // Run in order before the term is submitted.
}

// Combine returns an installer declaring name as the union of sets.
func Combine(name string, sets ...string) Installer {
	return func(g *egraph.EGraph) error { return g.Combine(name, sets...) }
}

// Result is the outcome of Run.
type Result struct {
	Term       *term.Term
	Iterations int
	Saturated  bool // False when a bound stopped the rounds.
	Nodes      int
	Classes    int
}

// Run saturates t under st and extracts the result. Hitting
// cfg.MaxIterations or cfg.MaxNodes stops the rounds with a warning and the
// best term found so far is returned.
func Run(ctx context.Context, t *term.Term, st Stage, cfg egraph.Config) (Result, error) {
	g := egraph.New(cfg)
	log := g.Logger().With("stage", st.Name)

	for _, install := range st.Install {
		if err := install(g); err != nil {
			return Result{}, fmt.Errorf("%s: install: %w", st.Name, err)
		}
	}
	root, err := g.Add(t)
	if err != nil {
		return Result{}, fmt.Errorf("%s: submit: %w", st.Name, err)
	}

	res := Result{}
	limited := false
	for cfg.MaxIterations <= 0 || res.Iterations < cfg.MaxIterations {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("%s: %w", st.Name, err)
		}
		res.Iterations++
		changed, err := g.Step(st.RuleSet)
		if errors.Is(err, egraph.ErrNodeLimit) {
			log.Warn("saturation stopped", "iteration", res.Iterations, "err", err)
			limited = true
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("%s: iteration %d: %w", st.Name, res.Iterations, err)
		}
		if !changed {
			res.Saturated = true
			break
		}
	}
	if !res.Saturated && !limited {
		log.Warn("saturation stopped", "iteration", res.Iterations, "max_iterations", cfg.MaxIterations)
	}

	if res.Term, err = g.Extract(root); err != nil {
		return Result{}, fmt.Errorf("%s: %w", st.Name, err)
	}
	res.Nodes, res.Classes = g.NumNodes(), g.NumClasses()
	log.Debug("extracted",
		"iterations", res.Iterations,
		"saturated", res.Saturated,
		"nodes", res.Nodes,
		"size", res.Term.Size())
	return res, nil
}
