// Package autodiff implements symbolic forward-mode differentiation.
//
// Architecture:
//   - D(t) marks a term to differentiate; D is never extracted
//   - The "deriv" rule set pushes D through applications and lambdas and
//     replaces D(op) by the dual-number lifting from the primitive table
//   - Beta reduction from the base semantics removes the lifted lambdas
//   - Grad and Jacobian seed one basis direction per input coordinate
//
// Under the dual encoding a scalar is pair(value, tangent), so for a
// one-argument f the tangent of Diff(f) applied to pair(x, 1) is f'(x).
//
// Usage:
//
//	f, _ := dsl.Compile(dsl.Fun(func(x dsl.Expr) dsl.Expr { return x.Mul(x) }))
//	df, _ := autodiff.Diff(ctx, f, egraph.DefaultConfig())
//	// df applied to pair(3, 1) evaluates to pair(9, 6)
//
// Grad repeats the forward pass once per coordinate, so a gradient of an
// n-dimensional input costs n directional derivatives.
package autodiff

import (
	"context"
	"fmt"

	"github.com/born-ml/fsmooth/internal/dsl"
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/lang"
	"github.com/born-ml/fsmooth/internal/optim"
	"github.com/born-ml/fsmooth/internal/parallel"
	"github.com/born-ml/fsmooth/internal/pipeline"
	"github.com/born-ml/fsmooth/internal/term"
)

// Names of the combined rule sets.
const (
	DiffSet = "diff" // base + deriv
	BothSet = "both" // base + deriv + optim
)

// DiffStage differentiates under base semantics.
func DiffStage() pipeline.Stage {
	return pipeline.Stage{
		Name:    DiffSet,
		RuleSet: DiffSet,
		Install: []pipeline.Installer{
			lang.Install,
			Install,
			pipeline.Combine(DiffSet, lang.Base, RuleSet),
		},
	}
}

// BothStage differentiates and simplifies in one saturation, which reaches
// simplifications that running the two passes in sequence can miss.
func BothStage() pipeline.Stage {
	return pipeline.Stage{
		Name:    BothSet,
		RuleSet: BothSet,
		Install: []pipeline.Installer{
			lang.Install,
			Install,
			optim.Install,
			pipeline.Combine(BothSet, lang.Base, RuleSet, optim.RuleSet),
		},
	}
}

// Diff returns the dual-number lifting of f.
func Diff(ctx context.Context, f *term.Term, cfg egraph.Config) (*term.Term, error) {
	return run(ctx, term.AppPrim(term.D, f), DiffStage(), cfg)
}

// Grad returns λv. ∇f(v) for a scalar-valued f over a vector.
func Grad(ctx context.Context, f *term.Term, cfg egraph.Config) (*term.Term, error) {
	return run(ctx, GradTerm(f), DiffStage(), cfg)
}

// GradOpt is Grad saturated together with the simplifier.
func GradOpt(ctx context.Context, f *term.Term, cfg egraph.Config) (*term.Term, error) {
	return run(ctx, GradTerm(f), BothStage(), cfg)
}

// Jacobian returns λv. J(v) for a vector-valued f. Element [i][j] is the
// derivative of output j with respect to input i.
func Jacobian(ctx context.Context, f *term.Term, cfg egraph.Config) (*term.Term, error) {
	return run(ctx, JacobianTerm(f), DiffStage(), cfg)
}

// GradAll computes GradOpt of every function, running up to
// pcfg.NumWorkers pipelines at once.
func GradAll(ctx context.Context, fs []*term.Term, cfg egraph.Config, pcfg parallel.Config) ([]*term.Term, error) {
	out := make([]*term.Term, len(fs))
	err := parallel.For(ctx, len(fs), func(ctx context.Context, i int) error {
		g, err := GradOpt(ctx, fs[i], cfg)
		if err != nil {
			return fmt.Errorf("function %d: %w", i, err)
		}
		out[i] = g
		return nil
	}, pcfg)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GradTerm builds
//
//	λv. build(length v, λi. snd(D(f)(vector_zip(v, one_hot(length v, i)))))
func GradTerm(f *term.Term) *term.Term {
	df := dsl.Deriv(dsl.From(f))
	return dsl.Fun(func(v dsl.Expr) dsl.Expr {
		n := v.Length()
		return n.Build(func(i dsl.Expr) dsl.Expr {
			return df.App(v.VectorZip(n.OneHot(i))).Snd()
		})
	}).Term()
}

// JacobianTerm builds
//
//	λv. build(length v, λi. build(length(f v), λj. snd(get(D(f)(zip_i), j))))
//
// where zip_i seeds direction i as in GradTerm.
func JacobianTerm(f *term.Term) *term.Term {
	fn := dsl.From(f)
	df := dsl.Deriv(fn)
	return dsl.Fun(func(v dsl.Expr) dsl.Expr {
		n := v.Length()
		return n.Build(func(i dsl.Expr) dsl.Expr {
			column := df.App(v.VectorZip(n.OneHot(i)))
			return fn.App(v).Length().Build(func(j dsl.Expr) dsl.Expr {
				return column.Get(j).Snd()
			})
		})
	}).Term()
}

func run(ctx context.Context, t *term.Term, st pipeline.Stage, cfg egraph.Config) (*term.Term, error) {
	res, err := pipeline.Run(ctx, t, st, cfg)
	if err != nil {
		return nil, fmt.Errorf("autodiff: %w", err)
	}
	return res.Term, nil
}
