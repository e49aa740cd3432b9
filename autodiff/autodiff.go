// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides symbolic forward-mode differentiation of terms.
//
// Differentiation is a rewrite: the function is wrapped in the derivative
// marker and the rules push the marker inward until every primitive is
// replaced by its lifting to dual numbers. A scalar becomes pair(value,
// tangent). The result is an ordinary term with no marker left.
//
// Example:
//
//	import (
//	    "github.com/born-ml/fsmooth/autodiff"
//	    "github.com/born-ml/fsmooth/dsl"
//	)
//
//	func main() {
//	    sum, _ := dsl.Compile(dsl.Fun(func(v dsl.Expr) dsl.Expr { return v.Sum() }))
//
//	    // Gradient, simplified in the same saturation
//	    g, err := autodiff.GradOpt(context.Background(), sum, autodiff.DefaultConfig())
//	    // g is (lam 1 (build (length #0) (lam 1 1.0)))
//	}
package autodiff

import (
	"context"

	"github.com/born-ml/fsmooth/internal/autodiff"
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/parallel"
	"github.com/born-ml/fsmooth/internal/term"
)

// Config bounds saturation and carries the logger.
type Config = egraph.Config

// ParallelConfig controls the fan-out of GradAll.
type ParallelConfig = parallel.Config

// DefaultConfig returns the default saturation bounds.
func DefaultConfig() Config {
	return egraph.DefaultConfig()
}

// DefaultParallelConfig uses one worker per CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// Diff returns the dual-number lifting of f.
func Diff(ctx context.Context, f *term.Term, cfg Config) (*term.Term, error) {
	return autodiff.Diff(ctx, f, cfg)
}

// Grad returns the gradient of a scalar-valued function of a vector.
func Grad(ctx context.Context, f *term.Term, cfg Config) (*term.Term, error) {
	return autodiff.Grad(ctx, f, cfg)
}

// GradOpt returns the gradient of f, simplified during the same saturation.
func GradOpt(ctx context.Context, f *term.Term, cfg Config) (*term.Term, error) {
	return autodiff.GradOpt(ctx, f, cfg)
}

// Jacobian returns the Jacobian of a vector-valued function by columns.
func Jacobian(ctx context.Context, f *term.Term, cfg Config) (*term.Term, error) {
	return autodiff.Jacobian(ctx, f, cfg)
}

// GradAll runs GradOpt for each function concurrently.
func GradAll(ctx context.Context, fs []*term.Term, cfg Config, pcfg ParallelConfig) ([]*term.Term, error) {
	return autodiff.GradAll(ctx, fs, cfg, pcfg)
}
