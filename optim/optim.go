// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"context"

	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/optim"
	"github.com/born-ml/fsmooth/internal/term"
)

// Config bounds saturation and carries the logger.
type Config = egraph.Config

// RuleSet is the name of the simplifier rule set.
const RuleSet = optim.RuleSet

// DefaultConfig returns the default saturation bounds.
func DefaultConfig() Config {
	return egraph.DefaultConfig()
}

// Optim returns the smallest term equivalent to t.
//
// Example:
//
//	s, err := optim.Optim(ctx, t, optim.DefaultConfig())
func Optim(ctx context.Context, t *term.Term, cfg Config) (*term.Term, error) {
	return optim.Optim(ctx, t, cfg)
}
