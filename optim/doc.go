// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the algebraic simplifier for terms.
//
// # Overview
//
// The simplifier saturates a term under the base language semantics (beta
// reduction, literal folding) together with the simplification rules:
//   - identities and annihilators: x+0, x*1, x*0, x-x
//   - commutativity of add, mul and eq
//   - build/get fusion and length of build
//   - pair projections and fold/pair fusion
//   - conditional hoisting and collapse of one-hot folds
//
// The smallest equivalent term is returned.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/fsmooth/optim"
//	    "github.com/born-ml/fsmooth/term"
//	)
//
//	func main() {
//	    t := term.AppPrim(term.Mul, term.Var(0), term.Real(1))
//	    s, err := optim.Optim(context.Background(), t, optim.DefaultConfig())
//	    // s is #0
//	}
package optim
