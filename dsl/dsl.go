// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dsl builds terms from Go closures without index arithmetic.
//
// Example:
//
//	import "github.com/born-ml/fsmooth/dsl"
//
//	sum := dsl.Fun(func(v dsl.Expr) dsl.Expr {
//	    return dsl.IFold(func(acc, i dsl.Expr) dsl.Expr {
//	        return acc.Add(v.Get(i))
//	    }, dsl.Real(0), v.Length())
//	})
//	t, err := dsl.Compile(sum)
package dsl

import (
	"github.com/born-ml/fsmooth/internal/dsl"
	"github.com/born-ml/fsmooth/internal/term"
)

// Expr is a term under construction. Methods on Expr provide the arithmetic,
// comparison, array and pair combinators.
type Expr = dsl.Expr

// Context carries the binder depth at the point of use.
type Context = dsl.Context

// ErrEscapedParam is raised when a parameter is used outside its binder.
var ErrEscapedParam = dsl.ErrEscapedParam

// Compile builds e as a top-level term, returning ErrEscapedParam instead of
// panicking.
func Compile(e Expr) (*term.Term, error) { return dsl.Compile(e) }

// Fun builds a one-parameter lambda.
func Fun(f func(x Expr) Expr) Expr { return dsl.Fun(f) }

// Fun2 builds a two-parameter lambda.
func Fun2(f func(x, y Expr) Expr) Expr { return dsl.Fun2(f) }

// Fun3 builds a three-parameter lambda.
func Fun3(f func(x, y, z Expr) Expr) Expr { return dsl.Fun3(f) }

// IFold folds f over the indices 0..n-1 starting from init.
func IFold(f func(acc, i Expr) Expr, init, n Expr) Expr { return dsl.IFold(f, init, n) }

// From embeds a closed top-level term.
func From(t *term.Term) Expr { return dsl.From(t) }

// Real returns a real literal.
func Real(x float64) Expr { return dsl.Real(x) }

// Int returns an integer literal.
func Int(n int64) Expr { return dsl.Int(n) }

// Deriv marks e for differentiation.
func Deriv(e Expr) Expr { return dsl.Deriv(e) }
