// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package term exposes the terms of the embedded language.
//
// Terms use de Bruijn indices: Var(0) is the nearest binder. A lambda binds
// several parameters at once, and inside Lam(k, body) the j-th parameter is
// Var(k-1-j).
//
// Example:
//
//	import "github.com/born-ml/fsmooth/term"
//
//	// λx. x * x
//	sq := term.Lam(1, term.AppPrim(term.Mul, term.Var(0), term.Var(0)))
//	fmt.Println(sq) // (lam 1 (mul #0 #0))
package term

import "github.com/born-ml/fsmooth/internal/term"

// Term is an immutable node of the embedded language.
type Term = term.Term

// Kind tags the variant held by a Term.
type Kind = term.Kind

// Op names a primitive operator.
type Op = term.Op

// Term kinds.
const (
	KindVar  = term.KindVar
	KindLam  = term.KindLam
	KindApp  = term.KindApp
	KindPrim = term.KindPrim
	KindInt  = term.KindInt
	KindReal = term.KindReal
	KindHole = term.KindHole
	KindRest = term.KindRest
)

// Primitive operators.
const (
	Add    = term.Add
	Sub    = term.Sub
	Mul    = term.Mul
	Div    = term.Div
	Pow    = term.Pow
	Neg    = term.Neg
	Exp    = term.Exp
	Log    = term.Log
	Sin    = term.Sin
	Cos    = term.Cos
	Tan    = term.Tan
	LT     = term.LT
	GT     = term.GT
	EQ     = term.EQ
	And    = term.And
	Or     = term.Or
	Not    = term.Not
	If     = term.If
	Build  = term.Build
	IFold  = term.IFold
	Get    = term.Get
	Length = term.Length
	Pair   = term.Pair
	Fst    = term.Fst
	Snd    = term.Snd

	// D marks a subterm for differentiation. It never survives extraction.
	D = term.D
)

// Var returns a reference to the n-th enclosing binder.
func Var(n int) *Term { return term.Var(n) }

// Lam returns a lambda binding arity parameters.
func Lam(arity int, body *Term) *Term { return term.Lam(arity, body) }

// App applies fun to args.
func App(fun *Term, args ...*Term) *Term { return term.App(fun, args...) }

// Prim returns the primitive operator op as a term.
func Prim(op Op) *Term { return term.Prim(op) }

// AppPrim applies the primitive op to args.
func AppPrim(op Op, args ...*Term) *Term { return term.AppPrim(op, args...) }

// Int returns an integer literal.
func Int(n int64) *Term { return term.Int(n) }

// Real returns a real literal.
func Real(x float64) *Term { return term.Real(x) }

// Subst instantiates the parameters of a lambda body with args.
func Subst(body *Term, args []*Term) *Term { return term.Subst(body, args) }

// Beta reduces t if it applies a lambda of matching arity.
func Beta(t *Term) (*Term, bool) { return term.Beta(t) }
