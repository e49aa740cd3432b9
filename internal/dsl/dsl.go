// Package dsl builds well-scoped terms from ordinary Go closures.
//
// An Expr is a deferred term: it is only turned into a term once the binder
// depth at its point of use is known. Builders such as Fun, Build and IFold
// hand their closure parameter tokens bound to a level; a token resolves to
// Var(depth - level) wherever it ends up, so closures nest freely without any
// index arithmetic by the caller.
//
// The depth travels as an explicit Context value. Nothing is shared between
// goroutines or between unrelated constructions.
package dsl

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/born-ml/fsmooth/internal/term"
)

// ErrEscapedParam is the panic value raised when a parameter token is used
// after the builder that introduced it has returned.
var ErrEscapedParam = errors.New("dsl: parameter used outside its binder")

// Context is the number of binders enclosing the term being built.
type Context struct {
	depth int
}

// Depth returns the current binder depth.
func (c Context) Depth() int { return c.depth }

func (c Context) enter(arity int) Context { return Context{depth: c.depth + arity} }

// Expr is a term under construction.
type Expr struct {
	build func(Context) *term.Term
}

// At builds e for use at ctx.
func (e Expr) At(ctx Context) *term.Term { return e.build(ctx) }

// Term builds e as a top-level term. It panics with ErrEscapedParam on a
// parameter used outside its builder; see Compile for an error-returning form.
func (e Expr) Term() *term.Term { return e.build(Context{}) }

// String renders the top-level term.
func (e Expr) String() string { return e.Term().String() }

// Compile is Term with the escaped-parameter panic turned into an error.
func Compile(e Expr) (t *term.Term, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok && errors.Is(rerr, ErrEscapedParam) {
				err = rerr
				return
			}
			panic(r)
		}
	}()
	return e.Term(), nil
}

type frame struct {
	level int
	open  bool
}

func param(fr *frame) Expr {
	return Expr{func(ctx Context) *term.Term {
		if !fr.open || ctx.depth < fr.level {
			panic(fmt.Errorf("%w (bound at level %d, used at depth %d)", ErrEscapedParam, fr.level, ctx.depth))
		}
		return term.Var(ctx.depth - fr.level)
	}}
}

// bind introduces a lambda of the given arity whose body is produced by f.
func bind(arity int, f func(params []Expr) Expr) Expr {
	return Expr{func(ctx Context) *term.Term {
		frames := make([]*frame, arity)
		params := make([]Expr, arity)
		for j := range frames {
			frames[j] = &frame{level: ctx.depth + 1 + j}
			params[j] = param(frames[j])
		}
		body := f(params)
		for _, fr := range frames {
			fr.open = true
		}
		t := body.At(ctx.enter(arity))
		for _, fr := range frames {
			fr.open = false
		}
		return term.Lam(arity, t)
	}}
}

// Fun builds a one-parameter lambda.
func Fun(f func(x Expr) Expr) Expr {
	return bind(1, func(p []Expr) Expr { return f(p[0]) })
}

// Fun2 builds a two-parameter lambda.
func Fun2(f func(x, y Expr) Expr) Expr {
	return bind(2, func(p []Expr) Expr { return f(p[0], p[1]) })
}

// Fun3 builds a three-parameter lambda.
func Fun3(f func(x, y, z Expr) Expr) Expr {
	return bind(3, func(p []Expr) Expr { return f(p[0], p[1], p[2]) })
}

// From embeds a top-level term, lifting its free variables to the use depth.
func From(t *term.Term) Expr {
	return Expr{func(ctx Context) *term.Term { return t.Lift(ctx.depth) }}
}

// Var is a raw de Bruijn index. It is not adjusted for depth; it exists for
// authoring rewrite rules.
func Var(n int) Expr {
	return Expr{func(Context) *term.Term { return term.Var(n) }}
}

// Lam is a raw lambda of the given arity around body.
func Lam(arity int, body Expr) Expr {
	return Expr{func(ctx Context) *term.Term { return term.Lam(arity, body.At(ctx.enter(arity))) }}
}

// Hole is a named pattern variable.
func Hole(name string) Expr {
	return Expr{func(Context) *term.Term { return term.Hole(name) }}
}

// Rest is a pattern variable for the remaining arguments of an application.
func Rest(name string) Expr {
	return Expr{func(Context) *term.Term { return term.Rest(name) }}
}

// Real is a real literal.
func Real(x float64) Expr {
	return Expr{func(Context) *term.Term { return term.Real(x) }}
}

// Int is an integer literal.
func Int(n int64) Expr {
	return Expr{func(Context) *term.Term { return term.Int(n) }}
}

// Prim is the bare primitive operator op.
func Prim(op term.Op) Expr {
	return Expr{func(Context) *term.Term { return term.Prim(op) }}
}

// Call applies the primitive op to args.
func Call(op term.Op, args ...Expr) Expr {
	return Expr{func(ctx Context) *term.Term {
		return term.AppPrim(op, at(ctx, args)...)
	}}
}

// App applies e to args.
func (e Expr) App(args ...Expr) Expr {
	return Expr{func(ctx Context) *term.Term {
		return term.App(e.At(ctx), at(ctx, args)...)
	}}
}

func at(ctx Context, es []Expr) []*term.Term {
	return lo.Map(es, func(e Expr, _ int) *term.Term { return e.At(ctx) })
}

// Deriv wraps e in the forward-mode differentiation marker.
func Deriv(e Expr) Expr { return Call(term.D, e) }
