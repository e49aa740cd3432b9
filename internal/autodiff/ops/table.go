// Package ops is the primitive table of the language.
//
// Each row names an operator, its arity, its lifting to dual numbers and the
// simplification rules that belong to it:
//   - arithmetic: Add, Sub, Mul, Div, Pow, Neg
//   - transcendental: Exp, Log, Sin, Cos, Tan
//   - comparison and logic: LT, GT, EQ, And, Or, Not, If
//   - arrays: Build, IFold, Get, Length
//   - pairs: Pair, Fst, Snd
//
// A dual number is Pair(value, tangent). Arrays hold duals, booleans are left
// alone and integer indices travel as Pair(i, 0.0).
package ops

import (
	"slices"

	"github.com/samber/lo"

	"github.com/born-ml/fsmooth/internal/dsl"
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/term"
)

// Primitive is one row of the table.
type Primitive struct {
	Op    term.Op
	Arity int

	// Deriv is a closed lambda of Arity parameters taking duals to a dual.
	Deriv dsl.Expr

	// Simplify holds the rewrites of the optimiser that are specific to Op.
	Simplify []egraph.Rule
}

// DerivTerm compiles p.Deriv.
func (p Primitive) DerivTerm() (*term.Term, error) {
	return dsl.Compile(p.Deriv)
}

var (
	table = slices.Concat(arith(), transcendental(), compare(), array(), pair())
	byOp  = lo.KeyBy(table, func(p Primitive) term.Op { return p.Op })
)

// All returns every row in table order.
func All() []Primitive { return slices.Clone(table) }

// Lookup returns the row for op.
func Lookup(op term.Op) (Primitive, bool) {
	p, ok := byOp[op]
	return p, ok
}

// SimplifyRules returns the Simplify rules of every row.
func SimplifyRules() []egraph.Rule {
	return lo.FlatMap(table, func(p Primitive, _ int) []egraph.Rule { return p.Simplify })
}

// Pattern variables shared by the rules.
var (
	x = dsl.Hole("x")
	y = dsl.Hole("y")
	z = dsl.Hole("z")
	f = dsl.Hole("f")
	n = dsl.Hole("n")
	i = dsl.Hole("i")

	zero = dsl.Real(0)
	one  = dsl.Real(1)

	// Literals are real or integer; identities are stated for both.
	izero = dsl.Int(0)
	ione  = dsl.Int(1)
)

func rewrite(name string, lhs, rhs dsl.Expr) egraph.Rule {
	return egraph.Rewrite(name, lhs.Term(), rhs.Term())
}

// primal and tangent read the components of a dual.
func primal(d dsl.Expr) dsl.Expr  { return d.Fst() }
func tangent(d dsl.Expr) dsl.Expr { return d.Snd() }

// index lifts an integer to a dual with a zero tangent.
func index(k dsl.Expr) dsl.Expr { return k.Pair(zero) }
