package dsl

import "github.com/born-ml/fsmooth/internal/term"

// Add is e + o.
func (e Expr) Add(o Expr) Expr { return Call(term.Add, e, o) }
// Sub is e - o.
func (e Expr) Sub(o Expr) Expr { return Call(term.Sub, e, o) }
// Mul is e * o.
func (e Expr) Mul(o Expr) Expr { return Call(term.Mul, e, o) }
// Div is e / o.
func (e Expr) Div(o Expr) Expr { return Call(term.Div, e, o) }
// Pow raises e to the power o.
func (e Expr) Pow(o Expr) Expr { return Call(term.Pow, e, o) }
// Neg is -e.
func (e Expr) Neg() Expr       { return Call(term.Neg, e) }

// Exp is the natural exponential of e.
func (e Expr) Exp() Expr { return Call(term.Exp, e) }
// Log is the natural logarithm of e.
func (e Expr) Log() Expr { return Call(term.Log, e) }
// Sin is the sine of e in radians.
func (e Expr) Sin() Expr { return Call(term.Sin, e) }
// Cos is the cosine of e in radians.
func (e Expr) Cos() Expr { return Call(term.Cos, e) }
// Tan is the tangent of e in radians.
func (e Expr) Tan() Expr { return Call(term.Tan, e) }

// LT is e < o.
func (e Expr) LT(o Expr) Expr { return Call(term.LT, e, o) }
// GT is e > o.
func (e Expr) GT(o Expr) Expr { return Call(term.GT, e, o) }
// EQ is e == o.
func (e Expr) EQ(o Expr) Expr { return Call(term.EQ, e, o) }

// LE is not(e > o).
func (e Expr) LE(o Expr) Expr { return e.GT(o).Not() }

// GE is not(e < o).
func (e Expr) GE(o Expr) Expr { return e.LT(o).Not() }

// NE is not(e == o).
func (e Expr) NE(o Expr) Expr { return e.EQ(o).Not() }

// And is the conjunction of two booleans.
func (e Expr) And(o Expr) Expr { return Call(term.And, e, o) }
// Or is the disjunction of two booleans.
func (e Expr) Or(o Expr) Expr  { return Call(term.Or, e, o) }
// Not negates a boolean.
func (e Expr) Not() Expr       { return Call(term.Not, e) }

// IfThenElse selects then when e holds, otherwise els.
func (e Expr) IfThenElse(then, els Expr) Expr { return Call(term.If, e, then, els) }

// Build makes the array [f(0), ..., f(n-1)] where n is e.
func (e Expr) Build(f func(i Expr) Expr) Expr { return e.BuildFn(Fun(f)) }

// BuildFn is Build with an already constructed one-parameter function.
func (e Expr) BuildFn(f Expr) Expr { return Call(term.Build, e, f) }

// IFold folds f(acc, i) over i in [0, n) starting from init.
func IFold(f func(acc, i Expr) Expr, init, n Expr) Expr { return IFoldFn(Fun2(f), init, n) }

// IFoldFn is IFold with an already constructed two-parameter function.
func IFoldFn(f, init, n Expr) Expr { return Call(term.IFold, f, init, n) }

// Get is the i-th element of the array e.
func (e Expr) Get(i Expr) Expr { return Call(term.Get, e, i) }
// Length is the number of elements of the array e.
func (e Expr) Length() Expr    { return Call(term.Length, e) }

// Pair builds the pair (e, o).
func (e Expr) Pair(o Expr) Expr { return Call(term.Pair, e, o) }
// Fst is the first component of the pair e.
func (e Expr) Fst() Expr        { return Call(term.Fst, e) }
// Snd is the second component of the pair e.
func (e Expr) Snd() Expr        { return Call(term.Snd, e) }

// VectorZip pairs e and o element-wise over the length of e.
func (e Expr) VectorZip(o Expr) Expr {
	return e.Length().Build(func(i Expr) Expr { return e.Get(i).Pair(o.Get(i)) })
}

// OneHot is the length-e array holding 1.0 at index i and 0.0 elsewhere.
func (e Expr) OneHot(i Expr) Expr {
	return e.Build(func(j Expr) Expr { return j.EQ(i).IfThenElse(Real(1), Real(0)) })
}

// Sum folds addition over the elements of e.
func (e Expr) Sum() Expr {
	return IFold(func(acc, i Expr) Expr { return acc.Add(e.Get(i)) }, Real(0), e.Length())
}

// Prod folds multiplication over the elements of e.
func (e Expr) Prod() Expr {
	return IFold(func(acc, i Expr) Expr { return acc.Mul(e.Get(i)) }, Real(1), e.Length())
}
