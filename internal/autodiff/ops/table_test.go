package ops_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/fsmooth/internal/autodiff"
	"github.com/born-ml/fsmooth/internal/autodiff/ops"
	"github.com/born-ml/fsmooth/internal/dsl"
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/eval"
	"github.com/born-ml/fsmooth/internal/optim"
	"github.com/born-ml/fsmooth/internal/term"
)

func TestTable_Rows(t *testing.T) {
	all := ops.All()
	assert.Len(t, all, 24)

	seen := map[term.Op]bool{}
	for _, p := range all {
		assert.False(t, seen[p.Op], "duplicate row %s", p.Op)
		seen[p.Op] = true

		d, err := p.DerivTerm()
		require.NoError(t, err, p.Op)
		require.Equal(t, term.KindLam, d.Kind, p.Op)
		assert.Equal(t, p.Arity, d.N, "arity of %s", p.Op)
		assert.Empty(t, d.FreeVars(), "%s lifting is closed", p.Op)

		got, ok := ops.Lookup(p.Op)
		require.True(t, ok)
		assert.Equal(t, p.Arity, got.Arity)
	}
	_, ok := ops.Lookup(term.D)
	assert.False(t, ok)
	assert.NotEmpty(t, ops.SimplifyRules())
}

func TestTable_DerivTerms(t *testing.T) {
	tests := []struct {
		op   term.Op
		want string
	}{
		{term.Add, "(lam 2 (pair (add (fst #1) (fst #0)) (add (snd #1) (snd #0))))"},
		{term.Mul, "(lam 2 (pair (mul (fst #1) (fst #0)) (add (mul (snd #1) (fst #0)) (mul (fst #1) (snd #0)))))"},
		{term.LT, "(lam 2 (lt (fst #1) (fst #0)))"},
		{term.Length, "(lam 1 (pair (length #0) 0.0))"},
		{term.Build, "(lam 2 (build (fst #1) (lam 1 (app #1 (pair #0 0.0)))))"},
		{term.IFold, "(lam 3 (ifold (lam 2 (app #4 #1 (pair #0 0.0))) #1 (fst #0)))"},
	}
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			p, ok := ops.Lookup(tt.op)
			require.True(t, ok)
			d, err := p.DerivTerm()
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func lifted(t *testing.T, op term.Op) eval.Value {
	t.Helper()
	p, ok := ops.Lookup(op)
	require.True(t, ok)
	d, err := p.DerivTerm()
	require.NoError(t, err)
	v, err := eval.Eval(d)
	require.NoError(t, err)
	return v
}

func components(t *testing.T, v eval.Value) (float64, float64) {
	t.Helper()
	a, b, err := v.Components()
	require.NoError(t, err)
	x, err := a.Float()
	require.NoError(t, err)
	dx, err := b.Float()
	require.NoError(t, err)
	return x, dx
}

func primal(t *testing.T, op term.Op, args ...float64) float64 {
	t.Helper()
	terms := make([]*term.Term, len(args))
	for i, a := range args {
		terms[i] = term.Real(a)
	}
	v, err := eval.Eval(term.AppPrim(op, terms...))
	require.NoError(t, err)
	x, err := v.Float()
	require.NoError(t, err)
	return x
}

func TestDeriv_UnaryMatchesFiniteDifference(t *testing.T) {
	for _, op := range []term.Op{term.Neg, term.Exp, term.Log, term.Sin, term.Cos, term.Tan} {
		for _, x0 := range []float64{0.3, 1.1, 2.5} {
			d := lifted(t, op)
			out, err := eval.Apply(d, eval.Dual(x0, 1))
			require.NoError(t, err)
			val, tan := components(t, out)

			want := fd.Derivative(func(x float64) float64 { return primal(t, op, x) }, x0,
				&fd.Settings{Formula: fd.Central})
			assert.InDelta(t, primal(t, op, x0), val, 1e-12, "%s(%v)", op, x0)
			assert.InDelta(t, want, tan, 1e-6, "%s'(%v)", op, x0)
		}
	}
}

func TestDeriv_BinaryMatchesFiniteDifference(t *testing.T) {
	points := [][2]float64{{1.7, 0.6}, {0.4, 2.2}, {3, 3}}
	for _, op := range []term.Op{term.Add, term.Sub, term.Mul, term.Div, term.Pow} {
		for _, pt := range points {
			x0, y0 := pt[0], pt[1]
			d := lifted(t, op)

			outX, err := eval.Apply(d, eval.Dual(x0, 1), eval.Dual(y0, 0))
			require.NoError(t, err)
			outY, err := eval.Apply(d, eval.Dual(x0, 0), eval.Dual(y0, 1))
			require.NoError(t, err)
			val, dx := components(t, outX)
			_, dy := components(t, outY)

			wantX := fd.Derivative(func(x float64) float64 { return primal(t, op, x, y0) }, x0,
				&fd.Settings{Formula: fd.Central})
			wantY := fd.Derivative(func(y float64) float64 { return primal(t, op, x0, y) }, y0,
				&fd.Settings{Formula: fd.Central})

			assert.InDelta(t, primal(t, op, x0, y0), val, 1e-12, "%s primal", op)
			assert.InDelta(t, wantX, dx, 1e-5, "d%s/dx at %v", op, pt)
			assert.InDelta(t, wantY, dy, 1e-5, "d%s/dy at %v", op, pt)
		}
	}
}

func TestDeriv_ComparisonsUsePrimal(t *testing.T) {
	out, err := eval.Apply(lifted(t, term.LT), eval.Dual(1, 100), eval.Dual(2, -100))
	require.NoError(t, err)
	assert.Equal(t, "true", out.String())

	out, err = eval.Apply(lifted(t, term.EQ), eval.Dual(2, 1), eval.Dual(2, 0))
	require.NoError(t, err)
	assert.Equal(t, "true", out.String())
}

func TestDeriv_Arrays(t *testing.T) {
	v := eval.Arr([]eval.Value{eval.Dual(1, 0), eval.Dual(5, 1)})

	out, err := eval.Apply(lifted(t, term.Length), v)
	require.NoError(t, err)
	assert.Equal(t, "(2.0, 0.0)", out.String())

	out, err = eval.Apply(lifted(t, term.Get), v, eval.Dual(1, 0))
	require.NoError(t, err)
	assert.Equal(t, "(5.0, 1.0)", out.String())

	// the lifted body sees dual indices
	body, err := eval.Eval(term.Lam(1, term.Var(0)))
	require.NoError(t, err)
	out, err = eval.Apply(lifted(t, term.Build), eval.Dual(2, 0), body)
	require.NoError(t, err)
	assert.Equal(t, "[(0.0, 0.0) (1.0, 0.0)]", out.String())

	out, err = eval.Apply(lifted(t, term.IFold), lifted(t, term.Add), eval.Dual(0, 0), eval.Dual(3, 0))
	require.NoError(t, err)
	assert.Equal(t, "(3.0, 0.0)", out.String())
}

// TestDeriv_PowConstantExponent: the Pow lifting carries log(a) times the
// exponent's tangent. For a literal exponent that tangent is 0.0, which the
// simplifier uses to drop the log term, so negative bases differentiate.
func TestDeriv_PowConstantExponent(t *testing.T) {
	ctx := context.Background()
	cfg := egraph.DefaultConfig()
	sq, err := dsl.Compile(dsl.Fun(func(x dsl.Expr) dsl.Expr { return x.Pow(dsl.Real(2)) }))
	require.NoError(t, err)

	df, err := autodiff.Diff(ctx, sq, cfg)
	require.NoError(t, err)
	assert.Contains(t, df.String(), "(log ")
	_, tan := components(t, apply(t, df, eval.Dual(-1, 1)))
	assert.True(t, math.IsNaN(tan), "unsimplified tangent at -1 is %v", tan)

	simplified, err := optim.Optim(ctx, df, cfg)
	require.NoError(t, err)
	assert.NotContains(t, simplified.String(), "(log ")
	for _, x0 := range []float64{-1, -2.5, 3} {
		val, tan := components(t, apply(t, simplified, eval.Dual(x0, 1)))
		assert.InDelta(t, x0*x0, val, 1e-12)
		assert.InDelta(t, 2*x0, tan, 1e-12, "d/dx x^2 at %v", x0)
	}

	joint, err := autodiff.GradOpt(ctx, compileVec(t), cfg)
	require.NoError(t, err)
	assert.NotContains(t, joint.String(), "(log ")
	out, err := eval.Apply(evalTerm(t, joint), eval.Vector([]float64{-1, 2}))
	require.NoError(t, err)
	got, err := out.Floats()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-2, 4}, got, 1e-12)
}

// compileVec builds λv. v[0]^2 + v[1]^2.
func compileVec(t *testing.T) *term.Term {
	t.Helper()
	f, err := dsl.Compile(dsl.Fun(func(v dsl.Expr) dsl.Expr {
		return v.Get(dsl.Real(0)).Pow(dsl.Real(2)).Add(v.Get(dsl.Real(1)).Pow(dsl.Real(2)))
	}))
	require.NoError(t, err)
	return f
}

func evalTerm(t *testing.T, tm *term.Term) eval.Value {
	t.Helper()
	v, err := eval.Eval(tm)
	require.NoError(t, err)
	return v
}

func apply(t *testing.T, tm *term.Term, args ...eval.Value) eval.Value {
	t.Helper()
	out, err := eval.Apply(evalTerm(t, tm), args...)
	require.NoError(t, err)
	return out
}
