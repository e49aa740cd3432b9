package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/lang"
	"github.com/born-ml/fsmooth/internal/term"
)

func reduce(t *testing.T, in *term.Term) string {
	t.Helper()
	g := egraph.New(egraph.DefaultConfig())
	require.NoError(t, lang.Install(g))
	root, err := g.Add(in)
	require.NoError(t, err)
	for range 32 {
		changed, err := g.Step(lang.Base)
		require.NoError(t, err)
		if !changed {
			break
		}
	}
	out, err := g.Extract(root)
	require.NoError(t, err)
	return out.String()
}

func TestBeta(t *testing.T) {
	tests := []struct {
		name string
		in   *term.Term
		want string
	}{
		{
			name: "duplicated argument",
			in:   term.App(term.Lam(1, term.AppPrim(term.Mul, term.Var(0), term.Var(0))), term.AppPrim(term.Sin, term.Var(3))),
			want: "(mul (sin #3) (sin #3))",
		},
		{
			name: "parameter order",
			in:   term.App(term.Lam(2, term.AppPrim(term.Sub, term.Var(1), term.Var(0))), term.Var(7), term.Var(8)),
			want: "(sub #7 #8)",
		},
		{
			name: "argument lifted under binder",
			in:   term.App(term.Lam(1, term.Lam(1, term.AppPrim(term.Add, term.Var(0), term.Var(1)))), term.Var(4)),
			want: "(lam 1 (add #0 #5))",
		},
		{
			name: "closed body",
			in:   term.App(term.Lam(1, term.Real(2)), term.Var(5)),
			want: "2.0",
		},
		{
			name: "unused parameters with underivable argument",
			in: term.App(term.Lam(2, term.AppPrim(term.Add, term.Var(2), term.Var(3))),
				term.Var(0), term.AppPrim(term.D, term.Var(0))),
			want: "(add #0 #1)",
		},
		{
			name: "nested redex",
			in: term.App(term.Lam(1, term.App(term.Lam(1, term.AppPrim(term.Neg, term.Var(0))), term.Var(0))),
				term.Var(2)),
			want: "(neg #2)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reduce(t, tt.in))
		})
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   *term.Term
		want string
	}{
		{"nested reals", term.AppPrim(term.Add, term.AppPrim(term.Mul, term.Real(2), term.Real(3)), term.Real(1)), "7.0"},
		{"ints stay ints", term.AppPrim(term.Sub, term.Int(2), term.Int(5)), "-3"},
		{"mixed promotes", term.AppPrim(term.Mul, term.Int(2), term.Real(0.5)), "1.0"},
		{"unary", term.AppPrim(term.Neg, term.AppPrim(term.Sin, term.Real(0))), "-0.0"},
		{"division by zero kept", term.AppPrim(term.Div, term.Real(1), term.Real(0)), "(div 1.0 0.0)"},
		{"log of negative kept", term.AppPrim(term.Log, term.Real(-1)), "(log -1.0)"},
		{"variables untouched", term.AppPrim(term.Add, term.Var(0), term.Real(1)), "(add #0 1.0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reduce(t, tt.in))
		})
	}
}

func TestPrimitives(t *testing.T) {
	g := egraph.New(egraph.DefaultConfig())
	require.NoError(t, lang.Install(g))
	assert.ErrorIs(t, lang.Install(g), egraph.ErrSetup)

	a, _ := g.Add(term.Var(0))
	b, _ := g.Add(term.Var(1))
	neg := egraph.FuncValue(func(id egraph.ClassID) (egraph.ClassID, error) {
		return g.Add(term.App(term.Prim(term.Neg), term.Var(int(id))))
	})

	v, err := g.Call(lang.MapPrim, neg, egraph.VecValue([]egraph.ClassID{a, b}))
	require.NoError(t, err)
	assert.Len(t, v.Vec, 2)
	assert.NotEqual(t, v.Vec[0], v.Vec[1])

	_, err = g.Call(lang.MapPrim, egraph.VecValue(nil), egraph.VecValue(nil))
	assert.ErrorIs(t, err, egraph.ErrSortMismatch)

	v, err = g.Call(lang.SetShiftPrim, egraph.SetValue(egraph.VarSet{0, 1, 3}))
	require.NoError(t, err)
	assert.Equal(t, egraph.VarSet{0, 2}, v.Set)

	_, err = g.Call(lang.SetShiftPrim, egraph.ClassValue(a))
	assert.ErrorIs(t, err, egraph.ErrSortMismatch)
}
