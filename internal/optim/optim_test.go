package optim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fsmooth/internal/dsl"
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/eval"
	"github.com/born-ml/fsmooth/internal/lang"
	"github.com/born-ml/fsmooth/internal/optim"
	"github.com/born-ml/fsmooth/internal/term"
)

func v(n int) *term.Term { return term.Var(n) }

func op(o term.Op, args ...*term.Term) *term.Term { return term.AppPrim(o, args...) }

func simplify(t *testing.T, in *term.Term) *term.Term {
	t.Helper()
	out, err := optim.Optim(context.Background(), in, egraph.DefaultConfig())
	require.NoError(t, err)
	return out
}

var cases = []struct {
	name string
	in   *term.Term
	want string
}{
	{"identities", op(term.Add, op(term.Mul, v(0), term.Real(1)), term.Real(0)), "#0"},
	{"left identities", op(term.Mul, term.Real(1), op(term.Add, term.Real(0), v(2))), "#2"},
	{"annihilator", op(term.Mul, op(term.Sin, v(0)), term.Real(0)), "0.0"},
	{"integer identities", op(term.Add, term.Int(0), op(term.Mul, term.Int(1), op(term.Mul, v(3), term.Int(1)))), "#3"},
	{"integer annihilator", op(term.Mul, term.Int(0), op(term.Cos, v(1))), "0"},
	{"self subtraction", op(term.Sub, op(term.Exp, v(1)), op(term.Exp, v(1))), "0.0"},
	{"add negation", op(term.Add, v(0), op(term.Neg, v(1))), "(sub #0 #1)"},
	{"distributivity", op(term.Add, op(term.Mul, v(0), v(1)), op(term.Mul, v(0), v(2))), "(mul #0 (add #1 #2))"},
	{"build get fusion", op(term.Get, op(term.Build, v(3), term.Lam(1, op(term.Sin, v(0)))), v(1)), "(sin #1)"},
	{"length of build", op(term.Length, op(term.Build, v(2), term.Lam(1, v(0)))), "#2"},
	{"same branches", op(term.If, op(term.LT, v(0), v(1)), op(term.Sin, v(2)), op(term.Sin, v(2))), "(sin #2)"},
	{"hoisted projection", op(term.Fst, op(term.If, op(term.LT, v(4), v(5)),
		op(term.Pair, v(0), v(1)), op(term.Pair, v(2), v(3)))), "(if (lt #4 #5) #0 #2)"},
	{"fold ignoring its step", op(term.IFold, term.Lam(2, v(1)), v(5), v(6)), "#5"},
	{"fold pair fusion", op(term.IFold,
		term.Lam(2, op(term.Pair, op(term.Add, op(term.Fst, v(1)), v(0)), op(term.Mul, op(term.Snd, v(1)), v(0)))),
		op(term.Pair, v(3), v(4)), v(5)),
		"(pair (ifold (lam 2 (add #0 #1)) #3 #5) (ifold (lam 2 (mul #0 #1)) #4 #5))"},
	{"one-hot fold", op(term.Build, v(5), term.Lam(1, op(term.IFold,
		term.Lam(2, op(term.Add, v(1), op(term.If, op(term.EQ, v(0), v(2)), op(term.Sin, v(0)), term.Real(0)))),
		term.Real(0), v(6)))), "(build #5 (lam 1 (sin #0)))"},
	{"folded literals", op(term.Mul, op(term.Add, term.Real(1), term.Real(2)), v(0)), "(mul #0 3.0)"},
}

func TestOptim_Rules(t *testing.T) {
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, simplify(t, tt.in).String())
		})
	}
}

func TestOptim_Idempotent(t *testing.T) {
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			once := simplify(t, tt.in)
			twice := simplify(t, once)
			assert.True(t, once.Equal(twice), "%s then %s", once, twice)
		})
	}
}

func TestOptim_FusionMatchesApplication(t *testing.T) {
	f := term.Lam(1, op(term.Mul, op(term.Cos, v(0)), v(4)))
	fused := simplify(t, op(term.Get, op(term.Build, v(2), f), v(3)))
	applied := simplify(t, term.App(f, v(3)))
	assert.True(t, fused.Equal(applied), "%s vs %s", fused, applied)
}

func TestOptim_PairProjection(t *testing.T) {
	a := op(term.Add, op(term.Sin, v(0)), term.Real(0))
	b := op(term.Mul, term.Real(1), op(term.Cos, v(1)))

	fst := simplify(t, op(term.Fst, op(term.Pair, a, b)))
	snd := simplify(t, op(term.Snd, op(term.Pair, a, b)))
	assert.True(t, fst.Equal(simplify(t, a)))
	assert.True(t, snd.Equal(simplify(t, b)))
}

func TestOptim_OneHotFoldPreservesValue(t *testing.T) {
	prog, err := dsl.Compile(dsl.Fun(func(vec dsl.Expr) dsl.Expr {
		return vec.Length().Build(func(i dsl.Expr) dsl.Expr {
			return dsl.IFold(func(acc, j dsl.Expr) dsl.Expr {
				return acc.Add(j.EQ(i).IfThenElse(vec.Get(j).Mul(dsl.Real(2)), dsl.Real(0)))
			}, dsl.Real(0), vec.Length())
		})
	}))
	require.NoError(t, err)

	out := simplify(t, prog)
	assert.Equal(t, "(lam 1 (build (length #0) (lam 1 (mul (get #1 #0) 2.0))))", out.String())

	in := eval.Vector([]float64{1, -2, 3.5})
	for _, p := range []*term.Term{prog, out} {
		f, err := eval.Eval(p)
		require.NoError(t, err)
		got, err := eval.Apply(f, in)
		require.NoError(t, err)
		xs, err := got.Floats()
		require.NoError(t, err)
		assert.Equal(t, []float64{2, -4, 7}, xs)
	}
}

func TestOptim_DerivativeMarkerNotHoisted(t *testing.T) {
	g := egraph.New(egraph.DefaultConfig())
	require.NoError(t, lang.Install(g))
	require.NoError(t, optim.Install(g))

	cond := op(term.LT, v(0), v(1))
	root, err := g.Add(op(term.D, op(term.If, cond, v(2), v(3))))
	require.NoError(t, err)
	for range 16 {
		changed, err := g.Step(optim.RuleSet)
		require.NoError(t, err)
		if !changed {
			break
		}
	}
	hoisted, err := g.Add(op(term.If, cond, op(term.D, v(2)), op(term.D, v(3))))
	require.NoError(t, err)
	assert.False(t, g.Equiv(root, hoisted))
}
