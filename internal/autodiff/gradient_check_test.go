package autodiff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/fsmooth/internal/autodiff"
	"github.com/born-ml/fsmooth/internal/dsl"
	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/eval"
)

// TestDiff_MatchesFiniteDifference compares the tangent of D(f) seeded with 1
// against a central difference of f.
func TestDiff_MatchesFiniteDifference(t *testing.T) {
	tests := []struct {
		name string
		f    dsl.Expr
		ref  func(float64) float64
	}{
		{
			name: "sin*exp",
			f:    dsl.Fun(func(x dsl.Expr) dsl.Expr { return x.Sin().Mul(x.Exp()) }),
			ref:  func(x float64) float64 { return math.Sin(x) * math.Exp(x) },
		},
		{
			name: "log/x+cos",
			f:    dsl.Fun(func(x dsl.Expr) dsl.Expr { return x.Log().Div(x).Add(x.Cos()) }),
			ref:  func(x float64) float64 { return math.Log(x)/x + math.Cos(x) },
		},
		{
			name: "x^x",
			f:    dsl.Fun(func(x dsl.Expr) dsl.Expr { return x.Pow(x) }),
			ref:  func(x float64) float64 { return math.Pow(x, x) },
		},
		{
			name: "polynomial",
			f: dsl.Fun(func(x dsl.Expr) dsl.Expr {
				return x.Mul(x).Neg().Add(x).Sub(dsl.Real(2))
			}),
			ref: func(x float64) float64 { return -(x * x) + x - 2 },
		},
		{
			name: "exp(sin(x*x))",
			f:    dsl.Fun(func(x dsl.Expr) dsl.Expr { return x.Mul(x).Sin().Exp() }),
			ref:  func(x float64) float64 { return math.Exp(math.Sin(x * x)) },
		},
		{
			name: "let via application",
			f: dsl.Fun(func(x dsl.Expr) dsl.Expr {
				return dsl.Fun(func(y dsl.Expr) dsl.Expr { return y.Mul(y).Add(y) }).App(x.Sin())
			}),
			ref: func(x float64) float64 { return math.Sin(x)*math.Sin(x) + math.Sin(x) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			df, err := autodiff.Diff(ctx, compile(t, tt.f), cfg)
			require.NoError(t, err)

			for _, x := range []float64{0.5, 1.3, 2.1} {
				primal, tangent, err := apply(t, df, eval.Dual(x, 1)).Components()
				require.NoError(t, err)
				v, err := primal.Float()
				require.NoError(t, err)
				dv, err := tangent.Float()
				require.NoError(t, err)

				assert.InDelta(t, tt.ref(x), v, 1e-12, "value at %v", x)
				want := fd.Derivative(tt.ref, x, &fd.Settings{Formula: fd.Central})
				assert.InDelta(t, want, dv, 1e-6, "derivative at %v", x)
			}
		})
	}
}

func TestGrad_MatchesFdGradient(t *testing.T) {
	tests := []struct {
		name string
		f    dsl.Expr
		ref  func([]float64) float64
		x    []float64
	}{
		{
			name: "prod",
			f:    prod,
			ref: func(x []float64) float64 {
				p := 1.0
				for _, v := range x {
					p *= v
				}
				return p
			},
			x: []float64{1, 2, 3},
		},
		{
			name: "weighted sines",
			f: dsl.Fun(func(v dsl.Expr) dsl.Expr {
				return dsl.IFold(func(acc, i dsl.Expr) dsl.Expr {
					return acc.Add(v.Get(i).Sin().Mul(v.Get(dsl.Real(0))))
				}, dsl.Real(0), v.Length())
			}),
			ref: func(x []float64) float64 {
				s := 0.0
				for _, v := range x {
					s += math.Sin(v) * x[0]
				}
				return s
			},
			x: []float64{0.3, -1.2, 2.5, 0.8},
		},
		{
			name: "squared norm",
			f: dsl.Fun(func(v dsl.Expr) dsl.Expr {
				return dsl.IFold(func(acc, i dsl.Expr) dsl.Expr {
					return acc.Add(v.Get(i).Mul(v.Get(i)))
				}, dsl.Real(0), v.Length())
			}),
			ref: func(x []float64) float64 {
				s := 0.0
				for _, v := range x {
					s += v * v
				}
				return s
			},
			x: []float64{1.5, -2, 0.25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := autodiff.Grad(ctx, compile(t, tt.f), cfg)
			require.NoError(t, err)
			got := floats(t, apply(t, g, eval.Vector(tt.x)))

			want := fd.Gradient(nil, tt.ref, tt.x, &fd.Settings{Formula: fd.Central})
			assert.InDeltaSlice(t, want, got, 1e-5)
		})
	}
}

// TestJacobian_MatchesFdJacobian checks f(v) = build(n, k -> v[k] * sum(v)).
// Our column i holds df/dv_i, so entry [i][j] equals fd's (j, i).
func TestJacobian_MatchesFdJacobian(t *testing.T) {
	f := dsl.Fun(func(v dsl.Expr) dsl.Expr {
		return v.Length().Build(func(k dsl.Expr) dsl.Expr { return v.Get(k).Mul(v.Sum()) })
	})
	ref := func(y, x []float64) {
		s := 0.0
		for _, v := range x {
			s += v
		}
		for k, v := range x {
			y[k] = v * s
		}
	}
	x := []float64{0.5, -1, 2}

	jac, err := autodiff.Jacobian(ctx, compile(t, f), cfg)
	require.NoError(t, err)
	cols, err := apply(t, jac, eval.Vector(x)).Elems()
	require.NoError(t, err)
	require.Len(t, cols, len(x))

	want := mat.NewDense(len(x), len(x), nil)
	fd.Jacobian(want, ref, x, &fd.JacobianSettings{Formula: fd.Central})

	for i, col := range cols {
		got := floats(t, col)
		require.Len(t, got, len(x))
		for j := range got {
			assert.InDelta(t, want.At(j, i), got[j], 1e-5, "d f_%d / d v_%d", j, i)
		}
	}
}

// TestGradOpt_DefaultConfigMatchesFdGradient runs the joint rule set with the
// default limits, including on products where it stops at the node limit.
func TestGradOpt_DefaultConfigMatchesFdGradient(t *testing.T) {
	product := func(x []float64) float64 {
		p := 1.0
		for _, v := range x {
			p *= v
		}
		return p
	}
	norm2 := func(x []float64) float64 {
		s := 0.0
		for _, v := range x {
			s += v * v
		}
		return s
	}
	squares := dsl.Fun(func(v dsl.Expr) dsl.Expr {
		return dsl.IFold(func(acc, i dsl.Expr) dsl.Expr {
			return acc.Add(v.Get(i).Mul(v.Get(i)))
		}, dsl.Real(0), v.Length())
	})

	tests := []struct {
		name string
		f    dsl.Expr
		ref  func([]float64) float64
		x    []float64
	}{
		{"prod", prod, product, []float64{1, 2, 3}},
		{"prod mixed signs", prod, product, []float64{0.5, -2, 3, 1.5}},
		{"squared norm", squares, norm2, []float64{1.5, -2, 0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := autodiff.GradOpt(ctx, compile(t, tt.f), egraph.DefaultConfig())
			require.NoError(t, err)
			assert.False(t, hasMarker(g))

			got := floats(t, apply(t, g, eval.Vector(tt.x)))
			want := fd.Gradient(nil, tt.ref, tt.x, &fd.Settings{Formula: fd.Central})
			assert.InDeltaSlice(t, want, got, 1e-5)
		})
	}
}
