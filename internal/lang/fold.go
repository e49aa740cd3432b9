package lang

import (
	"math"

	"github.com/born-ml/fsmooth/internal/egraph"
	"github.com/born-ml/fsmooth/internal/term"
)

var binaryOps = []struct {
	op   term.Op
	real func(a, b float64) float64
	int  func(a, b int64) int64
}{
	{term.Add, func(a, b float64) float64 { return a + b }, func(a, b int64) int64 { return a + b }},
	{term.Sub, func(a, b float64) float64 { return a - b }, func(a, b int64) int64 { return a - b }},
	{term.Mul, func(a, b float64) float64 { return a * b }, func(a, b int64) int64 { return a * b }},
	{term.Div, func(a, b float64) float64 { return a / b }, nil},
	{term.Pow, math.Pow, nil},
}

var unaryOps = []struct {
	op   term.Op
	real func(float64) float64
	int  func(int64) int64
}{
	{term.Neg, func(a float64) float64 { return -a }, func(a int64) int64 { return -a }},
	{term.Exp, math.Exp, nil},
	{term.Log, math.Log, nil},
	{term.Sin, math.Sin, nil},
	{term.Cos, math.Cos, nil},
	{term.Tan, math.Tan, nil},
}

// foldRules evaluate arithmetic whose operands have literal members. Results
// that are not finite are left unfolded.
func foldRules() []egraph.Rule {
	a, b := term.Hole("a"), term.Hole("b")
	var rules []egraph.Rule
	for _, o := range binaryOps {
		rules = append(rules, egraph.Dynamic("fold-"+string(o.op), term.AppPrim(o.op, a, b),
			func(g *egraph.EGraph, _ egraph.ClassID, s egraph.Subst) ([]egraph.ClassID, error) {
				x, ok := literal(g, s.Class("a"))
				if !ok {
					return nil, nil
				}
				y, ok := literal(g, s.Class("b"))
				if !ok {
					return nil, nil
				}
				if x.Kind == term.KindInt && y.Kind == term.KindInt && o.int != nil {
					return addLiteral(g, term.Int(o.int(x.Int, y.Int)))
				}
				return addLiteral(g, term.Real(o.real(toReal(x), toReal(y))))
			}))
	}
	for _, o := range unaryOps {
		rules = append(rules, egraph.Dynamic("fold-"+string(o.op), term.AppPrim(o.op, a),
			func(g *egraph.EGraph, _ egraph.ClassID, s egraph.Subst) ([]egraph.ClassID, error) {
				x, ok := literal(g, s.Class("a"))
				if !ok {
					return nil, nil
				}
				if x.Kind == term.KindInt && o.int != nil {
					return addLiteral(g, term.Int(o.int(x.Int)))
				}
				return addLiteral(g, term.Real(o.real(toReal(x))))
			}))
	}
	return rules
}

func literal(g *egraph.EGraph, id egraph.ClassID) (egraph.Node, bool) {
	for _, n := range g.Nodes(id) {
		if n.IsLiteral() {
			return n, true
		}
	}
	return egraph.Node{}, false
}

func toReal(n egraph.Node) float64 {
	if n.Kind == term.KindInt {
		return float64(n.Int)
	}
	return n.Real
}

func addLiteral(g *egraph.EGraph, t *term.Term) ([]egraph.ClassID, error) {
	if t.Kind == term.KindReal && (math.IsNaN(t.Real) || math.IsInf(t.Real, 0)) {
		return nil, nil
	}
	id, err := g.Add(t)
	if err != nil {
		return nil, err
	}
	return []egraph.ClassID{id}, nil
}
