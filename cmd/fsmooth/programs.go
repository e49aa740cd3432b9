package main

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/born-ml/fsmooth/internal/dsl"
	"github.com/born-ml/fsmooth/internal/term"
)

// shape describes the input and output of a built-in program.
type shape int

const (
	scalarToScalar shape = iota
	vectorToScalar
	vectorToVector
)

func (s shape) String() string {
	return [...]string{"R -> R", "R^n -> R", "R^n -> R^n"}[s]
}

type program struct {
	shape shape
	expr  dsl.Expr
}

var programs = map[string]program{
	"square": {scalarToScalar, dsl.Fun(func(x dsl.Expr) dsl.Expr { return x.Mul(x) })},
	"wave": {scalarToScalar, dsl.Fun(func(x dsl.Expr) dsl.Expr {
		return x.Sin().Mul(x.Exp())
	})},
	"sum":  {vectorToScalar, dsl.Fun(func(v dsl.Expr) dsl.Expr { return v.Sum() })},
	"prod": {vectorToScalar, dsl.Fun(func(v dsl.Expr) dsl.Expr { return v.Prod() })},
	"norm2": {vectorToScalar, dsl.Fun(func(v dsl.Expr) dsl.Expr {
		return dsl.IFold(func(acc, i dsl.Expr) dsl.Expr {
			return acc.Add(v.Get(i).Mul(v.Get(i)))
		}, dsl.Real(0), v.Length())
	})},
	"scale": {vectorToVector, dsl.Fun(func(v dsl.Expr) dsl.Expr {
		return v.Length().Build(func(k dsl.Expr) dsl.Expr { return v.Get(k).Mul(v.Sum()) })
	})},
}

func programNames() []string {
	names := lo.Keys(programs)
	slices.Sort(names)
	return names
}

func lookup(name string, want ...shape) (*term.Term, error) {
	p, ok := programs[name]
	if !ok {
		return nil, fmt.Errorf("unknown program %q (have %v)", name, programNames())
	}
	if len(want) > 0 && !slices.Contains(want, p.shape) {
		return nil, fmt.Errorf("program %q is %s", name, p.shape)
	}
	return dsl.Compile(p.expr)
}
