// Package term defines the terms of the embedded language: de Bruijn indexed
// variables, multi-parameter lambdas, application, primitive operators and
// numeric literals. Terms are immutable; every transformation returns a new term.
package term

import "math"

// Kind tags the variant held by a Term.
type Kind uint8

const (
	KindVar  Kind = iota // de Bruijn index
	KindLam              // lambda with N simultaneously bound parameters
	KindApp              // application of Fun to Args
	KindPrim             // primitive operator
	KindInt              // integer literal
	KindReal             // real literal
	KindHole             // pattern variable, rules only
	KindRest             // pattern variable for trailing arguments, rules only
)

var kindNames = [...]string{"var", "lam", "app", "prim", "int", "real", "hole", "rest"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind?"
}

// Term is a node of the embedded language.
//
// Field use by kind:
//   - Var:  N is the index (0 is the nearest binder)
//   - Lam:  N is the arity, Body the body
//   - App:  Fun and Args
//   - Prim: Op
//   - Int:  Int; Real: Real
//   - Hole, Rest: Name
//
// Inside Lam(k, body) the j-th parameter (0-based, left to right) is Var(k-1-j),
// so the last parameter is always Var(0).
type Term struct {
	Kind Kind
	N    int
	Op   Op
	Int  int64
	Real float64
	Name string
	Body *Term
	Fun  *Term
	Args []*Term
}

// Var returns a reference to the n-th enclosing binder.
func Var(n int) *Term { return &Term{Kind: KindVar, N: n} }

// Lam returns a lambda binding arity parameters.
func Lam(arity int, body *Term) *Term { return &Term{Kind: KindLam, N: arity, Body: body} }

// App applies fun to args.
func App(fun *Term, args ...*Term) *Term { return &Term{Kind: KindApp, Fun: fun, Args: args} }

// Prim returns the primitive operator op.
func Prim(op Op) *Term { return &Term{Kind: KindPrim, Op: op} }

// AppPrim applies the primitive op to args.
func AppPrim(op Op, args ...*Term) *Term { return App(Prim(op), args...) }

// Int returns an integer literal.
func Int(n int64) *Term { return &Term{Kind: KindInt, Int: n} }

// Real returns a real literal.
func Real(x float64) *Term { return &Term{Kind: KindReal, Real: x} }

// Hole returns a named pattern variable.
func Hole(name string) *Term { return &Term{Kind: KindHole, Name: name} }

// Rest returns a pattern variable matching all remaining arguments of an App.
// It is only valid as the last argument of an App pattern.
func Rest(name string) *Term { return &Term{Kind: KindRest, Name: name} }

// IsPrimApp reports whether t is an application of the primitive op.
func (t *Term) IsPrimApp(op Op) bool {
	return t.Kind == KindApp && t.Fun.Kind == KindPrim && t.Fun.Op == op
}

// Equal reports structural equality. Reals compare by bit pattern.
func (t *Term) Equal(o *Term) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindVar:
		return t.N == o.N
	case KindLam:
		return t.N == o.N && t.Body.Equal(o.Body)
	case KindApp:
		if len(t.Args) != len(o.Args) || !t.Fun.Equal(o.Fun) {
			return false
		}
		for i := range t.Args {
			if !t.Args[i].Equal(o.Args[i]) {
				return false
			}
		}
		return true
	case KindPrim:
		return t.Op == o.Op
	case KindInt:
		return t.Int == o.Int
	case KindReal:
		return math.Float64bits(t.Real) == math.Float64bits(o.Real)
	case KindHole, KindRest:
		return t.Name == o.Name
	}
	return false
}

// Size returns the number of nodes in t.
func (t *Term) Size() int {
	switch t.Kind {
	case KindLam:
		return 1 + t.Body.Size()
	case KindApp:
		n := 1 + t.Fun.Size()
		for _, a := range t.Args {
			n += a.Size()
		}
		return n
	}
	return 1
}

// Holes returns the names of all pattern variables in t, in first-occurrence order.
func (t *Term) Holes() []string {
	var names []string
	seen := map[string]bool{}
	var walk func(*Term)
	walk = func(t *Term) {
		switch t.Kind {
		case KindHole, KindRest:
			if !seen[t.Name] {
				seen[t.Name] = true
				names = append(names, t.Name)
			}
		case KindLam:
			walk(t.Body)
		case KindApp:
			walk(t.Fun)
			for _, a := range t.Args {
				walk(a)
			}
		}
	}
	walk(t)
	return names
}
