package egraph

import (
	"math"
	"strconv"
	"strings"

	"github.com/born-ml/fsmooth/internal/term"
)

// ClassID names an equivalence class.
type ClassID int

// Node is one operator application whose children are classes. Lam nodes have
// the body as their only child; App nodes have the function followed by the
// arguments.
type Node struct {
	Kind term.Kind
	N    int
	Op   term.Op
	Int  int64
	Real float64
	Kids []ClassID
}

func (n Node) key() string {
	var b strings.Builder
	b.WriteString(n.Kind.String())
	switch n.Kind {
	case term.KindVar, term.KindLam:
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(n.N))
	case term.KindPrim:
		b.WriteByte(':')
		b.WriteString(string(n.Op))
	case term.KindInt:
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(n.Int, 10))
	case term.KindReal:
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(math.Float64bits(n.Real), 16))
	}
	for _, k := range n.Kids {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(int(k)))
	}
	return b.String()
}

// Leaf converts a childless node back to a term.
func (n Node) Leaf() (*term.Term, bool) {
	switch n.Kind {
	case term.KindVar:
		return term.Var(n.N), true
	case term.KindPrim:
		return term.Prim(n.Op), true
	case term.KindInt:
		return term.Int(n.Int), true
	case term.KindReal:
		return term.Real(n.Real), true
	}
	return nil, false
}

// IsLiteral reports whether n is an Int or Real literal.
func (n Node) IsLiteral() bool {
	return n.Kind == term.KindInt || n.Kind == term.KindReal
}

func (n Node) build(kids []*term.Term) *term.Term {
	switch n.Kind {
	case term.KindLam:
		return term.Lam(n.N, kids[0])
	case term.KindApp:
		return term.App(kids[0], kids[1:]...)
	}
	t, _ := n.Leaf()
	return t
}

func leafNode(t *term.Term) Node {
	return Node{Kind: t.Kind, N: t.N, Op: t.Op, Int: t.Int, Real: t.Real}
}
