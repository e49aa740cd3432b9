package term

import (
	"strconv"
	"strings"
)

// String renders t as an s-expression. Primitive applications print as
// (op args...), other applications as (app fun args...), variables as #n.
func (t *Term) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Term) write(b *strings.Builder) {
	switch t.Kind {
	case KindVar:
		b.WriteByte('#')
		b.WriteString(strconv.Itoa(t.N))
	case KindLam:
		b.WriteString("(lam ")
		b.WriteString(strconv.Itoa(t.N))
		b.WriteByte(' ')
		t.Body.write(b)
		b.WriteByte(')')
	case KindApp:
		b.WriteByte('(')
		if t.Fun.Kind == KindPrim {
			b.WriteString(string(t.Fun.Op))
		} else {
			b.WriteString("app ")
			t.Fun.write(b)
		}
		for _, a := range t.Args {
			b.WriteByte(' ')
			a.write(b)
		}
		b.WriteByte(')')
	case KindPrim:
		b.WriteString(string(t.Op))
	case KindInt:
		b.WriteString(strconv.FormatInt(t.Int, 10))
	case KindReal:
		b.WriteString(FormatReal(t.Real))
	case KindHole:
		b.WriteByte('?')
		b.WriteString(t.Name)
	case KindRest:
		b.WriteByte('?')
		b.WriteString(t.Name)
		b.WriteString("...")
	}
}

// FormatReal prints x so that it never reads as an integer literal.
func FormatReal(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}
