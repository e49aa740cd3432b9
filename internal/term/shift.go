package term

import "slices"

// Shift adds amount to every Var(n) with n >= cutoff. Lambdas raise the cutoff
// by their arity. The result shares no structure with t that it changes.
func (t *Term) Shift(cutoff, amount int) *Term {
	if amount == 0 {
		return t
	}
	switch t.Kind {
	case KindVar:
		if t.N >= cutoff {
			return Var(t.N + amount)
		}
		return t
	case KindLam:
		return Lam(t.N, t.Body.Shift(cutoff+t.N, amount))
	case KindApp:
		args := make([]*Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.Shift(cutoff, amount)
		}
		return App(t.Fun.Shift(cutoff, amount), args...)
	}
	return t
}

// Lift moves t under n additional binders.
func (t *Term) Lift(n int) *Term { return t.Shift(0, n) }

// Subst instantiates the body of a lambda of arity len(args) with args. The
// arguments are terms at the lambda's own depth; free variables of body that
// point past the lambda are lowered by the arity.
func Subst(body *Term, args []*Term) *Term {
	return subst(body, 0, args)
}

func subst(t *Term, depth int, args []*Term) *Term {
	k := len(args)
	switch t.Kind {
	case KindVar:
		switch {
		case t.N < depth:
			return t
		case t.N < depth+k:
			return args[k-1-(t.N-depth)].Lift(depth)
		default:
			return Var(t.N - k)
		}
	case KindLam:
		return Lam(t.N, subst(t.Body, depth+t.N, args))
	case KindApp:
		out := make([]*Term, len(t.Args))
		for i, a := range t.Args {
			out[i] = subst(a, depth, args)
		}
		return App(subst(t.Fun, depth, args), out...)
	}
	return t
}

// Beta reduces App(Lam(k, body), args) one step. It reports false when t is
// not such a redex or the arities differ.
func Beta(t *Term) (*Term, bool) {
	if t.Kind != KindApp || t.Fun.Kind != KindLam || t.Fun.N != len(t.Args) {
		return nil, false
	}
	return Subst(t.Fun.Body, t.Args), true
}

// FreeVars returns the sorted free indices of t, relative to t's own depth.
func (t *Term) FreeVars() []int {
	seen := map[int]bool{}
	var walk func(*Term, int)
	walk = func(t *Term, depth int) {
		switch t.Kind {
		case KindVar:
			if t.N >= depth {
				seen[t.N-depth] = true
			}
		case KindLam:
			walk(t.Body, depth+t.N)
		case KindApp:
			walk(t.Fun, depth)
			for _, a := range t.Args {
				walk(a, depth)
			}
		}
	}
	walk(t, 0)
	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Mentions reports whether t refers to the free index n.
func (t *Term) Mentions(n int) bool {
	switch t.Kind {
	case KindVar:
		return t.N == n
	case KindLam:
		return t.Body.Mentions(n + t.N)
	case KindApp:
		if t.Fun.Mentions(n) {
			return true
		}
		for _, a := range t.Args {
			if a.Mentions(n) {
				return true
			}
		}
	}
	return false
}
