package egraph

import (
	"fmt"
	"maps"
)

// Sort is the kind of value a primitive consumes or produces.
type Sort uint8

const (
	SortClass Sort = iota // an equivalence class
	SortVec               // an ordered vector of classes
	SortSet               // a set of de Bruijn indices
	SortFunc              // a function from class to class
)

var sortNames = [...]string{"class", "vec", "set", "func"}

func (s Sort) String() string {
	if int(s) < len(sortNames) {
		return sortNames[s]
	}
	return "sort?"
}

// Value is a container value handled by rules and primitives.
type Value struct {
	Sort  Sort
	Class ClassID
	Vec   []ClassID
	Set   VarSet
	Func  func(ClassID) (ClassID, error)
}

// ClassValue wraps a class id.
func ClassValue(id ClassID) Value { return Value{Sort: SortClass, Class: id} }

// VecValue wraps an ordered vector of classes.
func VecValue(ids []ClassID) Value { return Value{Sort: SortVec, Vec: ids} }

// SetValue wraps a set of de Bruijn indices.
func SetValue(s VarSet) Value { return Value{Sort: SortSet, Set: s} }

// FuncValue wraps a class-to-class function, as consumed by the map primitive.
func FuncValue(f func(ClassID) (ClassID, error)) Value { return Value{Sort: SortFunc, Func: f} }

// Subst binds pattern variable names to values.
type Subst map[string]Value

// Class returns the class bound to name.
func (s Subst) Class(name string) ClassID { return s[name].Class }

// Vec returns the vector bound to name.
func (s Subst) Vec(name string) []ClassID { return s[name].Vec }

func (s Subst) with(name string, v Value) Subst {
	out := maps.Clone(s)
	if out == nil {
		out = Subst{}
	}
	out[name] = v
	return out
}

// Primitive is a pure function the engine calls back into while applying rules.
type Primitive interface {
	Name() string
	Apply(g *EGraph, args []Value) (Value, error)
}

// AddPrimitive registers p under its name.
func (g *EGraph) AddPrimitive(p Primitive) error {
	if _, ok := g.prims[p.Name()]; ok {
		return newError(KindSetup, "add primitive", fmt.Errorf("%q already registered", p.Name()))
	}
	g.prims[p.Name()] = p
	return nil
}

// Call invokes the primitive registered as name.
func (g *EGraph) Call(name string, args ...Value) (Value, error) {
	p, ok := g.prims[name]
	if !ok {
		return Value{}, newError(KindSetup, "call", fmt.Errorf("unknown primitive %q", name))
	}
	return p.Apply(g, args)
}

// CheckSorts returns a KindSort error unless args have exactly the given sorts.
func CheckSorts(prim string, args []Value, want ...Sort) error {
	if len(args) != len(want) {
		return newError(KindSort, prim, fmt.Errorf("got %d arguments, want %d", len(args), len(want)))
	}
	for i, a := range args {
		if a.Sort != want[i] {
			return newError(KindSort, prim, fmt.Errorf("argument %d is %s, want %s", i, a.Sort, want[i]))
		}
	}
	return nil
}
