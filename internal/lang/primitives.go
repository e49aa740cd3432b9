package lang

import "github.com/born-ml/fsmooth/internal/egraph"

// Names of the primitives registered by Install.
const (
	MapPrim      = "map"
	SetShiftPrim = "set-shift"
)

// mapPrim applies a function value to every class of a vector.
type mapPrim struct{}

func (mapPrim) Name() string { return MapPrim }

func (mapPrim) Apply(_ *egraph.EGraph, args []egraph.Value) (egraph.Value, error) {
	if err := egraph.CheckSorts(MapPrim, args, egraph.SortFunc, egraph.SortVec); err != nil {
		return egraph.Value{}, err
	}
	f, in := args[0].Func, args[1].Vec
	out := make([]egraph.ClassID, len(in))
	for i, id := range in {
		r, err := f(id)
		if err != nil {
			return egraph.Value{}, err
		}
		out[i] = r
	}
	return egraph.VecValue(out), nil
}

// setShiftPrim moves a free-variable set out of one binder.
type setShiftPrim struct{}

func (setShiftPrim) Name() string { return SetShiftPrim }

func (setShiftPrim) Apply(_ *egraph.EGraph, args []egraph.Value) (egraph.Value, error) {
	if err := egraph.CheckSorts(SetShiftPrim, args, egraph.SortSet); err != nil {
		return egraph.Value{}, err
	}
	return egraph.SetValue(args[0].Set.Shift()), nil
}
