package goassert

import "github.com/reoring/goassert/internal/typecheck"

// ArrayAssert refines a slice or array.
type ArrayAssert struct {
	chain
	elems []any
}

func newArray(g *Guard, name string, v any, optional bool) *ArrayAssert {
	return runOptionally(optional, v, func() *ArrayAssert {
		a := &ArrayAssert{chain: chain{g: g, name: name, raw: v}}
		if !typecheck.IsArray(v, g.bypass()) {
			a.err = g.failf(name, typecheck.TypeOf(v), "Array", OpArray, nil)
			return a
		}
		a.elems = typecheck.Elements(v)
		return a
	}, func() *ArrayAssert {
		return &ArrayAssert{chain: chain{g: g, name: name, raw: v, skip: true}}
	})
}

// Len returns the number of elements.
func (a *ArrayAssert) Len() int { return len(a.elems) }

// Of fails unless every element is of type t. By tag, each element's type tag
// must equal it; by Go type, each element's dynamic type must be exactly t.
func (a *ArrayAssert) Of(t TypeRef) *ArrayAssert {
	if !a.active() {
		return a
	}
	for _, e := range a.elems {
		if !t.elementMatches(e) {
			a.failf(a.raw, a.name+" to be an array of all "+t.String(), OpOf, map[string]string{"type": t.String()})
			return a
		}
	}
	return a
}

// Contains fails unless some element is strictly equal to element (same
// dynamic type and ==).
func (a *ArrayAssert) Contains(element any) *ArrayAssert {
	if !a.active() {
		return a
	}
	for _, e := range a.elems {
		if typecheck.StrictEqual(e, element) {
			return a
		}
	}
	a.failf(a.raw, element, OpContains, map[string]string{"element": str(element)})
	return a
}
