package goassert

import "github.com/reoring/goassert/internal/typecheck"

// ObjectAssert refines a composite value: map, struct, pointer, slice or any
// other non-primitive.
type ObjectAssert struct {
	chain
}

func newObject(g *Guard, name string, v any, optional bool) *ObjectAssert {
	return runOptionally(optional, v, func() *ObjectAssert {
		a := &ObjectAssert{chain: chain{g: g, name: name, raw: v}}
		if !typecheck.IsPrimitive(v, typecheck.Object, g.bypass()) {
			a.err = g.typeFailure(name, v, typecheck.Object)
		}
		return a
	}, func() *ObjectAssert {
		return &ObjectAssert{chain: chain{g: g, name: name, raw: v, skip: true}}
	})
}

// HasMember fails when key is missing or holds a falsy value. Members set to
// 0, "", false or nil are reported as missing.
func (a *ObjectAssert) HasMember(key string) *ObjectAssert {
	if !a.active() {
		return a
	}
	if m, ok := typecheck.Member(a.raw, key); !ok || !typecheck.Truthy(m) {
		a.failf(a.raw, key, OpHasMember, map[string]string{"member": key})
	}
	return a
}

// InstanceOf fails unless the value is of type t (or points to it, or
// implements it when t is an interface).
func (a *ObjectAssert) InstanceOf(t TypeRef) *ObjectAssert {
	if a.active() && !t.instanceMatches(a.raw) {
		a.failf(a.raw, t.String(), OpInstanceOf, map[string]string{"type": t.String()})
	}
	return a
}
