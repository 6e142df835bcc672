package goassert

import (
	"reflect"

	"github.com/reoring/goassert/internal/typecheck"
)

// TypeRef names the type expected by ArrayAssert.Of and ObjectAssert.InstanceOf.
// It holds either a type tag ("number", "string", ...) or a concrete Go type.
type TypeRef struct {
	name string
	typ  reflect.Type
}

// TypeName refers to a type by tag: one of the typecheck tags such as
// "number" or "string", or a reflected type name such as "time.Time".
func TypeName(name string) TypeRef { return TypeRef{name: name} }

// TypeFor refers to the Go type T. Interface types match by implementation.
func TypeFor[T any]() TypeRef { return TypeRef{typ: reflect.TypeFor[T]()} }

// TypeOfValue refers to the dynamic type of v.
func TypeOfValue(v any) TypeRef { return TypeRef{typ: reflect.TypeOf(v)} }

// String renders the reference for messages.
func (r TypeRef) String() string {
	if r.typ != nil {
		return r.typ.String()
	}
	return r.name
}

// elementMatches is the exact check used by Of: by tag, the element's type tag
// must equal the name; by type, the dynamic type must be identical.
func (r TypeRef) elementMatches(v any) bool {
	if r.typ == nil {
		return typecheck.TypeOf(v) == r.name
	}
	return v != nil && reflect.TypeOf(v) == r.typ
}

// instanceMatches is the looser check used by InstanceOf: identical type, a
// pointer to it, or an implementation of an interface type.
func (r TypeRef) instanceMatches(v any) bool {
	if v == nil {
		return false
	}
	vt := reflect.TypeOf(v)
	if r.typ == nil {
		return typecheck.ClassTag(v) == r.name || (vt.Kind() == reflect.Pointer && vt.Elem().String() == r.name)
	}
	if r.typ.Kind() == reflect.Interface {
		return vt.Implements(r.typ)
	}
	return vt == r.typ || (vt.Kind() == reflect.Pointer && vt.Elem() == r.typ)
}
