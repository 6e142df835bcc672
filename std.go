package goassert

import "sync/atomic"

var std atomic.Pointer[Guard]

func init() { std.Store(New(Config{Mode: ModeFromEnv()})) }

// Default returns the package-level Guard used by the top-level functions.
func Default() *Guard { return std.Load() }

// SetDefault replaces the package-level Guard. A nil guard is ignored.
func SetDefault(g *Guard) {
	if g != nil {
		std.Store(g)
	}
}

// Optional is Default().Optional().
func Optional() OptionalGuard { return Default().Optional() }

// Number is Default().Number.
func Number(name string, value any) *NumberAssert { return Default().Number(name, value) }

// String is Default().String.
func String(name string, value any) *StringAssert { return Default().String(name, value) }

// Object is Default().Object.
func Object(name string, value any) *ObjectAssert { return Default().Object(name, value) }

// Array is Default().Array.
func Array(name string, value any) *ArrayAssert { return Default().Array(name, value) }

// Date is Default().Date.
func Date(name string, value any) *DateAssert { return Default().Date(name, value) }

// Bool is Default().Bool.
func Bool(name string, value any) error { return Default().Bool(name, value) }

// Func is Default().Func.
func Func(name string, value any) error { return Default().Func(name, value) }

// Buffer is Default().Buffer.
func Buffer(name string, value any) error { return Default().Buffer(name, value) }

// Ok is Default().Ok.
func Ok(name string, value any) error { return Default().Ok(name, value) }

// Defined is Default().Defined.
func Defined(name string, value any) error { return Default().Defined(name, value) }

// Custom is Default().Custom.
func Custom(name string, value any, predicate Predicate) error {
	return Default().Custom(name, value, predicate)
}
