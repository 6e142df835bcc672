package goassert

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/zoobzio/metricz"
	"go.uber.org/zap"

	"github.com/reoring/goassert/i18n"
	"github.com/reoring/goassert/internal/typecheck"
)

// Guard is the entry point for building assertions. A Guard only holds
// configuration, so one instance may be shared across goroutines; the builders
// it returns may not.
type Guard struct {
	mode    Mode
	logger  *zap.Logger
	metrics *metricz.Registry
}

// New creates a Guard from cfg.
func New(cfg Config) *Guard {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{mode: cfg.Mode, logger: logger, metrics: cfg.Metrics}
}

// Mode returns the configured execution mode.
func (g *Guard) Mode() Mode { return g.mode }

func (g *Guard) bypass() bool { return g.mode == ModeProduction }

// Optional returns a handle whose next constructor call skips every check when
// the value is absent. The handle carries no shared state, so the optional
// behaviour cannot leak into other calls on g.
func (g *Guard) Optional() OptionalGuard { return OptionalGuard{g: g} }

// Number asserts that value is a number and returns its refinement handle.
func (g *Guard) Number(name string, value any) *NumberAssert { return newNumber(g, name, value, false) }

// String asserts that value is a string and returns its refinement handle.
func (g *Guard) String(name string, value any) *StringAssert { return newString(g, name, value, false) }

// Object asserts that value is an object and returns its refinement handle.
func (g *Guard) Object(name string, value any) *ObjectAssert { return newObject(g, name, value, false) }

// Array asserts that value is a slice or array and returns its refinement handle.
func (g *Guard) Array(name string, value any) *ArrayAssert { return newArray(g, name, value, false) }

// Date asserts that value is a time.Time and returns its refinement handle.
func (g *Guard) Date(name string, value any) *DateAssert { return newDate(g, name, value, false) }

// Bool asserts that value is a boolean.
func (g *Guard) Bool(name string, value any) error { return g.checkBool(name, value, false) }

// Func asserts that value is a function.
func (g *Guard) Func(name string, value any) error { return g.checkFunc(name, value, false) }

// Buffer asserts that value is a byte buffer ([]byte or bytes.Buffer).
func (g *Guard) Buffer(name string, value any) error { return g.checkBuffer(name, value, false) }

// Ok fails when value is undefined or null.
func (g *Guard) Ok(name string, value any) error {
	if typecheck.IsAbsent(value) {
		return g.failf(name, value, "value not undefined or null", OpOk, nil)
	}
	return nil
}

// Defined fails when value is undefined (the untyped nil). A typed nil is
// accepted as null.
func (g *Guard) Defined(name string, value any) error {
	if typecheck.IsUndefined(value) {
		return g.failf(name, value, "value not undefined", OpDefined, nil)
	}
	return nil
}

// Predicate is a caller-supplied check used by Custom.
type Predicate func(v any) bool

// Custom fails unless predicate(value) holds. A nil predicate is reported with
// its own message.
func (g *Guard) Custom(name string, value any, predicate Predicate) error {
	return g.checkCustom(name, value, predicate, false)
}

func (g *Guard) checkBool(name string, value any, optional bool) error {
	return runOptionally(optional, value, func() error {
		if !typecheck.IsPrimitive(value, typecheck.Boolean, g.bypass()) {
			return g.typeFailure(name, value, typecheck.Boolean)
		}
		return nil
	}, nil)
}

func (g *Guard) checkFunc(name string, value any, optional bool) error {
	return runOptionally(optional, value, func() error {
		// a nil func is null, not a function
		if !typecheck.IsPrimitive(value, typecheck.Function, g.bypass()) || (!g.bypass() && typecheck.IsNull(value)) {
			return g.typeFailure(name, value, typecheck.Function)
		}
		return nil
	}, nil)
}

func (g *Guard) checkBuffer(name string, value any, optional bool) error {
	return runOptionally(optional, value, func() error {
		if !typecheck.IsBuffer(value, g.bypass()) {
			return g.failf(name, typecheck.ClassTag(value), "Buffer", OpBuffer, nil)
		}
		return nil
	}, nil)
}

func (g *Guard) checkCustom(name string, value any, predicate Predicate, optional bool) error {
	return runOptionally(optional, value, func() error {
		if predicate == nil {
			return g.fail(name, nil, typecheck.Function, message(i18n.KeyPredicateParam, name, nil), OpCustom)
		}
		desc := predicateName(predicate)
		if !predicate(value) {
			return g.failf(name, value, desc, OpCustom, map[string]string{"predicate": desc})
		}
		return nil
	}, nil)
}

// typeFailure reports a base-type mismatch. Actual is the observed type tag.
func (g *Guard) typeFailure(name string, value any, want string) *AssertionError {
	return g.failf(name, typecheck.TypeOf(value), want, OpType, map[string]string{"type": want})
}

// predicateName returns the short symbol name of fn, e.g. "main.isPositive".
func predicateName(fn Predicate) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "predicate"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// OptionalGuard builds assertions that are skipped when the value is absent.
// It is a value type obtained from Guard.Optional; each constructor call is
// independent.
type OptionalGuard struct{ g *Guard }

// Optional returns the same handle.
func (o OptionalGuard) Optional() OptionalGuard { return o }

// Number is Guard.Number, skipped when value is absent.
func (o OptionalGuard) Number(name string, value any) *NumberAssert {
	return newNumber(o.g, name, value, true)
}

// String is Guard.String, skipped when value is absent.
func (o OptionalGuard) String(name string, value any) *StringAssert {
	return newString(o.g, name, value, true)
}

// Object is Guard.Object, skipped when value is absent.
func (o OptionalGuard) Object(name string, value any) *ObjectAssert {
	return newObject(o.g, name, value, true)
}

// Array is Guard.Array, skipped when value is absent.
func (o OptionalGuard) Array(name string, value any) *ArrayAssert {
	return newArray(o.g, name, value, true)
}

// Date is Guard.Date, skipped when value is absent.
func (o OptionalGuard) Date(name string, value any) *DateAssert {
	return newDate(o.g, name, value, true)
}

// Bool is Guard.Bool, skipped when value is absent.
func (o OptionalGuard) Bool(name string, value any) error { return o.g.checkBool(name, value, true) }

// Func is Guard.Func, skipped when value is absent.
func (o OptionalGuard) Func(name string, value any) error { return o.g.checkFunc(name, value, true) }

// Buffer is Guard.Buffer, skipped when value is absent.
func (o OptionalGuard) Buffer(name string, value any) error { return o.g.checkBuffer(name, value, true) }

// Custom is Guard.Custom, skipped when value is absent.
func (o OptionalGuard) Custom(name string, value any, predicate Predicate) error {
	return o.g.checkCustom(name, value, predicate, true)
}
