package goassert

import "github.com/reoring/goassert/internal/typecheck"

// runOptionally invokes onPresent unless the call is optional and value is
// absent (untyped nil or typed nil), in which case onAbsent runs instead.
// Zero values such as 0, "" and false count as present.
func runOptionally[T any](isOptional bool, value any, onPresent, onAbsent func() T) T {
	if !isOptional || !typecheck.IsAbsent(value) {
		return onPresent()
	}
	if onAbsent == nil {
		var zero T
		return zero
	}
	return onAbsent()
}

// chain is the state shared by every assertion builder: the named value, the
// guard reporting failures, and the first failure seen.
type chain struct {
	g    *Guard
	name string
	raw  any
	skip bool
	err  *AssertionError
}

// active reports whether refinements should still run.
func (c *chain) active() bool { return !c.skip && c.err == nil }

func (c *chain) failf(actual, expected any, op string, data map[string]string) {
	c.err = c.g.failf(c.name, actual, expected, op, data)
}

// Err returns the first failure of the chain, or nil.
func (c *chain) Err() error {
	if c.err == nil {
		return nil
	}
	return c.err
}

// Name returns the subject's label.
func (c *chain) Name() string { return c.name }

// Value returns the subject under test, unchanged.
func (c *chain) Value() any { return c.raw }

// Skipped reports whether the chain was bypassed because an optional value was absent.
func (c *chain) Skipped() bool { return c.skip }
