package goassert

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/reoring/goassert/internal/typecheck"
)

var two = decimal.NewFromInt(2)

// NumberAssert refines a numeric value. Any Go integer or float kind and
// decimal.Decimal are accepted. Finite values are compared as exact decimals,
// so large integers keep every digit; NaN and infinities fall back to float64.
type NumberAssert struct {
	chain
	value   float64
	exact   decimal.Decimal
	isExact bool
}

func newNumber(g *Guard, name string, v any, optional bool) *NumberAssert {
	return runOptionally(optional, v, func() *NumberAssert {
		a := &NumberAssert{chain: chain{g: g, name: name, raw: v}}
		a.value, _ = typecheck.ToFloat(v)
		a.exact, a.isExact = typecheck.ToDecimal(v)
		if !typecheck.IsPrimitive(v, typecheck.Number, g.bypass()) {
			a.err = g.typeFailure(name, v, typecheck.Number)
		}
		return a
	}, func() *NumberAssert {
		return &NumberAssert{chain: chain{g: g, name: name, raw: v, skip: true}, value: math.NaN()}
	})
}

// Float64 returns the value converted to float64 (NaN when it is not a number).
func (a *NumberAssert) Float64() float64 { return a.value }

// Decimal returns the exact value and false when the value is NaN, infinite or
// not a number.
func (a *NumberAssert) Decimal() (decimal.Decimal, bool) { return a.exact, a.isExact }

// cmp compares the value with m. ok is false when either side is NaN.
func (a *NumberAssert) cmp(m float64) (c int, ok bool) {
	if a.isExact && !math.IsNaN(m) && !math.IsInf(m, 0) {
		return a.exact.Cmp(decimal.NewFromFloat(m)), true
	}
	switch {
	case math.IsNaN(a.value) || math.IsNaN(m):
		return 0, false
	case a.value < m:
		return -1, true
	case a.value > m:
		return 1, true
	}
	return 0, true
}

// equals reports whether c is a number with the same value.
func (a *NumberAssert) equals(c any) bool {
	if d, ok := typecheck.ToDecimal(c); ok && a.isExact {
		return a.exact.Equal(d)
	}
	f, ok := typecheck.ToFloat(c)
	return ok && f == a.value
}

func (a *NumberAssert) even() bool {
	if a.isExact {
		return a.exact.Mod(two).IsZero()
	}
	return math.Mod(a.value, 2) == 0
}

func (a *NumberAssert) integral() bool {
	if a.isExact {
		return a.exact.IsInteger()
	}
	return math.Mod(a.value, 1) == 0
}

// Min fails when the value is below m. m itself is accepted.
func (a *NumberAssert) Min(m float64) *NumberAssert {
	if c, ok := a.cmp(m); a.active() && ok && c < 0 {
		a.failf(a.raw, "number greater than "+str(m), OpMin, map[string]string{"min": str(m)})
	}
	return a
}

// Max fails when the value is above m. m itself is accepted.
func (a *NumberAssert) Max(m float64) *NumberAssert {
	if c, ok := a.cmp(m); a.active() && ok && c > 0 {
		a.failf(a.raw, "number less than "+str(m), OpMax, map[string]string{"max": str(m)})
	}
	return a
}

// Range fails when the value is outside [lower, upper].
func (a *NumberAssert) Range(lower, upper float64) *NumberAssert {
	lo, okLo := a.cmp(lower)
	hi, okHi := a.cmp(upper)
	if a.active() && ((okLo && lo < 0) || (okHi && hi > 0)) {
		a.failf(a.raw, "number between "+str(lower)+" and "+str(upper), OpRange,
			map[string]string{"lower": str(lower), "upper": str(upper)})
	}
	return a
}

// Even fails when the value is not divisible by two.
func (a *NumberAssert) Even() *NumberAssert {
	if a.active() && !a.even() {
		a.failf(a.raw, "even number", OpEven, nil)
	}
	return a
}

// Odd fails when the value is even.
func (a *NumberAssert) Odd() *NumberAssert {
	if a.active() && a.even() {
		a.failf(a.raw, "odd number", OpOdd, nil)
	}
	return a
}

// Equal fails unless c is a number with the same value.
func (a *NumberAssert) Equal(c any) *NumberAssert {
	if !a.active() {
		return a
	}
	if !a.equals(c) {
		a.failf(a.raw, c, OpEqual, map[string]string{"expected": str(c)})
	}
	return a
}

// In fails unless the value is one of values. values must be a slice or an
// array; anything else fails with OpArray.
func (a *NumberAssert) In(values any) *NumberAssert {
	if !a.active() {
		return a
	}
	if !typecheck.IsArray(values, false) {
		a.err = a.g.failf("values", typecheck.TypeOf(values), "Array", OpArray, nil)
		return a
	}
	for _, e := range typecheck.Elements(values) {
		if a.equals(e) {
			return a
		}
	}
	a.failf(a.raw, "value in "+str(values), OpIn, map[string]string{"values": str(values)})
	return a
}

// Finite fails on NaN and infinities.
func (a *NumberAssert) Finite() *NumberAssert {
	if a.active() && (math.IsNaN(a.value) || math.IsInf(a.value, 0)) {
		a.failf(a.raw, "finite number", OpFinite, nil)
	}
	return a
}

// Integer fails when the value has a fractional part.
func (a *NumberAssert) Integer() *NumberAssert {
	if a.active() && !a.integral() {
		a.failf(a.raw, "integer", OpInteger, nil)
	}
	return a
}

// Float fails unless the value has a non-zero fractional part. Integral
// floats such as 4.0 are not floats under this definition.
func (a *NumberAssert) Float() *NumberAssert {
	if a.active() && a.integral() {
		a.failf(a.raw, "float", OpFloat, nil)
	}
	return a
}

// Positive fails when the value is zero or below.
func (a *NumberAssert) Positive() *NumberAssert {
	if c, ok := a.cmp(0); a.active() && ok && c <= 0 {
		a.failf(a.raw, "positive number", OpPositive, nil)
	}
	return a
}

// Negative fails when the value is zero or above.
func (a *NumberAssert) Negative() *NumberAssert {
	if c, ok := a.cmp(0); a.active() && ok && c >= 0 {
		a.failf(a.raw, "negative number", OpNegative, nil)
	}
	return a
}
