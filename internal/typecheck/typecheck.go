// Package typecheck holds the low-level type predicates shared by the
// assertion builders. Predicates never fail on their own; they report
// booleans and leave message construction to the caller.
package typecheck

import (
	"bytes"
	"math"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type tags reported by TypeOf.
const (
	Undefined = "undefined"
	Boolean   = "boolean"
	Number    = "number"
	String    = "string"
	Function  = "function"
	Object    = "object"
)

var (
	decimalType    = reflect.TypeOf(decimal.Decimal{})
	decimalPtrType = reflect.TypeOf(&decimal.Decimal{})
)

// TypeOf returns the dynamic type tag of v.
// Typed nils report "object"; only the untyped nil interface is "undefined".
func TypeOf(v any) string {
	if v == nil {
		return Undefined
	}
	rt := reflect.TypeOf(v)
	if rt == decimalType || (rt == decimalPtrType && !reflect.ValueOf(v).IsNil()) {
		return Number
	}
	switch rt.Kind() {
	case reflect.Bool:
		return Boolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return Number
	case reflect.String:
		return String
	case reflect.Func:
		return Function
	default:
		return Object
	}
}

// IsPrimitive reports whether TypeOf(v) equals typeName. bypass forces success.
func IsPrimitive(v any, typeName string, bypass bool) bool {
	if bypass {
		return true
	}
	return TypeOf(v) == typeName
}

// IsArray reports whether v is a slice or an array.
func IsArray(v any, bypass bool) bool {
	if bypass {
		return true
	}
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// IsBuffer reports whether v is a byte buffer.
func IsBuffer(v any, bypass bool) bool {
	if bypass {
		return true
	}
	switch b := v.(type) {
	case []byte:
		return true
	case bytes.Buffer:
		return true
	case *bytes.Buffer:
		return b != nil
	}
	return false
}

// ClassTag returns the reflected type name of v, e.g. "time.Time" or "*time.Time".
func ClassTag(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// MatchesClass reports whether ClassTag(v) matches pattern case-insensitively.
func MatchesClass(v any, pattern string, bypass bool) bool {
	if bypass {
		return true
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return false
	}
	return re.MatchString(ClassTag(v))
}

// IsUndefined reports whether v is the untyped nil interface.
func IsUndefined(v any) bool { return v == nil }

// IsNull reports whether v holds a typed nil.
func IsNull(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// IsAbsent reports whether v is undefined or null.
func IsAbsent(v any) bool { return IsUndefined(v) || IsNull(v) }

// Truthy mirrors dynamic-language truthiness: zero numbers, NaN, empty strings,
// false and nils are falsy. Containers and structs are truthy when non-nil.
func Truthy(v any) bool {
	if IsAbsent(v) {
		return false
	}
	switch TypeOf(v) {
	case Boolean:
		return reflect.ValueOf(v).Bool()
	case String:
		return reflect.ValueOf(v).String() != ""
	case Number:
		f, _ := ToFloat(v)
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// ToFloat converts any Go number (or decimal.Decimal) to float64.
// Non-numbers return NaN and false.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n.InexactFloat64(), true
	case *decimal.Decimal:
		if n == nil {
			return math.NaN(), false
		}
		return n.InexactFloat64(), true
	}
	if v == nil {
		return math.NaN(), false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return math.NaN(), false
}

// ToDecimal converts any Go number (or decimal.Decimal) to an exact decimal.
// Integers keep every digit. NaN, infinities and non-numbers return false.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Decimal{}, false
		}
		return *n, true
	}
	if v == nil {
		return decimal.Decimal{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decimal.NewFromUint64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Decimal{}, false
		}
		if rv.Kind() == reflect.Float32 {
			return decimal.NewFromFloat32(float32(f)), true
		}
		return decimal.NewFromFloat(f), true
	}
	return decimal.Decimal{}, false
}

// ToTime extracts a time.Time from v (value or non-nil pointer).
func ToTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t != nil {
			return *t, true
		}
	}
	return time.Time{}, false
}

// Elements returns the elements of a slice or array; anything else is empty.
func Elements(v any) []any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// StrictEqual compares without coercion: same dynamic type and ==.
// Incomparable values are never equal.
func StrictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// NumericEqual compares two numbers by value regardless of their Go type.
func NumericEqual(a, b any) bool {
	fa, ok := ToFloat(a)
	if !ok {
		return false
	}
	fb, ok := ToFloat(b)
	if !ok {
		return false
	}
	return fa == fb
}

// IsHex32 reports whether s, once hyphens are removed, is 32 hexadecimal digits.
func IsHex32(s string) bool {
	s = strings.ReplaceAll(s, "-", "")
	if len(s) != 32 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
