package goassert

import (
	"errors"
	"fmt"
	"strings"

	j "github.com/goccy/go-json"
)

// Operation tags (exported consts for IDE completion and type safety by convention)
const (
	OpType          = "type"
	OpArray         = "array"
	OpBuffer        = "buffer"
	OpMin           = "min"
	OpMax           = "max"
	OpRange         = "range"
	OpEven          = "even"
	OpOdd           = "odd"
	OpEqual         = "equal"
	OpIn            = "in"
	OpFinite        = "finite"
	OpInteger       = "integer"
	OpFloat         = "float"
	OpPositive      = "positive"
	OpNegative      = "negative"
	OpMatches       = "matches"
	OpNotEmpty      = "notEmpty"
	OpNotWhiteSpace = "notWhiteSpace"
	OpUUID          = "uuid"
	OpHasMember     = "hasMember"
	OpInstanceOf    = "instanceOf"
	OpOf            = "of"
	OpContains      = "contains"
	OpBefore        = "before"
	OpAfter         = "after"
	OpWithin        = "within"
	OpDayOf         = "dayOf"
	OpMonthOf       = "monthOf"
	OpYearOf        = "yearOf"
	OpOk            = "ok"
	OpDefined       = "defined"
	OpCustom        = "custom"
)

// ErrAssertionFailed is the sentinel matched by every AssertionError.
var ErrAssertionFailed = errors.New("assertion failed")

// AssertionError describes a single failed check.
type AssertionError struct {
	Name      string `json:"name"`
	Message   string `json:"message"`
	Actual    any    `json:"actual"`
	Expected  any    `json:"expected"`
	Operation string `json:"operation"`
}

// Error returns the human-readable message.
func (e *AssertionError) Error() string {
	if e == nil {
		return ErrAssertionFailed.Error()
	}
	return e.Message
}

// MarshalJSON renders Actual and Expected as text when they have no JSON form,
// such as NaN, infinities, funcs or channels.
func (e *AssertionError) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	type plain AssertionError
	out := plain(*e)
	out.Actual = jsonValue(e.Actual)
	out.Expected = jsonValue(e.Expected)
	return j.Marshal(out)
}

func jsonValue(v any) any {
	if _, err := j.Marshal(v); err != nil {
		return truncateValue(v)
	}
	return v
}

// Unwrap returns ErrAssertionFailed for errors.Is.
func (e *AssertionError) Unwrap() error { return ErrAssertionFailed }

// AsAssertionError extracts an AssertionError from err using errors.As.
func AsAssertionError(err error) (*AssertionError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AssertionError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Failures is a collection of assertion errors that implements error.
type Failures []*AssertionError

// Error summarizes the first few failures.
func (fs Failures) Error() string {
	if len(fs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(fs)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. range: age should be between 0 and 120
		fmt.Fprintf(b, "%s: %s", fs[i].Operation, fs[i].Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the individual failures to errors.Is / errors.As.
func (fs Failures) Unwrap() []error {
	out := make([]error, len(fs))
	for i, f := range fs {
		out[i] = f
	}
	return out
}

// AppendFailure appends err to dst when it is an AssertionError (or carries
// one). Other non-nil errors are wrapped as a custom failure under name.
func AppendFailure(dst Failures, name string, err error) Failures {
	if err == nil {
		return dst
	}
	if ae, ok := AsAssertionError(err); ok {
		return append(dst, ae)
	}
	return append(dst, &AssertionError{Name: name, Message: err.Error(), Operation: OpCustom})
}

// AsFailures extracts Failures from an error using errors.As internally.
func AsFailures(err error) (Failures, bool) {
	if err == nil {
		return nil, false
	}
	var fs Failures
	if errors.As(err, &fs) {
		return fs, true
	}
	return nil, false
}

// Must panics with err when it is non-nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
