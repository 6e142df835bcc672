package goassert

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/reoring/goassert/i18n"
)

// fail builds the AssertionError for one violated check and records it.
func (g *Guard) fail(name string, actual, expected any, message, op string) *AssertionError {
	err := &AssertionError{
		Name:      name,
		Message:   message,
		Actual:    actual,
		Expected:  expected,
		Operation: op,
	}
	g.record(err)
	return err
}

// failf is fail with the message taken from the i18n catalogue.
func (g *Guard) failf(name string, actual, expected any, op string, data map[string]string) *AssertionError {
	return g.fail(name, actual, expected, message(op, name, data), op)
}

func (g *Guard) record(err *AssertionError) {
	g.logger.Warn("assertion failed",
		zap.String("assertion.name", err.Name),
		zap.String("assertion.operation", err.Operation),
		zap.String("assertion.message", err.Message),
		zap.String("assertion.expected", truncateValue(err.Expected)),
		zap.String("assertion.actual", truncateValue(err.Actual)),
	)
	if g.metrics != nil {
		g.metrics.Counter(FailedTotal).Inc()
		g.metrics.Counter(FailedKey(err.Operation)).Inc()
	}
}

func message(code, name string, data map[string]string) string {
	if data == nil {
		data = make(map[string]string, 1)
	}
	data["name"] = name
	return i18n.T(code, data)
}

const maxValueLength = 200

// truncateValue renders v for logging, truncating long values.
func truncateValue(v any) string {
	s := fmt.Sprintf("%v", v)
	if len(s) <= maxValueLength {
		return s
	}
	cut := maxValueLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + fmt.Sprintf("... (truncated %d chars)", len(s)-cut)
}

// str renders a check argument for message interpolation.
func str(v any) string { return fmt.Sprint(v) }
