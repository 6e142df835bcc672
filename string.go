package goassert

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/reoring/goassert/i18n"
	"github.com/reoring/goassert/internal/typecheck"
)

// isSpace matches the Unicode white space set plus the byte order mark.
func isSpace(r rune) bool { return unicode.IsSpace(r) || r == '\uFEFF' }

// StringAssert refines a string value.
type StringAssert struct {
	chain
	value string
}

func newString(g *Guard, name string, v any, optional bool) *StringAssert {
	return runOptionally(optional, v, func() *StringAssert {
		a := &StringAssert{chain: chain{g: g, name: name, raw: v}}
		if !typecheck.IsPrimitive(v, typecheck.String, g.bypass()) {
			a.err = g.typeFailure(name, v, typecheck.String)
			return a
		}
		if s, ok := v.(string); ok {
			a.value = s
		} else {
			a.value = fmt.Sprint(v)
		}
		return a
	}, func() *StringAssert {
		return &StringAssert{chain: chain{g: g, name: name, raw: v, skip: true}}
	})
}

// Matches fails when the value does not match pattern. A nil pattern fails
// with a parameter error.
func (a *StringAssert) Matches(pattern *regexp.Regexp) *StringAssert {
	if !a.active() {
		return a
	}
	if pattern == nil {
		a.err = a.g.fail(a.name, a.raw, "*regexp.Regexp", message(i18n.KeyPatternParam, a.name, nil), OpMatches)
		return a
	}
	if !pattern.MatchString(a.value) {
		a.failf(a.raw, pattern.String(), OpMatches, map[string]string{"pattern": pattern.String()})
	}
	return a
}

// NotEmpty fails on the empty string.
func (a *StringAssert) NotEmpty() *StringAssert {
	if a.active() && a.value == "" {
		a.failf(a.raw, "non empty string", OpNotEmpty, nil)
	}
	return a
}

// NotWhiteSpace fails when the value is empty or only whitespace.
func (a *StringAssert) NotWhiteSpace() *StringAssert {
	if a.active() && strings.TrimFunc(a.value, isSpace) == "" {
		a.failf(a.raw, "non white space only string", OpNotWhiteSpace, nil)
	}
	return a
}

// UUID fails unless the value, with every hyphen removed, is exactly 32
// hexadecimal digits. Hyphen placement is not checked.
func (a *StringAssert) UUID() *StringAssert {
	if a.active() && !typecheck.IsHex32(a.value) {
		a.failf(a.raw, "UUID", OpUUID, nil)
	}
	return a
}

// GUID is an alias of UUID.
func (a *StringAssert) GUID() *StringAssert { return a.UUID() }
