package goassert

import (
	"strconv"
	"time"

	"github.com/reoring/goassert/internal/typecheck"
)

const dateClass = `^\*?time\.Time$`

// DateAssert refines a time.Time (or *time.Time) value. Calendar fields are
// read in the value's own location.
type DateAssert struct {
	chain
	value time.Time
}

func newDate(g *Guard, name string, v any, optional bool) *DateAssert {
	return runOptionally(optional, v, func() *DateAssert {
		a := &DateAssert{chain: chain{g: g, name: name, raw: v}}
		t, isTime := typecheck.ToTime(v)
		if !typecheck.MatchesClass(v, dateClass, g.bypass()) || (!g.bypass() && !isTime) {
			a.err = g.failf(name, typecheck.ClassTag(v), "time.Time", OpType, map[string]string{"type": "time.Time"})
			return a
		}
		a.value = t
		return a
	}, func() *DateAssert {
		return &DateAssert{chain: chain{g: g, name: name, raw: v, skip: true}}
	})
}

// Time returns the value as time.Time (zero when it is not a time).
func (a *DateAssert) Time() time.Time { return a.value }

// Before fails unless the value is strictly earlier than t.
func (a *DateAssert) Before(t time.Time) *DateAssert {
	if a.active() && !a.value.Before(t) {
		a.failf(a.raw, "date before "+formatTime(t), OpBefore, map[string]string{"date": formatTime(t)})
	}
	return a
}

// After fails unless the value is strictly later than t.
func (a *DateAssert) After(t time.Time) *DateAssert {
	if a.active() && !a.value.After(t) {
		a.failf(a.raw, "date after "+formatTime(t), OpAfter, map[string]string{"date": formatTime(t)})
	}
	return a
}

// Within fails when the value is outside [lower, upper].
func (a *DateAssert) Within(lower, upper time.Time) *DateAssert {
	if a.active() && (a.value.Before(lower) || a.value.After(upper)) {
		lo, hi := formatTime(lower), formatTime(upper)
		a.failf(a.raw, "date within "+lo+" and "+hi, OpWithin, map[string]string{"lower": lo, "upper": hi})
	}
	return a
}

// DayOf fails unless the day of the month equals day.
func (a *DateAssert) DayOf(day int) *DateAssert {
	if a.active() && a.value.Day() != day {
		a.failf(a.raw, day, OpDayOf, map[string]string{"day": strconv.Itoa(day)})
	}
	return a
}

// MonthOf fails unless the month matches m. See MonthIndex and MonthName.
func (a *DateAssert) MonthOf(m MonthRef) *DateAssert {
	if a.active() && !m.matches(a.value.Month()) {
		a.failf(a.raw, m.String(), OpMonthOf, map[string]string{"month": m.String()})
	}
	return a
}

// YearOf fails unless the year equals year.
func (a *DateAssert) YearOf(year int) *DateAssert {
	if a.active() && a.value.Year() != year {
		a.failf(a.raw, year, OpYearOf, map[string]string{"year": strconv.Itoa(year)})
	}
	return a
}

// MonthRef identifies a month either by zero-based index or by English name.
type MonthRef struct {
	index int
	name  string
	named bool
}

// MonthIndex refers to a month by zero-based index (0 is January).
func MonthIndex(i int) MonthRef { return MonthRef{index: i} }

// MonthName refers to a month by English name. A three-letter name is
// compared with the abbreviation ("Jan"), a longer one with the full name
// ("January"). Shorter names never match.
func MonthName(name string) MonthRef { return MonthRef{name: name, named: true} }

// String renders the reference for messages.
func (m MonthRef) String() string {
	if m.named {
		return m.name
	}
	return strconv.Itoa(m.index)
}

func (m MonthRef) matches(month time.Month) bool {
	if !m.named {
		return int(month)-1 == m.index
	}
	full := month.String()
	switch {
	case len(m.name) == 3:
		return full[:3] == m.name
	case len(m.name) > 3:
		return full == m.name
	default:
		return false
	}
}

func formatTime(t time.Time) string { return t.Format(time.RFC3339Nano) }
