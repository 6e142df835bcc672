package goassert_test

import (
	"bytes"
	"errors"
	"math"
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/metricz"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	goassert "github.com/reoring/goassert"
)

func TestOptional_Scenario(t *testing.T) {
	require.NoError(t, goassert.New(goassert.Config{}).Optional().Number("count", nil).Min(10).Err())
}

func TestOptional_SkipsAbsentForEveryBuilder(t *testing.T) {
	g := goassert.New(goassert.Config{})
	var nilPtr *time.Time

	for _, v := range []any{nil, nilPtr} {
		o := g.Optional()

		n := o.Number("n", v)
		require.Same(t, n, n.Min(10).Max(1).Even().Odd().Equal(3).In(1).Finite().Integer().Float().Positive().Negative().Range(5, 6))
		require.NoError(t, n.Err())
		require.True(t, n.Skipped())

		s := o.String("s", v)
		require.NoError(t, s.Matches(nil).NotEmpty().NotWhiteSpace().UUID().GUID().Err())

		obj := o.Object("o", v)
		require.NoError(t, obj.HasMember("x").InstanceOf(goassert.TypeFor[int]()).Err())

		arr := o.Array("a", v)
		require.NoError(t, arr.Of(goassert.TypeName("string")).Contains(1).Err())

		d := o.Date("d", v)
		require.NoError(t, d.Before(jan1).After(dec31).Within(dec31, jan1).DayOf(40).MonthOf(goassert.MonthName("x")).YearOf(1).Err())

		require.NoError(t, o.Bool("b", v))
		require.NoError(t, o.Func("f", v))
		require.NoError(t, o.Buffer("buf", v))
		require.NoError(t, o.Custom("c", v, nil))
	}
}

func TestOptional_PresentValuesAreChecked(t *testing.T) {
	o := goassert.New(goassert.Config{}).Optional()

	// zero values are present
	requireOp(t, o.Number("n", 0).Positive().Err(), goassert.OpPositive, "n")
	requireOp(t, o.String("s", "").NotEmpty().Err(), goassert.OpNotEmpty, "s")
	requireOp(t, o.Number("n", false).Err(), goassert.OpType, "n")
	require.Error(t, o.Bool("b", 0))
}

func TestOptional_DoesNotLeak(t *testing.T) {
	g := goassert.New(goassert.Config{})

	require.NoError(t, g.Optional().Number("first", nil).Err())
	requireOp(t, g.Number("second", nil).Err(), goassert.OpType, "second")

	o := g.Optional()
	require.NoError(t, o.String("first", nil).Err())
	requireOp(t, g.String("second", nil).Err(), goassert.OpType, "second")
}

func TestOptional_Idempotent(t *testing.T) {
	o := goassert.New(goassert.Config{}).Optional()
	require.Equal(t, o, o.Optional())
	require.NoError(t, o.Optional().Array("a", nil).Err())
}

func TestOkAndDefined(t *testing.T) {
	g := goassert.New(goassert.Config{})
	var p *int

	require.NoError(t, g.Ok("v", 0))
	require.NoError(t, g.Ok("v", ""))
	requireOp(t, g.Ok("v", nil), goassert.OpOk, "v")
	ae := requireOp(t, g.Ok("v", p), goassert.OpOk, "v")
	require.Equal(t, "v should not be undefined or null", ae.Message)

	require.NoError(t, g.Defined("v", p))
	ae = requireOp(t, g.Defined("v", nil), goassert.OpDefined, "v")
	require.Equal(t, "v should not be undefined", ae.Message)
}

func TestBoolFuncBuffer(t *testing.T) {
	g := goassert.New(goassert.Config{})

	require.NoError(t, g.Bool("b", false))
	ae := requireOp(t, g.Bool("b", "false"), goassert.OpType, "b")
	require.Equal(t, "b should be of type boolean", ae.Message)

	require.NoError(t, g.Func("f", func() {}))
	require.NoError(t, g.Func("f", TestBoolFuncBuffer))
	requireOp(t, g.Func("f", "func"), goassert.OpType, "f")
	var nilFunc func()
	requireOp(t, g.Func("f", nilFunc), goassert.OpType, "f")
	require.NoError(t, g.Optional().Func("f", nilFunc))

	require.NoError(t, g.Buffer("buf", []byte("x")))
	require.NoError(t, g.Buffer("buf", &bytes.Buffer{}))
	requireOp(t, g.Buffer("buf", "x"), goassert.OpBuffer, "buf")
}

func isPositive(v any) bool {
	n, ok := v.(int)
	return ok && n > 0
}

func TestCustom(t *testing.T) {
	g := goassert.New(goassert.Config{})

	require.NoError(t, g.Custom("n", 3, isPositive))

	ae := requireOp(t, g.Custom("n", -3, isPositive), goassert.OpCustom, "n")
	require.Equal(t, "n should match predicate goassert_test.isPositive", ae.Message)
	require.Equal(t, "goassert_test.isPositive", ae.Expected)

	ae = requireOp(t, g.Custom("n", 3, nil), goassert.OpCustom, "n")
	require.Contains(t, ae.Message, "function")
}

func TestProductionMode_BypassesTypePredicates(t *testing.T) {
	g := goassert.New(goassert.Config{Mode: goassert.ModeProduction})
	require.Equal(t, goassert.ModeProduction, g.Mode())

	require.NoError(t, g.Number("n", "12").Err())
	require.NoError(t, g.String("s", 12).Err())
	require.NoError(t, g.Object("o", 1).Err())
	require.NoError(t, g.Array("a", 1).Err())
	require.NoError(t, g.Date("d", "x").Err())
	require.NoError(t, g.Bool("b", 1))
	require.NoError(t, g.Func("f", 1))
	require.NoError(t, g.Buffer("buf", 1))

	// structural checks still run
	requireOp(t, g.Number("n", 3).Min(5).Err(), goassert.OpMin, "n")
	requireOp(t, g.String("s", "").NotEmpty().Err(), goassert.OpNotEmpty, "s")
	requireOp(t, g.String("s", 12).Matches(regexp.MustCompile(`^a`)).Err(), goassert.OpMatches, "s")
	requireOp(t, g.Array("a", 1).Contains(1).Err(), goassert.OpContains, "a")
}

func TestModeFromEnv(t *testing.T) {
	t.Setenv("GOASSERT_ENV", "")
	t.Setenv("GO_ENV", "")
	t.Setenv("ENV", "")
	require.Equal(t, goassert.ModeDebug, goassert.ModeFromEnv())

	t.Setenv("ENV", "Production")
	require.Equal(t, goassert.ModeProduction, goassert.ModeFromEnv())

	// the first non-empty key wins
	t.Setenv("GOASSERT_ENV", "staging")
	require.Equal(t, goassert.ModeDebug, goassert.ModeFromEnv())
	require.Equal(t, "debug", goassert.ModeDebug.String())
	require.Equal(t, "production", goassert.ModeProduction.String())
}

func TestFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := goassert.New(goassert.Config{Logger: zap.New(core)})

	_ = g.Number("age", 25).Even().Err()
	require.NoError(t, g.Number("age", 26).Even().Err())

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	require.Equal(t, "age", fields["assertion.name"])
	require.Equal(t, goassert.OpEven, fields["assertion.operation"])
}

func TestFailureLog_TruncatesOnRuneBoundary(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := goassert.New(goassert.Config{Logger: zap.New(core)})

	long := "a" + strings.Repeat("é", 150)
	require.Error(t, g.String("s", long).Matches(regexp.MustCompile(`^x`)).Err())

	actual, ok := logs.All()[0].ContextMap()["assertion.actual"].(string)
	require.True(t, ok)
	require.True(t, utf8.ValidString(actual), actual)
	require.True(t, strings.HasPrefix(actual, "a"+strings.Repeat("é", 99)+"... (truncated"), actual)
}

func TestFailureIsCounted(t *testing.T) {
	reg := metricz.New()
	g := goassert.New(goassert.Config{Metrics: reg})

	_ = g.Number("n", 1).Even().Err()
	_ = g.Number("n", 1).Min(2).Err()
	_ = g.String("s", "").NotEmpty().Err()
	require.NoError(t, g.Number("n", 2).Even().Err())

	if v := reg.Counter(goassert.FailedTotal).Value(); v != 3 {
		t.Fatalf("expected 3 failures, got %v", v)
	}
	if v := reg.Counter(goassert.FailedKey(goassert.OpEven)).Value(); v != 1 {
		t.Fatalf("expected 1 even failure, got %v", v)
	}
}

func TestFailures(t *testing.T) {
	g := goassert.New(goassert.Config{})
	var fs goassert.Failures
	fs = goassert.AppendFailure(fs, "a", g.Number("a", 1).Even().Err())
	fs = goassert.AppendFailure(fs, "b", nil)
	fs = goassert.AppendFailure(fs, "c", errors.New("boom"))
	fs = goassert.AppendFailure(fs, "d", g.Ok("d", nil))
	fs = goassert.AppendFailure(fs, "e", g.Ok("e", nil))

	require.Len(t, fs, 4)
	require.Equal(t, goassert.OpCustom, fs[1].Operation)
	require.Equal(t, "even: a should be even; custom: boom; ok: d should not be undefined or null; ... (total 4)", fs.Error())
	require.ErrorIs(t, fs, goassert.ErrAssertionFailed)

	var err error = fs
	got, ok := goassert.AsFailures(err)
	require.True(t, ok)
	require.Len(t, got, 4)
}

func TestMust(t *testing.T) {
	require.NotPanics(t, func() { goassert.Must(nil) })
	require.Panics(t, func() { goassert.Must(goassert.New(goassert.Config{}).Number("n", "x").Err()) })
}

func TestDefaultGuard(t *testing.T) {
	prev := goassert.Default()
	defer goassert.SetDefault(prev)

	goassert.SetDefault(goassert.New(goassert.Config{Mode: goassert.ModeProduction}))
	require.NoError(t, goassert.Number("n", "x").Err())

	goassert.SetDefault(nil)
	require.Equal(t, goassert.ModeProduction, goassert.Default().Mode())

	goassert.SetDefault(goassert.New(goassert.Config{}))
	require.Error(t, goassert.Number("n", "x").Err())
	require.NoError(t, goassert.Optional().String("s", nil).Err())
	require.NoError(t, goassert.Object("o", map[string]any{"a": 1}).HasMember("a").Err())
	require.NoError(t, goassert.Array("a", []int{1}).Contains(1).Err())
	require.NoError(t, goassert.Date("d", jan1).YearOf(2024).Err())
	require.NoError(t, goassert.Bool("b", true))
	require.NoError(t, goassert.Func("f", isPositive))
	require.NoError(t, goassert.Buffer("buf", []byte{}))
	require.NoError(t, goassert.Ok("o", 1))
	require.NoError(t, goassert.Defined("d", 1))
	require.NoError(t, goassert.Custom("c", 1, isPositive))
}

func TestAssertionError_MarshalJSON(t *testing.T) {
	g := goassert.New(goassert.Config{})
	fs := goassert.AppendFailure(nil, "n", g.Number("n", math.Inf(1)).Finite().Err())
	fs = goassert.AppendFailure(fs, "f", g.Custom("f", func() {}, isPositive))
	fs = goassert.AppendFailure(fs, "m", g.Number("m", 1).Min(2).Err())

	b, err := json.Marshal(fs)
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	require.Len(t, out, 3)
	require.Equal(t, "+Inf", out[0]["actual"])
	require.Equal(t, "finite", out[0]["operation"])
	require.IsType(t, "", out[1]["actual"])
	require.Equal(t, 1.0, out[2]["actual"])
	require.Equal(t, "number greater than 2", out[2]["expected"])
}
