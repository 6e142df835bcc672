package typecheck

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	var nilPtr *int
	cases := []struct {
		in   any
		want string
	}{
		{nil, Undefined},
		{true, Boolean},
		{42, Number},
		{uint8(1), Number},
		{3.5, Number},
		{decimal.NewFromInt(7), Number},
		{"x", String},
		{func() {}, Function},
		{map[string]any{}, Object},
		{[]int{1}, Object},
		{time.Now(), Object},
		{nilPtr, Object},
	}
	for _, c := range cases {
		require.Equal(t, c.want, TypeOf(c.in), "TypeOf(%#v)", c.in)
	}
}

func TestIsPrimitive_Bypass(t *testing.T) {
	require.False(t, IsPrimitive("1", Number, false))
	require.True(t, IsPrimitive("1", Number, true))
}

func TestIsArray(t *testing.T) {
	require.True(t, IsArray([]string{}, false))
	require.True(t, IsArray([2]int{}, false))
	require.False(t, IsArray(map[string]int{}, false))
	require.False(t, IsArray(nil, false))
	require.True(t, IsArray(nil, true))
}

func TestIsBuffer(t *testing.T) {
	var nilBuf *bytes.Buffer
	require.True(t, IsBuffer([]byte("a"), false))
	require.True(t, IsBuffer(&bytes.Buffer{}, false))
	require.False(t, IsBuffer(nilBuf, false))
	require.False(t, IsBuffer("a", false))
}

func TestMatchesClass(t *testing.T) {
	now := time.Now()
	require.True(t, MatchesClass(now, `time\.Time`, false))
	require.True(t, MatchesClass(&now, `TIME\.TIME`, false))
	require.False(t, MatchesClass("2024-01-01", `time\.Time`, false))
	require.False(t, MatchesClass(now, `(`, false))
	require.True(t, MatchesClass(&now, `^\*?time\.Time$`, false))
	require.False(t, MatchesClass([]time.Time{now}, `^\*?time\.Time$`, false))
}

func TestAbsence(t *testing.T) {
	var p *int
	var m map[string]int
	require.True(t, IsUndefined(nil))
	require.False(t, IsUndefined(p))
	require.True(t, IsNull(p))
	require.True(t, IsNull(m))
	require.False(t, IsNull(0))
	require.True(t, IsAbsent(p))
	require.False(t, IsAbsent(""))
	require.False(t, IsAbsent(false))
}

func TestTruthy(t *testing.T) {
	require.False(t, Truthy(0))
	require.False(t, Truthy(""))
	require.False(t, Truthy(false))
	require.False(t, Truthy(math.NaN()))
	require.False(t, Truthy(nil))
	require.True(t, Truthy(struct{}{}))
	require.True(t, Truthy([]int{}))
	require.True(t, Truthy("a"))
	require.True(t, Truthy(-1))
}

func TestToFloat(t *testing.T) {
	f, ok := ToFloat(int16(-3))
	require.True(t, ok)
	require.Equal(t, -3.0, f)

	f, ok = ToFloat(decimal.RequireFromString("1.25"))
	require.True(t, ok)
	require.Equal(t, 1.25, f)

	f, ok = ToFloat("1")
	require.False(t, ok)
	require.True(t, math.IsNaN(f))
}

func TestStrictEqual(t *testing.T) {
	require.True(t, StrictEqual(1, 1))
	require.False(t, StrictEqual(1, int64(1)))
	require.False(t, StrictEqual([]int{1}, []int{1}))
	require.True(t, StrictEqual(nil, nil))
	require.True(t, NumericEqual(1, int64(1)))
	require.False(t, NumericEqual(1, "1"))
}

func TestIsHex32(t *testing.T) {
	require.True(t, IsHex32("a4558b56-af55-47e4-9980-28b29e4f81ef"))
	require.True(t, IsHex32("A4558B56AF5547E4998028B29E4F81EF"))
	require.True(t, IsHex32("a4-558b56af5547e4998028b29e4f81ef"))
	require.False(t, IsHex32("not-a-uuid"))
	require.False(t, IsHex32("g4558b56af5547e4998028b29e4f81ef"))
}

func TestMemberAndValueAt(t *testing.T) {
	type inner struct {
		Host string `json:"host"`
		Port int
	}
	doc := map[string]any{
		"server": &inner{Host: "localhost", Port: 8080},
		"items":  []any{"a", map[string]any{"id": 2}},
	}

	v, ok := Member(doc, "server")
	require.True(t, ok)
	host, ok := Member(v, "host")
	require.True(t, ok)
	require.Equal(t, "localhost", host)

	_, ok = Member(v, "Host")
	require.False(t, ok)

	v, ok = ValueAt(doc, "/server/Port")
	require.True(t, ok)
	require.Equal(t, 8080, v)

	v, ok = ValueAt(doc, "/items/1/id")
	require.True(t, ok)
	require.Equal(t, 2, v)

	_, ok = ValueAt(doc, "/items/5")
	require.False(t, ok)
}

func TestValueAt_RejectsOutOfRangeIndexes(t *testing.T) {
	doc := []any{1.0}
	for _, p := range []string{"/9223372036854775808", "/99999999999999999999", "/-1", "/+0", "/1e2"} {
		_, ok := ValueAt(doc, p)
		require.False(t, ok, p)
	}
	v, ok := ValueAt(doc, "/0")
	require.True(t, ok)
	require.Equal(t, 1.0, v)
}

func TestToDecimal(t *testing.T) {
	d, ok := ToDecimal(int64(1<<53 + 1))
	require.True(t, ok)
	require.Equal(t, "9007199254740993", d.String())

	d, ok = ToDecimal(uint64(math.MaxUint64))
	require.True(t, ok)
	require.Equal(t, "18446744073709551615", d.String())

	d, ok = ToDecimal(1.5)
	require.True(t, ok)
	require.True(t, d.Equal(decimal.RequireFromString("1.5")))

	for _, v := range []any{math.NaN(), math.Inf(1), nil, "1", (*decimal.Decimal)(nil)} {
		_, ok := ToDecimal(v)
		require.False(t, ok, "%v", v)
	}
}
