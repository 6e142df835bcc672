package plan

import (
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	goassert "github.com/reoring/goassert"
	"github.com/reoring/goassert/internal/typecheck"
)

// Report summarizes one plan run.
type Report struct {
	Total    int               `json:"total"`
	Passed   int               `json:"passed"`
	Skipped  int               `json:"skipped"`
	Failed   int               `json:"failed"`
	Failures goassert.Failures `json:"failures,omitempty"`
}

// Err returns the failures as an error, or nil when every assertion passed.
func (r Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return r.Failures
}

// Runner executes plans with a Guard.
type Runner struct {
	g      *goassert.Guard
	logger *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for per-assertion debug output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner returns a Runner reporting through g (goassert.Default() when nil).
func NewRunner(g *goassert.Guard, opts ...Option) *Runner {
	if g == nil {
		g = goassert.Default()
	}
	r := &Runner{g: g, logger: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run applies every assertion of p to doc. Each assertion contributes at most
// one failure: the first check it violates. The returned error is non-nil only
// when p itself is invalid; assertion failures are carried by the Report.
func (r *Runner) Run(p *Plan, doc any) (Report, error) {
	if err := p.Validate(); err != nil {
		return Report{}, err
	}
	var rep Report
	for _, a := range p.Assertions {
		s, _ := compile(a)
		v, found := typecheck.ValueAt(doc, a.Path)
		if !found {
			v = nil
		}
		skipped, err := s(r.g, a.Label(), v, a.Optional)
		rep.Total++
		switch {
		case err != nil:
			rep.Failed++
			rep.Failures = goassert.AppendFailure(rep.Failures, a.Label(), err)
		case skipped:
			rep.Skipped++
		default:
			rep.Passed++
		}
		r.logger.Debug("assertion evaluated",
			zap.String("assertion.name", a.Label()),
			zap.String("assertion.path", a.Path),
			zap.String("assertion.type", a.Type),
			zap.Bool("found", found),
			zap.Bool("skipped", skipped),
			zap.Bool("passed", err == nil),
		)
	}
	return rep, nil
}

// step runs one compiled assertion. It reports whether the assertion was
// skipped as an absent optional value, and its first failure.
type step func(g *goassert.Guard, name string, v any, optional bool) (bool, error)

func compile(a Assertion) (step, error) {
	switch a.Type {
	case "number":
		apply, err := numberChecks(a.Checks)
		if err != nil {
			return nil, err
		}
		return func(g *goassert.Guard, name string, v any, optional bool) (bool, error) {
			var b *goassert.NumberAssert
			if optional {
				b = g.Optional().Number(name, v)
			} else {
				b = g.Number(name, v)
			}
			apply(b)
			return b.Skipped(), b.Err()
		}, nil
	case "string":
		apply, err := stringChecks(a.Checks)
		if err != nil {
			return nil, err
		}
		return func(g *goassert.Guard, name string, v any, optional bool) (bool, error) {
			var b *goassert.StringAssert
			if optional {
				b = g.Optional().String(name, v)
			} else {
				b = g.String(name, v)
			}
			apply(b)
			return b.Skipped(), b.Err()
		}, nil
	case "object":
		apply, err := objectChecks(a.Checks)
		if err != nil {
			return nil, err
		}
		return func(g *goassert.Guard, name string, v any, optional bool) (bool, error) {
			var b *goassert.ObjectAssert
			if optional {
				b = g.Optional().Object(name, v)
			} else {
				b = g.Object(name, v)
			}
			apply(b)
			return b.Skipped(), b.Err()
		}, nil
	case "array":
		apply, err := arrayChecks(a.Checks)
		if err != nil {
			return nil, err
		}
		return func(g *goassert.Guard, name string, v any, optional bool) (bool, error) {
			var b *goassert.ArrayAssert
			if optional {
				b = g.Optional().Array(name, v)
			} else {
				b = g.Array(name, v)
			}
			apply(b)
			return b.Skipped(), b.Err()
		}, nil
	case "date":
		apply, err := dateChecks(a.Checks)
		if err != nil {
			return nil, err
		}
		return func(g *goassert.Guard, name string, v any, optional bool) (bool, error) {
			v = dateValue(v)
			var b *goassert.DateAssert
			if optional {
				b = g.Optional().Date(name, v)
			} else {
				b = g.Date(name, v)
			}
			apply(b)
			return b.Skipped(), b.Err()
		}, nil
	case "bool", "func", "buffer":
		if len(a.Checks) > 0 {
			return nil, fmt.Errorf("type %s takes no checks", a.Type)
		}
		typ := a.Type
		return func(g *goassert.Guard, name string, v any, optional bool) (bool, error) {
			if optional && typecheck.IsAbsent(v) {
				return true, nil
			}
			switch typ {
			case "bool":
				return false, g.Bool(name, v)
			case "func":
				return false, g.Func(name, v)
			default:
				return false, g.Buffer(name, v)
			}
		}, nil
	case "ok", "defined":
		if len(a.Checks) > 0 {
			return nil, fmt.Errorf("type %s takes no checks", a.Type)
		}
		if a.Optional {
			return nil, fmt.Errorf("type %s cannot be optional", a.Type)
		}
		if a.Type == "ok" {
			return func(g *goassert.Guard, name string, v any, _ bool) (bool, error) {
				return false, g.Ok(name, v)
			}, nil
		}
		return func(g *goassert.Guard, name string, v any, _ bool) (bool, error) {
			return false, g.Defined(name, v)
		}, nil
	case "":
		return nil, fmt.Errorf("missing type")
	default:
		return nil, fmt.Errorf("unknown type %q", a.Type)
	}
}

// numberFlags are the number checks that take no arguments.
var numberFlags = map[string]func(*goassert.NumberAssert) *goassert.NumberAssert{
	goassert.OpEven:     (*goassert.NumberAssert).Even,
	goassert.OpOdd:      (*goassert.NumberAssert).Odd,
	goassert.OpFinite:   (*goassert.NumberAssert).Finite,
	goassert.OpInteger:  (*goassert.NumberAssert).Integer,
	goassert.OpFloat:    (*goassert.NumberAssert).Float,
	goassert.OpPositive: (*goassert.NumberAssert).Positive,
	goassert.OpNegative: (*goassert.NumberAssert).Negative,
}

func numberChecks(checks []Check) (func(*goassert.NumberAssert), error) {
	fns := make([]func(*goassert.NumberAssert), 0, len(checks))
	for _, c := range checks {
		var fn func(*goassert.NumberAssert)
		switch c.Op {
		case goassert.OpMin, goassert.OpMax:
			n, err := floatArgs(c, 1)
			if err != nil {
				return nil, err
			}
			if c.Op == goassert.OpMin {
				fn = func(b *goassert.NumberAssert) { b.Min(n[0]) }
			} else {
				fn = func(b *goassert.NumberAssert) { b.Max(n[0]) }
			}
		case goassert.OpRange:
			n, err := floatArgs(c, 2)
			if err != nil {
				return nil, err
			}
			fn = func(b *goassert.NumberAssert) { b.Range(n[0], n[1]) }
		case goassert.OpEqual:
			if err := arity(c, 1); err != nil {
				return nil, err
			}
			fn = func(b *goassert.NumberAssert) { b.Equal(c.Args[0]) }
		case goassert.OpIn:
			// a single list argument, or the candidates inline
			values := c.Args
			if len(c.Args) == 1 && typecheck.IsArray(c.Args[0], false) {
				values = typecheck.Elements(c.Args[0])
			}
			fn = func(b *goassert.NumberAssert) { b.In(values) }
		default:
			simple, ok := numberFlags[c.Op]
			if !ok {
				return nil, unknownOp("number", c.Op)
			}
			if err := arity(c, 0); err != nil {
				return nil, err
			}
			fn = func(b *goassert.NumberAssert) { simple(b) }
		}
		fns = append(fns, fn)
	}
	return func(b *goassert.NumberAssert) {
		for _, fn := range fns {
			fn(b)
		}
	}, nil
}

func stringChecks(checks []Check) (func(*goassert.StringAssert), error) {
	fns := make([]func(*goassert.StringAssert), 0, len(checks))
	for _, c := range checks {
		var fn func(*goassert.StringAssert)
		switch c.Op {
		case goassert.OpMatches:
			s, err := stringArg(c)
			if err != nil {
				return nil, err
			}
			re, err := regexp.Compile(s)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", c.Op, err)
			}
			fn = func(b *goassert.StringAssert) { b.Matches(re) }
		case goassert.OpNotEmpty, goassert.OpNotWhiteSpace, goassert.OpUUID, "guid":
			if err := arity(c, 0); err != nil {
				return nil, err
			}
			switch c.Op {
			case goassert.OpNotEmpty:
				fn = func(b *goassert.StringAssert) { b.NotEmpty() }
			case goassert.OpNotWhiteSpace:
				fn = func(b *goassert.StringAssert) { b.NotWhiteSpace() }
			default:
				fn = func(b *goassert.StringAssert) { b.UUID() }
			}
		default:
			return nil, unknownOp("string", c.Op)
		}
		fns = append(fns, fn)
	}
	return func(b *goassert.StringAssert) {
		for _, fn := range fns {
			fn(b)
		}
	}, nil
}

func objectChecks(checks []Check) (func(*goassert.ObjectAssert), error) {
	fns := make([]func(*goassert.ObjectAssert), 0, len(checks))
	for _, c := range checks {
		s, err := stringArg(c)
		switch c.Op {
		case goassert.OpHasMember:
			if err != nil {
				return nil, err
			}
			fns = append(fns, func(b *goassert.ObjectAssert) { b.HasMember(s) })
		case goassert.OpInstanceOf:
			if err != nil {
				return nil, err
			}
			ref := goassert.TypeName(s)
			fns = append(fns, func(b *goassert.ObjectAssert) { b.InstanceOf(ref) })
		default:
			return nil, unknownOp("object", c.Op)
		}
	}
	return func(b *goassert.ObjectAssert) {
		for _, fn := range fns {
			fn(b)
		}
	}, nil
}

func arrayChecks(checks []Check) (func(*goassert.ArrayAssert), error) {
	fns := make([]func(*goassert.ArrayAssert), 0, len(checks))
	for _, c := range checks {
		switch c.Op {
		case goassert.OpOf:
			s, err := stringArg(c)
			if err != nil {
				return nil, err
			}
			ref := goassert.TypeName(s)
			fns = append(fns, func(b *goassert.ArrayAssert) { b.Of(ref) })
		case goassert.OpContains:
			if err := arity(c, 1); err != nil {
				return nil, err
			}
			el := normalizeValue(c.Args[0])
			fns = append(fns, func(b *goassert.ArrayAssert) { b.Contains(el) })
		default:
			return nil, unknownOp("array", c.Op)
		}
	}
	return func(b *goassert.ArrayAssert) {
		for _, fn := range fns {
			fn(b)
		}
	}, nil
}

func dateChecks(checks []Check) (func(*goassert.DateAssert), error) {
	fns := make([]func(*goassert.DateAssert), 0, len(checks))
	for _, c := range checks {
		var fn func(*goassert.DateAssert)
		switch c.Op {
		case goassert.OpBefore, goassert.OpAfter:
			ts, err := timeArgs(c, 1)
			if err != nil {
				return nil, err
			}
			if c.Op == goassert.OpBefore {
				fn = func(b *goassert.DateAssert) { b.Before(ts[0]) }
			} else {
				fn = func(b *goassert.DateAssert) { b.After(ts[0]) }
			}
		case goassert.OpWithin:
			ts, err := timeArgs(c, 2)
			if err != nil {
				return nil, err
			}
			fn = func(b *goassert.DateAssert) { b.Within(ts[0], ts[1]) }
		case goassert.OpDayOf, goassert.OpYearOf:
			n, err := floatArgs(c, 1)
			if err != nil {
				return nil, err
			}
			v := int(n[0])
			if c.Op == goassert.OpDayOf {
				fn = func(b *goassert.DateAssert) { b.DayOf(v) }
			} else {
				fn = func(b *goassert.DateAssert) { b.YearOf(v) }
			}
		case goassert.OpMonthOf:
			if err := arity(c, 1); err != nil {
				return nil, err
			}
			var ref goassert.MonthRef
			switch m := c.Args[0].(type) {
			case string:
				ref = goassert.MonthName(m)
			default:
				f, ok := typecheck.ToFloat(m)
				if !ok {
					return nil, fmt.Errorf("%s: argument must be a month index or name", c.Op)
				}
				ref = goassert.MonthIndex(int(f))
			}
			fn = func(b *goassert.DateAssert) { b.MonthOf(ref) }
		default:
			return nil, unknownOp("date", c.Op)
		}
		fns = append(fns, fn)
	}
	return func(b *goassert.DateAssert) {
		for _, fn := range fns {
			fn(b)
		}
	}, nil
}

// dateValue turns RFC 3339 strings from a values document into time.Time.
// Anything else is returned unchanged and left to the type check.
func dateValue(v any) any {
	if s, ok := v.(string); ok {
		if t, err := parseRFC3339(s); err == nil {
			return t
		}
	}
	return v
}

func arity(c Check, n int) error {
	if len(c.Args) != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", c.Op, n, len(c.Args))
	}
	return nil
}

func floatArgs(c Check, n int) ([]float64, error) {
	if err := arity(c, n); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i, a := range c.Args {
		f, ok := typecheck.ToFloat(a)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d must be a number", c.Op, i)
		}
		out[i] = f
	}
	return out, nil
}

func stringArg(c Check) (string, error) {
	if err := arity(c, 1); err != nil {
		return "", err
	}
	s, ok := c.Args[0].(string)
	if !ok {
		return "", fmt.Errorf("%s: argument must be a string", c.Op)
	}
	return s, nil
}

func timeArgs(c Check, n int) ([]time.Time, error) {
	if err := arity(c, n); err != nil {
		return nil, err
	}
	out := make([]time.Time, n)
	for i, a := range c.Args {
		switch t := a.(type) {
		case time.Time:
			out[i] = t
		case string:
			parsed, err := parseRFC3339(t)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", c.Op, i, err)
			}
			out[i] = parsed
		default:
			return nil, fmt.Errorf("%s: argument %d must be an RFC 3339 timestamp", c.Op, i)
		}
	}
	return out, nil
}

func unknownOp(typ, op string) error {
	if op == "" {
		return fmt.Errorf("%s: missing op", typ)
	}
	return fmt.Errorf("%s: unknown op %q", typ, op)
}
