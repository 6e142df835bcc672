package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	j "github.com/goccy/go-json"
	"github.com/zoobzio/metricz"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	goassert "github.com/reoring/goassert"
	"github.com/reoring/goassert/i18n"
	"github.com/reoring/goassert/plan"
)

const (
	exitOK       = 0
	exitFailures = 1
	exitUsage    = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "goassert CLI\n\nUsage:\n  goassert check -plan plan.yaml -values values.json [-production] [-lang en|ja] [-v]\n\nNotes:\n  - Prints a JSON report on stdout.\n  - Exits 1 when an assertion fails, 2 on usage errors.")
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "check":
		return checkCmd(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return exitOK
	default:
		usage(stderr)
		return exitUsage
	}
}

// checkReport is the JSON document printed by check.
type checkReport struct {
	Mode     string            `json:"mode"`
	Total    int               `json:"total"`
	Passed   int               `json:"passed"`
	Skipped  int               `json:"skipped"`
	Failed   int               `json:"failed"`
	Failures goassert.Failures `json:"failures,omitempty"`
	Metrics  map[string]int    `json:"metrics,omitempty"`
}

func checkCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var planPath, valuesPath, lang string
	var production, verbose bool
	fs.StringVar(&planPath, "plan", "", "assertion plan (YAML or JSON)")
	fs.StringVar(&valuesPath, "values", "", "values document (YAML or JSON)")
	fs.BoolVar(&production, "production", false, "skip base type checks")
	fs.StringVar(&lang, "lang", "en", "message language (en|ja)")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if planPath == "" || valuesPath == "" {
		fs.Usage()
		return exitUsage
	}
	if lang != "en" && lang != "ja" {
		fmt.Fprintf(stderr, "unsupported language %q\n", lang)
		return exitUsage
	}

	logger := newLogger(stderr, verbose)
	defer func() { _ = logger.Sync() }()
	i18n.SetLanguage(lang)
	defer i18n.SetLanguage("en")

	p, err := plan.Load(planPath)
	if err != nil {
		return fatalf(stderr, "load plan: %v", err)
	}
	values, err := plan.LoadValues(valuesPath)
	if err != nil {
		return fatalf(stderr, "load values: %v", err)
	}

	mode := goassert.ModeFromEnv()
	if production {
		mode = goassert.ModeProduction
	}
	reg := metricz.New()
	g := goassert.New(goassert.Config{Mode: mode, Logger: logger, Metrics: reg})
	logger.Debug("running plan",
		zap.String("plan", planPath),
		zap.String("values", valuesPath),
		zap.Stringer("mode", mode),
		zap.Int("assertions", len(p.Assertions)),
	)

	rep, err := plan.NewRunner(g, plan.WithLogger(logger)).Run(p, values)
	if err != nil {
		return fatalf(stderr, "run plan: %v", err)
	}

	out := checkReport{
		Mode:     mode.String(),
		Total:    rep.Total,
		Passed:   rep.Passed,
		Skipped:  rep.Skipped,
		Failed:   rep.Failed,
		Failures: rep.Failures,
	}
	if rep.Failed > 0 {
		out.Metrics = failureCounts(reg, rep.Failures)
	}
	b, err := j.MarshalIndent(out, "", "  ")
	if err != nil {
		return fatalf(stderr, "encode report: %v", err)
	}
	fmt.Fprintln(stdout, string(b))

	if rep.Failed > 0 {
		return exitFailures
	}
	return exitOK
}

// failureCounts reads the per-operation failure counters for the operations
// present in fs.
func failureCounts(reg *metricz.Registry, fs goassert.Failures) map[string]int {
	counts := map[string]int{string(goassert.FailedTotal): int(reg.Counter(goassert.FailedTotal).Value())}
	for _, f := range fs {
		key := goassert.FailedKey(f.Operation)
		counts[string(key)] = int(reg.Counter(key).Value())
	}
	return counts
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	encCfg := zap.NewProductionEncoderConfig()
	if verbose {
		level = zapcore.DebugLevel
		encCfg = zap.NewDevelopmentEncoderConfig()
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

func fatalf(w io.Writer, format string, a ...any) int {
	fmt.Fprintf(w, format+"\n", a...)
	return exitFailures
}
