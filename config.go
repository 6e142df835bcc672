package goassert

import (
	"os"
	"strings"

	"github.com/zoobzio/metricz"
	"go.uber.org/zap"
)

// Mode selects how strictly base types are checked.
type Mode int

const (
	ModeDebug      Mode = iota // All checks run.
	ModeProduction             // Type predicates pass unconditionally; refinements still run.
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	if m == ModeProduction {
		return "production"
	}
	return "debug"
}

// Config bundles Guard options.
type Config struct {
	Mode    Mode
	Logger  *zap.Logger       // Failures are logged at warn level. Nil disables logging.
	Metrics *metricz.Registry // Optional failure counters.
}

// Metric keys incremented on failure when Config.Metrics is set.
const (
	FailedTotal = metricz.Key("assert.failed.total")
)

// FailedKey returns the per-operation failure counter key.
func FailedKey(op string) metricz.Key { return metricz.Key("assert.failed." + op) }

// envKeys are consulted in order by ModeFromEnv.
var envKeys = []string{"GOASSERT_ENV", "GO_ENV", "ENV"}

// ModeFromEnv reports ModeProduction when the first non-empty of GOASSERT_ENV,
// GO_ENV or ENV equals "production" (case-insensitive).
func ModeFromEnv() Mode {
	for _, k := range envKeys {
		v := strings.TrimSpace(os.Getenv(k))
		if v == "" {
			continue
		}
		if strings.EqualFold(v, "production") {
			return ModeProduction
		}
		return ModeDebug
	}
	return ModeDebug
}
