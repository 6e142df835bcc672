// Package goassert provides runtime assertions for guarding function inputs at
// module boundaries.
//
// A check names the value under test, verifies its base type, and exposes
// chainable refinements for that type family:
//
//	err := goassert.Number("age", age).Range(0, 120).Integer().Err()
//	err := goassert.String("id", id).NotWhiteSpace().UUID().Err()
//	err := goassert.Array("tags", tags).Of(goassert.TypeName("string")).Err()
//	err := goassert.Date("due", due).After(time.Now()).Err()
//
// The first violated check is kept on the builder and every later refinement
// becomes a no-op. Err returns it as an *AssertionError carrying the subject
// name, a human message, the actual and expected values, and an operation tag
// ("range", "uuid", ...) for programmatic matching. Every failure matches
// ErrAssertionFailed with errors.Is.
//
// Optional values skip all checks when absent (untyped nil or typed nil):
//
//	err := goassert.Optional().Number("limit", limit).Min(1).Err()
//
// Optional returns a short-lived handle, so optionality never carries over to
// the next assertion.
//
// Guards are configured explicitly:
//
//	g := goassert.New(goassert.Config{Mode: goassert.ModeProduction, Logger: logger})
//
// In ModeProduction base-type predicates always pass and only structural
// refinements (Min, Range, NotEmpty, ...) run. The top-level functions use a
// default Guard whose mode comes from ModeFromEnv.
//
// Design policy:
// - Keep the public API in the root package; predicates live under internal/.
// - Messages come from the i18n catalogue; plans and the CLI live under plan/ and cmd/goassert.
package goassert
