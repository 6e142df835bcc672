// Package plan runs declarative assertion plans against data documents.
//
// A plan lists named assertions. Each one selects a value from the document by
// JSON Pointer, asserts its base type and applies refinement checks in order:
//
//	assertions:
//	  - name: port
//	    path: /server/port
//	    type: number
//	    checks:
//	      - {op: integer}
//	      - {op: range, args: [1, 65535]}
//	  - path: /server/tags
//	    type: array
//	    optional: true
//	    checks:
//	      - {op: of, args: [string]}
//
// Plans and documents may be written in YAML or JSON.
package plan

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a plan or values document.
type Format int

const (
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

// ErrInvalidPlan is wrapped by every plan validation error.
var ErrInvalidPlan = errors.New("invalid plan")

// Plan is an ordered list of assertions.
type Plan struct {
	Assertions []Assertion `json:"assertions" yaml:"assertions"`
}

// Assertion selects one value and checks it.
type Assertion struct {
	// Name labels the value in failure messages. Defaults to Path.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Path is a JSON Pointer into the values document; "" selects the root.
	Path string `json:"path" yaml:"path"`
	// Type is one of number, string, object, array, date, bool, func, buffer,
	// ok or defined.
	Type     string  `json:"type" yaml:"type"`
	Optional bool    `json:"optional,omitempty" yaml:"optional,omitempty"`
	Checks   []Check `json:"checks,omitempty" yaml:"checks,omitempty"`
}

// Label returns Name, or Path when Name is empty.
func (a Assertion) Label() string {
	if a.Name != "" {
		return a.Name
	}
	if a.Path == "" {
		return "/"
	}
	return a.Path
}

// Check is one refinement with its arguments.
type Check struct {
	Op   string `json:"op" yaml:"op"`
	Args []any  `json:"args,omitempty" yaml:"args,omitempty"`
}

// DetectFormat picks a format from the file extension, falling back to the
// first non-blank byte of data.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes a plan. Unknown fields are rejected. The plan is validated
// before it is returned.
func Parse(data []byte, format Format) (*Plan, error) {
	if format == FormatAuto {
		format = DetectFormat("", data)
	}
	var p Plan
	switch format {
	case FormatJSON:
		dec := j.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode plan json: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode plan yaml: %w", err)
		}
	}
	for i := range p.Assertions {
		for k := range p.Assertions[i].Checks {
			args := p.Assertions[i].Checks[k].Args
			for n := range args {
				args[n] = normalizeValue(args[n])
			}
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and parses the plan at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	return Parse(data, DetectFormat(path, data))
}

// Validate reports the first assertion with an unknown type, an unknown
// operation or bad arguments.
func (p *Plan) Validate() error {
	if p == nil || len(p.Assertions) == 0 {
		return fmt.Errorf("%w: no assertions", ErrInvalidPlan)
	}
	for i, a := range p.Assertions {
		if _, err := compile(a); err != nil {
			return fmt.Errorf("%w: assertions[%d] (%s): %v", ErrInvalidPlan, i, a.Label(), err)
		}
	}
	return nil
}
