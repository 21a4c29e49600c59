package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/uievent/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a scenario file syntax
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the syntax from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unsupported scenario file extension: %s", path).
			WithDetail("path", path)
	}
}

// Load reads, parses and validates a scenario file
func Load(path string) (*Scenario, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read scenario %s", path).
			WithDetail("path", path)
	}

	sc, err := Parse(data, format)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.WithDetail("path", path)
		}
		return nil, err
	}
	sc.Source = path
	return sc, nil
}

// Parse decodes a scenario in the given syntax and validates it.
// Unknown keys are rejected.
func Parse(data []byte, format Format) (*Scenario, error) {
	var sc Scenario

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			return nil, errors.Wrap(err, errors.ErrScenarioParse, "invalid YAML scenario")
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sc); err != nil {
			return nil, errors.Wrap(err, errors.ErrScenarioParse, "invalid TOML scenario")
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown scenario format %q", format)
	}

	if err := Validate(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks a scenario for structural mistakes that would make every
// run fail for reasons unrelated to the registry
func Validate(sc *Scenario) error {
	var problems []string
	addf := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if sc.Name == "" {
		addf("scenario name is required")
	}
	if len(sc.Steps) == 0 {
		addf("scenario has no steps")
	}

	variantNames := map[string]bool{}
	for i, v := range sc.Variants {
		if v.Name == "" {
			addf("variant %d: name is required", i+1)
			continue
		}
		if variantNames[v.Name] {
			addf("variant %d: duplicate name %q", i+1, v.Name)
		}
		variantNames[v.Name] = true
	}

	added := map[string]bool{}
	for _, name := range sc.HandlerNames() {
		added[name] = true
	}
	checkKnown := func(i int, field string, names []string) {
		for _, name := range names {
			if !added[name] {
				addf("step %d: %s references handler %q that is never added", i+1, field, name)
			}
		}
	}

	for i, s := range sc.Steps {
		if !operations.Has(s.Op) {
			addf("step %d: unknown op %q", i+1, s.Op)
			continue
		}
		switch s.Op {
		case OpAdd, OpDelete, OpBlock, OpUnblock:
			if s.Handler == "" {
				addf("step %d: %s requires a handler", i+1, s.Op)
			}
		case OpInvalidate:
			if s.Sender == "" {
				addf("step %d: invalidate requires a sender", i+1)
			}
		case OpFire:
			checkKnown(i, "run", s.Run)
			checkKnown(i, "blocked", s.Blocked)
			if s.Count != nil && *s.Count < 0 {
				addf("step %d: count cannot be negative", i+1)
			}
		}
		if s.Op != OpFire && (len(s.Run) > 0 || len(s.Blocked) > 0 || s.Count != nil) {
			addf("step %d: run, blocked and count only apply to fire steps", i+1)
		}
	}

	if len(problems) > 0 {
		return errors.Newf(errors.ErrScenarioInvalid, "scenario %q is invalid: %s", sc.Name, strings.Join(problems, "; ")).
			WithDetail("problems", problems)
	}
	return nil
}
