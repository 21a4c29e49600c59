package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/uievent/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlScenario = `
name: two-senders
description: scoped dispatch
variants:
  - {name: args, global: false, args: true}
steps:
  - {op: add, handler: a, sender: s1}
  - {op: add, handler: b, sender: s2}
  - {op: fire, sender: s1, run: [a]}
  - {op: fire, sender: s2, run: [b], count: 1}
`

const tomlScenario = `
name = "two-senders"

[[steps]]
op = "add"
handler = "a"
sender = "s1"

[[steps]]
op = "fire"
sender = "s1"
run = ["a"]
`

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.yaml", FormatYAML, false},
		{"dir/a.YML", FormatYAML, false},
		{"a.toml", FormatTOML, false},
		{"a.json", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_YAML(t *testing.T) {
	sc, err := Parse([]byte(yamlScenario), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "two-senders", sc.Name)
	assert.Equal(t, "scoped dispatch", sc.Description)
	require.Len(t, sc.Variants, 1)
	assert.Equal(t, Variant{Name: "args", Global: false, Args: true}, sc.Variants[0])
	require.Len(t, sc.Steps, 4)
	assert.Equal(t, []string{"a"}, sc.Steps[2].Run)
	require.NotNil(t, sc.Steps[3].Count)
	assert.Equal(t, 1, *sc.Steps[3].Count)
	assert.Equal(t, []string{"a", "b"}, sc.HandlerNames())
}

func TestParse_TOML(t *testing.T) {
	sc, err := Parse([]byte(tomlScenario), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "two-senders", sc.Name)
	assert.Empty(t, sc.Variants)
	assert.Equal(t, []Variant{{Name: "default", Global: false, Args: true}}, sc.EffectiveVariants())
	require.Len(t, sc.Steps, 2)
	assert.Equal(t, Step{Op: OpFire, Sender: "s1", Run: []string{"a"}}, sc.Steps[1])
}

func TestParse_UnknownFieldsRejected(t *testing.T) {
	_, err := Parse([]byte("name: x\nsteps:\n  - {op: fire, runs: [a]}\n"), FormatYAML)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScenarioParse))

	_, err = Parse([]byte("name = \"x\"\nbogus = 1\n"), FormatTOML)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScenarioParse))
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := Parse([]byte("{}"), Format("json"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestValidate(t *testing.T) {
	count := -1
	tests := []struct {
		name    string
		sc      Scenario
		problem string
	}{
		{
			name:    "missing name",
			sc:      Scenario{Steps: []Step{{Op: OpFire}}},
			problem: "scenario name is required",
		},
		{
			name:    "no steps",
			sc:      Scenario{Name: "x"},
			problem: "scenario has no steps",
		},
		{
			name:    "unknown op",
			sc:      Scenario{Name: "x", Steps: []Step{{Op: "emit"}}},
			problem: `step 1: unknown op "emit"`,
		},
		{
			name:    "add without handler",
			sc:      Scenario{Name: "x", Steps: []Step{{Op: OpAdd}}},
			problem: "step 1: add requires a handler",
		},
		{
			name:    "invalidate without sender",
			sc:      Scenario{Name: "x", Steps: []Step{{Op: OpInvalidate}}},
			problem: "step 1: invalidate requires a sender",
		},
		{
			name:    "fire names a handler never added",
			sc:      Scenario{Name: "x", Steps: []Step{{Op: OpFire, Run: []string{"ghost"}}}},
			problem: `step 1: run references handler "ghost" that is never added`,
		},
		{
			name:    "negative count",
			sc:      Scenario{Name: "x", Steps: []Step{{Op: OpFire, Count: &count}}},
			problem: "step 1: count cannot be negative",
		},
		{
			name: "expectations on a non-fire step",
			sc: Scenario{Name: "x", Steps: []Step{
				{Op: OpAdd, Handler: "a", Run: []string{"a"}},
			}},
			problem: "step 1: run, blocked and count only apply to fire steps",
		},
		{
			name: "duplicate variant",
			sc: Scenario{Name: "x", Steps: []Step{{Op: OpFire}}, Variants: []Variant{
				{Name: "v"}, {Name: "v"},
			}},
			problem: `variant 2: duplicate name "v"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.sc)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrScenarioInvalid))
			problems, ok := errors.GetErrorDetails(err)["problems"].([]string)
			require.True(t, ok)
			assert.Contains(t, problems, tt.problem)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "scoped.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlScenario), 0644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, sc.Source)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: [\n"), 0644))
	_, err = Load(bad)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScenarioParse))
	assert.Equal(t, bad, errors.GetErrorDetails(err)["path"])
}
