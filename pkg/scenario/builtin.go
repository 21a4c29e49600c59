package scenario

import (
	"embed"
	"io/fs"
	"path"
	"strings"

	"github.com/arthur-debert/uievent/pkg/errors"
	"github.com/arthur-debert/uievent/pkg/registry"
)

//go:embed builtin/*.yaml builtin/*.toml
var builtinFS embed.FS

// Builtin is an embedded scenario together with the text it was parsed from
type Builtin struct {
	Scenario *Scenario
	Format   Format
	Raw      []byte
}

var builtins = registry.New[Builtin]()

func init() {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		file := path.Join("builtin", e.Name())
		format, err := FormatFromPath(file)
		if err != nil {
			panic(err)
		}
		raw, err := builtinFS.ReadFile(file)
		if err != nil {
			panic(err)
		}
		sc, err := Parse(raw, format)
		if err != nil {
			panic(errors.Wrapf(err, errors.ErrInternal, "builtin scenario %s does not parse", file))
		}
		sc.Source = "builtin:" + e.Name()
		registry.MustRegister(builtins, sc.Name, Builtin{Scenario: sc, Format: format, Raw: raw},
			registry.WithDoc(strings.TrimSpace(sc.Description)))
	}
}

// Builtins returns the embedded reference suite sorted by name
func Builtins() []*Scenario {
	var out []*Scenario
	for _, e := range builtins.Entries() {
		out = append(out, e.Item.Scenario)
	}
	return out
}

// LookupBuiltin returns the embedded scenario with the given name
func LookupBuiltin(name string) (Builtin, error) {
	b, err := builtins.Get(name)
	if err != nil {
		return Builtin{}, errors.Wrapf(err, errors.ErrNotFound, "no builtin scenario named %q", name).
			WithDetail("available", builtins.List())
	}
	return b, nil
}

// BuiltinNames lists the embedded scenario names
func BuiltinNames() []string {
	return builtins.List()
}
