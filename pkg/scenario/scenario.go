// Package scenario describes event registry behaviour as data and checks it.
//
// A scenario is a named list of steps (add, delete, block, unblock,
// invalidate, fire, free) replayed against a fresh event registry once per
// variant. Fire steps state which handlers must run; the runner also checks
// that every running handler saw the fired sender and args, that the total
// run count matches, and that each registered handler reports the expected
// block state.
//
// Scenarios are written in YAML or TOML. The reference suite ships embedded,
// see Builtin.
package scenario

// Step operations
const (
	OpAdd        = "add"
	OpDelete     = "delete"
	OpBlock      = "block"
	OpUnblock    = "unblock"
	OpInvalidate = "invalidate"
	OpFire       = "fire"
	OpFree       = "free"
)

// DefaultSender is the sender name used on non-global variants when a step
// leaves the sender out
const DefaultSender = "default"

// NullSender names the null sender explicitly, so scenarios can exercise
// the contract checks that reject it on non-global events
const NullSender = "null"

// Scenario is one parsed scenario file
type Scenario struct {
	Name        string    `yaml:"name" toml:"name" json:"name"`
	Description string    `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Variants    []Variant `yaml:"variants,omitempty" toml:"variants,omitempty" json:"variants,omitempty"`
	Steps       []Step    `yaml:"steps" toml:"steps" json:"steps"`

	// Source is where the scenario was loaded from
	Source string `yaml:"-" toml:"-" json:"source,omitempty"`
}

// Variant is one parameterisation a scenario is run under
type Variant struct {
	Name   string `yaml:"name" toml:"name" json:"name"`
	Global bool   `yaml:"global" toml:"global" json:"global"`
	// Args selects whether fires carry an args value or nil
	Args bool `yaml:"args" toml:"args" json:"args"`
}

// Step is one operation against the registry
type Step struct {
	Op      string `yaml:"op" toml:"op" json:"op"`
	Label   string `yaml:"label,omitempty" toml:"label,omitempty" json:"label,omitempty"`
	Handler string `yaml:"handler,omitempty" toml:"handler,omitempty" json:"handler,omitempty"`
	Sender  string `yaml:"sender,omitempty" toml:"sender,omitempty" json:"sender,omitempty"`

	// Run lists the handlers a fire step expects to run, in dispatch order
	Run []string `yaml:"run,omitempty" toml:"run,omitempty" json:"run,omitempty"`
	// Blocked lists the registered handlers expected to report blocked
	Blocked []string `yaml:"blocked,omitempty" toml:"blocked,omitempty" json:"blocked,omitempty"`
	// Count overrides the expected number of handler runs (default len(Run))
	Count *int `yaml:"count,omitempty" toml:"count,omitempty" json:"count,omitempty"`

	// ExpectError asserts that the step fails with this error code
	ExpectError string `yaml:"expect_error,omitempty" toml:"expect_error,omitempty" json:"expect_error,omitempty"`
}

// Describe returns the step's label, or a generated one
func (s Step) Describe() string {
	if s.Label != "" {
		return s.Label
	}
	switch {
	case s.Handler != "":
		return s.Op + " " + s.Handler
	case s.Sender != "":
		return s.Op + " " + s.Sender
	default:
		return s.Op
	}
}

// WantCount returns the number of handler runs a fire step expects
func (s Step) WantCount() int {
	if s.Count != nil {
		return *s.Count
	}
	return len(s.Run)
}

// EffectiveVariants returns the scenario's variants, or the single default
// variant when none are declared
func (sc *Scenario) EffectiveVariants() []Variant {
	if len(sc.Variants) == 0 {
		return []Variant{{Name: "default", Global: false, Args: true}}
	}
	return sc.Variants
}

// HandlerNames returns every handler name added by the scenario, in order
// of first appearance
func (sc *Scenario) HandlerNames() []string {
	var names []string
	seen := map[string]bool{}
	for _, s := range sc.Steps {
		if s.Op == OpAdd && s.Handler != "" && !seen[s.Handler] {
			seen[s.Handler] = true
			names = append(names, s.Handler)
		}
	}
	return names
}
