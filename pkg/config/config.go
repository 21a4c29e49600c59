package config

import (
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the complete uievent configuration
type Config struct {
	Output    Output    `koanf:"output"`
	Logging   Logging   `koanf:"logging"`
	Scenarios Scenarios `koanf:"scenarios"`
	Tracing   Tracing   `koanf:"tracing"`

	// Source is the user file that was loaded, empty if none
	Source string `koanf:"-"`
}

// Output controls report rendering
type Output struct {
	Format  string `koanf:"format"`
	NoColor bool   `koanf:"no_color"`
	Width   int    `koanf:"width"`
}

// Logging controls the global logger
type Logging struct {
	Verbosity int `koanf:"verbosity"`
}

// Scenarios controls scenario lookup and execution
type Scenarios struct {
	Paths         []string `koanf:"paths"`
	StopOnFailure bool     `koanf:"stop_on_failure"`
}

// Tracing controls the OpenTelemetry exporter
type Tracing struct {
	Enabled         bool          `koanf:"enabled"`
	Endpoint        string        `koanf:"endpoint"`
	ServiceName     string        `koanf:"service_name"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// TOML renders the effective configuration in the user file syntax
func (c *Config) TOML() ([]byte, error) {
	paths := c.Scenarios.Paths
	if paths == nil {
		paths = []string{}
	}
	return toml.Marshal(map[string]interface{}{
		"output": map[string]interface{}{
			"format":   c.Output.Format,
			"no_color": c.Output.NoColor,
			"width":    c.Output.Width,
		},
		"logging": map[string]interface{}{
			"verbosity": c.Logging.Verbosity,
		},
		"scenarios": map[string]interface{}{
			"paths":           paths,
			"stop_on_failure": c.Scenarios.StopOnFailure,
		},
		"tracing": map[string]interface{}{
			"enabled":          c.Tracing.Enabled,
			"endpoint":         c.Tracing.Endpoint,
			"service_name":     c.Tracing.ServiceName,
			"shutdown_timeout": c.Tracing.ShutdownTimeout.String(),
		},
	})
}
