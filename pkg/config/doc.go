// Package config loads uievent configuration.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/uievent/config.toml, or an explicit path
//  3. environment variables, UIEVENT_<SECTION>_<KEY>
//  4. overrides supplied by the caller, usually command-line flags
package config
