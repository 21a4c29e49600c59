// Package registry provides a generic, type-safe registry of named items.
// It backs the scenario step operations and the builtin scenario catalog,
// both of which are populated from init() functions.
package registry
