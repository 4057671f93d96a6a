// Package registry provides a generic, type-safe registry of named items.
// configme registers its template engines and manifest encoders here
// from init() functions.
package registry
