// Package testutil builds throwaway configme projects for tests: a
// templates, settings and output root on either an in-memory or a real
// temporary filesystem, plus a filesystem wrapper for injecting failures.
package testutil
