// Package filesystem provides filesystem implementations for configme.
//
// Everything that touches disk goes through the FS interface so the
// pipeline can run against the real OS filesystem or an afero in-memory
// filesystem in tests.
package filesystem
