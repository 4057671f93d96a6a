// Package output prints the results of a generation run: the manifest of
// written files in one of several formats, and styled error messages.
package output
