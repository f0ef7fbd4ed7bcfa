// Package logging provides a unified logging interface for numreport.
// It abstracts the underlying logging implementation (zerolog by default,
// the standard library logger as a fallback) so that the reporter, the worker
// and the application log through the same typed fields.
package logging
