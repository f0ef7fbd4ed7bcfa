// Package cli renders everything numreport writes to stderr besides logs:
// the progress spinner, the execution configuration and the completion
// summary.
//
// Display* functions write to an [io.Writer]. Format* functions return a
// string and perform no I/O.
package cli
