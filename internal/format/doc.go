// Package format holds pure string formatting helpers shared by the CLI:
// durations, ETAs, progress bars and digit grouping. Nothing here performs I/O.
package format
