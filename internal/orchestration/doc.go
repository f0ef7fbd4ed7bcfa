// Package orchestration selects the summation strategy for a report and,
// when asked for every strategy at once, runs them concurrently and
// cross-checks their results before a single value is reported.
package orchestration
