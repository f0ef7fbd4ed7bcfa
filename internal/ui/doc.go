// Package ui provides the color themes and lipgloss styles used for
// diagnostics on stderr. The report on stdout is never styled.
package ui
