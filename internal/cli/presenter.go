package cli

import (
	"fmt"
	"io"
	"math/big"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/numreport/internal/config"
	"github.com/agbru/numreport/internal/format"
	"github.com/agbru/numreport/internal/metrics"
	"github.com/agbru/numreport/internal/sysmon"
	"github.com/agbru/numreport/internal/ui"
)

// ReportSummary describes a finished report run for the completion box.
type ReportSummary struct {
	Strategy string
	N, M     int64
	Sum      *big.Int
	Duration time.Duration
	Err      error
}

// DisplayExecutionConfig writes the effective configuration to out.
func DisplayExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Printing %s%d%s numbers and summing %s%d%s with strategy %s%s%s, timeout %s%s%s.\n",
		ui.ColorBlue(), cfg.N, ui.ColorReset(),
		ui.ColorBlue(), cfg.M, ui.ColorReset(),
		ui.ColorGreen(), cfg.Algo, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorGrey(), runtime.NumCPU(), ui.ColorReset(), ui.ColorGrey(), runtime.Version(), ui.ColorReset())
	if cfg.ConfigFile != "" {
		fmt.Fprintf(out, "Configuration file: %s\n", cfg.ConfigFile)
	}
}

// FormatSummary renders the completion box for s.
func FormatSummary(s ReportSummary, styles ui.Styles) string {
	status := styles.OK.Render("success")
	if s.Err != nil {
		status = styles.Fail.Render(fmt.Sprintf("failed (%v)", s.Err))
	}
	sum := "-"
	if s.Sum != nil {
		sum = format.FormatNumberString(s.Sum.String())
	}

	rows := [][2]string{
		{"strategy", s.Strategy},
		{"printed", fmt.Sprintf("1..%d", s.N)},
		{"sum(1..m)", fmt.Sprintf("m=%d -> %s", s.M, sum)},
		{"duration", format.FormatExecutionDuration(s.Duration)},
		{"status", status},
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, styles.Title.Render("Report summary"))
	for _, r := range rows {
		lines = append(lines, styles.Label.Render(fmt.Sprintf("%-10s", r[0]))+" "+styles.Value.Render(r[1]))
	}
	return styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// DisplaySummary writes the completion box for s to out.
func DisplaySummary(s ReportSummary, out io.Writer) {
	fmt.Fprintln(out, FormatSummary(s, ui.CurrentStyles()))
}

// DisplayRuntime writes the Go runtime and host snapshots taken after the run.
func DisplayRuntime(snap metrics.RuntimeSnapshot, host sysmon.Stats, out io.Writer) {
	var b strings.Builder
	fmt.Fprintf(&b, "\nRuntime Stats:\n")
	fmt.Fprintf(&b, "  Heap in use:  %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(&b, "  From OS:      %s\n", format.FormatBytes(snap.Sys))
	fmt.Fprintf(&b, "  GC cycles:    %d\n", snap.NumGC)
	fmt.Fprintf(&b, "  Goroutines:   %d\n", snap.Goroutines)
	if host.ProcessRSS > 0 {
		fmt.Fprintf(&b, "  Process RSS:  %s\n", format.FormatBytes(host.ProcessRSS))
	}
	fmt.Fprintf(&b, "  Host CPU:     %.1f%% of %d logical CPUs\n", host.CPUPercent, host.LogicalCPU)
	fmt.Fprintf(&b, "  Host memory:  %.1f%% used\n", host.MemPercent)
	io.WriteString(out, b.String())
}
