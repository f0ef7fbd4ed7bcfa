// Package config parses the numreport command line, environment and optional
// YAML file into an AppConfig.
//
// Resolution order, highest priority first:
//  1. command-line flags
//  2. NUMREPORT_* environment variables
//  3. the YAML configuration file
//  4. built-in defaults
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/numreport/internal/errors"
)

const (
	// EnvPrefix prefixes every environment variable read by numreport.
	EnvPrefix = "NUMREPORT_"

	// DefaultN and DefaultM are the example values the reporter has always
	// been launched with.
	DefaultN = 5
	DefaultM = 10

	// DefaultAlgo is the summation strategy used when none is selected.
	DefaultAlgo = "gauss"

	// DefaultTimeout bounds a whole report run.
	DefaultTimeout = 1 * time.Minute
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is how many natural numbers are printed.
	N int64
	// M is how many natural numbers are summed.
	M int64
	// Algo names the summation strategy, or "all" to cross-check every one.
	Algo string
	// Timeout bounds the report run.
	Timeout time.Duration
	// Detach launches the reporter without waiting for it, so the process may
	// exit before the report is written.
	Detach bool
	// Quiet suppresses the spinner and completion summary.
	Quiet bool
	// Verbose enables debug logging and a runtime summary.
	Verbose bool
	// NoColor disables colors in diagnostics.
	NoColor bool
	// Metrics dumps the metrics registry to stderr after the run.
	Metrics bool
	// ConfigFile is an explicit YAML configuration path.
	ConfigFile string
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() AppConfig {
	return AppConfig{
		N:       DefaultN,
		M:       DefaultM,
		Algo:    DefaultAlgo,
		Timeout: DefaultTimeout,
	}
}

// ParseConfig parses args (without the program name) into an AppConfig,
// layering the configuration file and environment under explicit flags.
// Usage and flag errors are written to errWriter. flag.ErrHelp is returned
// unchanged when -h or --help is given.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	config := Defaults()
	fs.Int64Var(&config.N, "n", config.N, "Number of natural numbers to print.")
	fs.Int64Var(&config.M, "m", config.M, "Number of natural numbers to sum.")
	fs.StringVar(&config.Algo, "algo", config.Algo,
		fmt.Sprintf("Summation strategy: %s or all.", strings.Join(availableAlgos, ", ")))
	fs.DurationVar(&config.Timeout, "timeout", config.Timeout, "Maximum duration of the report (e.g., 10s, 1m).")
	fs.BoolVar(&config.Detach, "detach", false, "Start the reporter and exit without waiting for it.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode: print only the report.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logging.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colors in diagnostics.")
	fs.BoolVar(&config.Metrics, "metrics", false, "Write collected metrics to stderr after the run.")
	fs.StringVar(&config.ConfigFile, "config", "", "Path to a YAML configuration file.")
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\nPrints the first n natural numbers and the sum of the first m.\n\nFlags:\n", programName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	fail := func(err error) (AppConfig, error) {
		fmt.Fprintf(errWriter, "Configuration error: %v\n", err)
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return fail(apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " ")))
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", "")
	}
	path, err := FindConfigFile(config.ConfigFile)
	if err != nil {
		return fail(err)
	}
	if path != "" {
		file, err := LoadConfigFile(path)
		if err != nil {
			return fail(err)
		}
		if err := applyFile(&config, file, fs); err != nil {
			return fail(err)
		}
		config.ConfigFile = path
	}

	applyEnvOverrides(&config, fs)

	if err := config.Validate(availableAlgos); err != nil {
		return fail(err)
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.N < 0 {
		return apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("must be non-negative, got %d", c.N)}
	}
	if c.M < 0 {
		return apperrors.ValidationError{Field: "m", Message: fmt.Sprintf("must be non-negative, got %d", c.M)}
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.ValidationError{Field: "algo", Message: fmt.Sprintf("unknown strategy %q", c.Algo)}
	}
	return nil
}
