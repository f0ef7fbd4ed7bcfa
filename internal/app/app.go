package app

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/numreport/internal/config"
	"github.com/agbru/numreport/internal/logging"
	"github.com/agbru/numreport/internal/metrics"
	"github.com/agbru/numreport/internal/naturals"
	"github.com/agbru/numreport/internal/ui"
	"github.com/agbru/numreport/internal/worker"
)

// Application represents the numreport application instance.
type Application struct {
	Config    config.AppConfig
	Factory   *naturals.Factory
	ErrWriter io.Writer
	Logger    logging.Logger
	Metrics   *metrics.Collector

	// task is the last launched reporter worker. Only tests join it after a
	// detached run.
	task *worker.Task
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom summer factory for the application.
func WithFactory(f *naturals.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger replaces the console logger built from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = naturals.NewDefaultFactory()
	}

	programName := "numreport"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	app.Metrics = metrics.NewCollector()
	return app, nil
}

// Run executes the report and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)
	if a.Logger == nil {
		a.Logger = a.newLogger()
	}
	return a.runReport(ctx, out)
}

func (a *Application) newLogger() logging.Logger {
	level := zerolog.InfoLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	return logging.NewConsoleLogger(a.ErrWriter, level, a.Config.NoColor)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
