package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/expertpanel/internal/config"
	apperrors "github.com/agbru/expertpanel/internal/errors"
	"github.com/agbru/expertpanel/internal/expert"
	"github.com/agbru/expertpanel/internal/llm"
	"github.com/agbru/expertpanel/internal/logging"
	"github.com/agbru/expertpanel/internal/metrics"
	"github.com/agbru/expertpanel/internal/tui"
	"github.com/agbru/expertpanel/internal/ui"
)

// Application represents the expertpanel application instance.
type Application struct {
	Config    config.AppConfig
	Client    llm.Client
	Logger    logging.Logger
	Metrics   *metrics.Metrics
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithClient sets a custom completion client for the application.
// Used by tests to substitute a stub backend.
func WithClient(c llm.Client) AppOption {
	return func(a *Application) { a.Client = c }
}

// WithLogger sets a custom logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "expertpanel"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	if app.Client == nil {
		app.Client = llm.NewHTTPClient(cfg.ClientConfig())
	}
	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "app")
	}
	app.Metrics = metrics.NewMetrics()
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Query == "" {
		fmt.Fprintf(a.ErrWriter, "Error: a query is required (use -query or %sQUERY)\n", config.EnvPrefix)
		return apperrors.ExitErrorConfig
	}

	panel, err := a.loadPanel()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if a.Config.MetricsAddr != "" {
		go a.serveMetrics()
	}

	// Setup lifecycle (deadline + signals)
	if a.Config.BatchTimeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.BatchTimeout)
		defer cancelTimeout()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.TUI {
		return tui.Run(ctx, a.Client, panel, a.Config, Version)
	}

	return a.runAsk(ctx, panel, out)
}

// loadPanel resolves the expert panel from the configured file, falling back
// to the built-in default panel.
func (a *Application) loadPanel() ([]expert.Descriptor, error) {
	if a.Config.PanelFile == "" {
		return expert.DefaultPanel(), nil
	}
	return expert.LoadPanel(a.Config.PanelFile)
}

// serveMetrics exposes the Prometheus endpoint for the lifetime of the
// process.
func (a *Application) serveMetrics() {
	if err := a.Metrics.Serve(a.Config.MetricsAddr); err != nil {
		a.Logger.Error("metrics listener failed", err,
			logging.String("addr", a.Config.MetricsAddr))
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
