package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/vk/threemf/internal/ctxlog"
	"github.com/vk/threemf/internal/hclmodel"
)

var (
	// ErrLoadFailed is returned when the model files could not be loaded.
	ErrLoadFailed = errors.New("model could not be loaded")
	// ErrInvalidModel is returned when at least one resource failed its checks.
	ErrInvalidModel = errors.New("model is invalid")
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logW   io.Writer
	logger *slog.Logger
	config *Config
	loader *hclmodel.Loader
}

// NewApp is the constructor for the main application. Reports go to outW,
// logs and diagnostics to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logW:   logW,
		logger: logger,
		config: cfg,
		loader: hclmodel.NewLoader(),
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
