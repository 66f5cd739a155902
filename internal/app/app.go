package app

import (
	"io"
	"log/slog"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	printer *message.Printer
	config  *Config
}

// NewApp is the constructor for the main application. Answers are written to
// outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:    outW,
		logger:  logger,
		printer: message.NewPrinter(language.English),
		config:  cfg,
	}
}
