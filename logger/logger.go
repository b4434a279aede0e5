package logger

import (
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"musiclegends/config"
)

// ProvideLogger builds a development logger in debug mode and a JSON
// production logger otherwise.
func ProvideLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// FxLogger routes fx lifecycle events through the application logger.
func FxLogger(l *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: l.Named("fx")}
}

var Options = ProvideLogger
