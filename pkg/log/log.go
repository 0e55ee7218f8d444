package log

import "context"

// Logger is the service-wide logging interface. Context is always the first
// argument so implementations can attach request-scoped fields later.
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...any)
	Debugf(ctx context.Context, format string, args ...any)
	Info(ctx context.Context, msg string, keysAndValues ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warn(ctx context.Context, msg string, keysAndValues ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Error(ctx context.Context, msg string, keysAndValues ...any)
	Errorf(ctx context.Context, format string, args ...any)
}

// ZapConfig configures the zap-backed logger.
type ZapConfig struct {
	Level        string // debug, info, warn, error
	Mode         string // development or production
	Encoding     string // json or console
	ColorEnabled bool
}

// Init builds the zap-backed Logger. Invalid settings fall back to a
// production JSON logger at info level rather than failing startup.
func Init(cfg ZapConfig) Logger {
	return newZapLogger(cfg)
}
