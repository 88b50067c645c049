package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Config controls how the application logger is built.
type Config struct {
	Level      string // debug, info, warn, error, fatal
	Format     string // json or console
	Output     string // stdout, stderr, or a file path
	TimeFormat string // time layout; defaults to ISO8601 with millis
}

// DefaultConfig is the development setup: colored console output on stdout.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: defaultTimeLayout,
	}
}

// ProductionConfig emits structured JSON on stdout.
func ProductionConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "json",
		Output:     "stdout",
		TimeFormat: defaultTimeLayout,
	}
}

// New builds a zap logger from the configuration. Stacktraces are attached
// at error level and above.
func New(cfg *Config) (*zap.Logger, error) {
	core := zapcore.NewCore(cfg.encoder(), cfg.sink(), cfg.zapLevel())
	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// NewForEnvironment picks the production config for "production" and the
// development config for everything else.
func NewForEnvironment(env string) (*zap.Logger, error) {
	if env == "production" {
		return New(ProductionConfig())
	}
	return New(DefaultConfig())
}

func (c *Config) zapLevel() zapcore.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (c *Config) encoder() zapcore.Encoder {
	layout := c.TimeFormat
	if layout == "" {
		layout = defaultTimeLayout
	}

	ec := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(layout),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if c.Format == "console" {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

func (c *Config) sink() zapcore.WriteSyncer {
	switch strings.ToLower(c.Output) {
	case "stdout", "":
		return zapcore.AddSync(os.Stdout)
	case "stderr":
		return zapcore.AddSync(os.Stderr)
	}

	file, err := os.OpenFile(c.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// An unwritable log path should not take the process down.
		return zapcore.AddSync(os.Stdout)
	}
	return zapcore.AddSync(file)
}

// Sync flushes any buffered log entries.
func Sync(l *zap.Logger) error {
	return l.Sync()
}
