// Package logger adapts logrus to the entity Logger.
package logger

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

type ctxMarker struct{}

var ctxKey = &ctxMarker{}

// Config holds information necessary for customizing the logger.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Logger is a contextual, structured logger backed by logrus.
type Logger struct {
	Logrus *logrus.Logger
}

// New creates a logger writing to out.
func (cfg Config) New(out io.Writer) *Logger {

	lgr := logrus.New()
	lgr.Out = out

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	lgr.Level = level

	switch cfg.Format {
	case "json":
		lgr.Formatter = new(logrus.JSONFormatter)

	default:
		textFormatter := new(logrus.TextFormatter)
		textFormatter.FullTimestamp = true
		textFormatter.DisableColors = true

		lgr.Formatter = textFormatter
	}

	return &Logger{Logrus: lgr}
}

// WithFields returns a context carrying fields for every message logged with it.
func WithFields(ctx context.Context, kv ...any) context.Context {

	fields := logrus.Fields{}
	if prev, ok := ctx.Value(ctxKey).(logrus.Fields); ok {
		for key, val := range prev {
			fields[key] = val
		}
	}
	merge(fields, kv)

	return context.WithValue(ctx, ctxKey, fields)
}

// Info logs a message at info level.
func (lgr *Logger) Info(ctx context.Context, msg string, kv ...any) {
	lgr.entry(ctx, kv).Info(msg)
}

// Error logs a message and error at error level.
func (lgr *Logger) Error(ctx context.Context, msg string, err error, kv ...any) {
	lgr.entry(ctx, kv).WithError(err).Error(msg)
}

// unexported

func (lgr *Logger) entry(ctx context.Context, kv []any) *logrus.Entry {

	fields := logrus.Fields{}
	if ctx != nil {
		if prev, ok := ctx.Value(ctxKey).(logrus.Fields); ok {
			for key, val := range prev {
				fields[key] = val
			}
		}
	}
	merge(fields, kv)

	return lgr.Logrus.WithFields(fields)
}

// merge adds key/value pairs to fields, pairing an odd trailing key with nil.
func merge(fields logrus.Fields, kv []any) {

	if len(kv)%2 == 1 {
		kv = append(kv, nil)
	}

	for i := 0; i < len(kv); i += 2 {
		var key string
		switch x := kv[i].(type) {
		case string:
			key = x
		case fmt.Stringer:
			key = x.String()
		default:
			key = fmt.Sprint(x)
		}

		val := kv[i+1]
		if str, ok := val.(fmt.Stringer); ok {
			val = str.String()
		}
		fields[key] = val
	}
}
