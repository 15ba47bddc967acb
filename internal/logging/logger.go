package logging

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

const (
	RequestIDKey = "request_id"
)

var (
	level  = new(slog.LevelVar)
	output atomic.Value
)

// atomic.Value requires every stored value to share one concrete type
type writerHolder struct {
	w io.Writer
}

type Logger struct {
	*slog.Logger
}

// SetLevel changes the level of every logger built by this package, including the ones already handed out
func SetLevel(l slog.Level) {
	level.Set(l)
}

func init() {
	output.Store(writerHolder{w: os.Stdout})
}

// SetOutput redirects loggers built after the call. Mostly useful in tests
func SetOutput(w io.Writer) {
	output.Store(writerHolder{w: w})
}

func BuildLogger() *Logger {
	logger := Logger{Logger: slog.New(slog.NewJSONHandler(output.Load().(writerHolder).w, &slog.HandlerOptions{Level: level}))}
	return &logger
}

func BuildLoggerFromCtx(ctx *gin.Context) *Logger {
	logger := BuildLogger()
	modifiedLogger := Logger{Logger: logger.With("path", ctx.Request.URL.Path)}
	if requestID := ctx.GetString(RequestIDKey); requestID != "" {
		modifiedLogger = Logger{Logger: modifiedLogger.With(RequestIDKey, requestID)}
	}
	return &modifiedLogger
}

func (l *Logger) WithError(err error) *Logger {
	modifiedLogger := Logger{Logger: l.With("error", err.Error())}
	return &modifiedLogger
}
