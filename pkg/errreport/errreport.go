package errreport

import (
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// flushTimeout bounds how long shutdown waits for queued events
const flushTimeout = 2 * time.Second

// Hook forwards error level logrus entries to Sentry
type Hook struct {
	hub    *sentry.Hub
	levels []logrus.Level
}

// NewHook func - Creates a hook that reports through hub
func NewHook(hub *sentry.Hub) *Hook {
	return &Hook{
		hub:    hub,
		levels: []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel},
	}
}

// Init func - Configures the global Sentry client and installs the hook on the
// standard logrus logger. An empty dsn disables reporting and returns false.
func Init(dsn, environment string) (bool, error) {
	if dsn == "" {
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
	if err != nil {
		return false, fmt.Errorf("failed to init sentry: %w", err)
	}

	logrus.AddHook(NewHook(sentry.CurrentHub()))
	logrus.Info("Sentry error reporting enabled")
	return true, nil
}

// Flush waits for queued events to be sent
func Flush() {
	if !sentry.Flush(flushTimeout) {
		logrus.Warn("Sentry flush timed out")
	}
}

// Levels implements logrus.Hook
func (h *Hook) Levels() []logrus.Level {
	return h.levels
}

// Fire implements logrus.Hook
func (h *Hook) Fire(entry *logrus.Entry) error {
	event := sentry.NewEvent()
	event.Level = sentryLevel(entry.Level)
	event.Message = entry.Message
	event.Timestamp = entry.Time

	for key, value := range entry.Data {
		if key == logrus.ErrorKey {
			continue
		}
		event.Extra[key] = fmt.Sprint(value)
	}

	if err, ok := entry.Data[logrus.ErrorKey].(error); ok && err != nil {
		event.SetException(err, -1)
	}

	if h.hub.CaptureEvent(event) == nil {
		return errors.New("sentry event was not captured")
	}
	return nil
}

func sentryLevel(level logrus.Level) sentry.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return sentry.LevelFatal
	case logrus.ErrorLevel:
		return sentry.LevelError
	case logrus.WarnLevel:
		return sentry.LevelWarning
	case logrus.InfoLevel:
		return sentry.LevelInfo
	default:
		return sentry.LevelDebug
	}
}
