package logger

import (
	"github.com/sirupsen/logrus"
)

// Logger is the process-wide logrus instance used by the telemetry path.
var Logger *logrus.Logger

// Init initializes the logger with the configured level. Unknown levels
// fall back to info.
func Init(level string) {
	Logger = logrus.New()
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Logger.SetLevel(parsed)
}
