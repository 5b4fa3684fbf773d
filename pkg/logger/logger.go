package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It aliases the logrus standard logger so
// packages logging through logrus directly pick up the same formatter
// and level.
var Log = logrus.StandardLogger()

// InitLogger configures the shared structured logger. level is a logrus
// level name; anything unparseable falls back to info.
func InitLogger(level string) {
	// Output to stdout instead of the default stderr
	Log.SetOutput(os.Stdout)

	// Set JSON formatter for structured logging
	Log.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}
