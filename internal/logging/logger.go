package logging

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Log writes to stderr, stdout carries only the report
var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	Log.SetOutput(os.Stderr)
	Log.SetLevel(logrus.WarnLevel)
}

// SetLevel parses a logrus level name ("debug", "info", "warn", ...) and applies it to Log
func SetLevel(name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	Log.SetLevel(level)
	return nil
}
