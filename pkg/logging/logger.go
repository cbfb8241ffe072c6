package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger. Unknown levels fall back to info.
func Init(level, format string) {
	Configure(log.StandardLogger(), os.Stdout, level, format)
}

// Configure applies level and formatter to the given logger
func Configure(logger *log.Logger, out io.Writer, level, format string) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	logger.SetOutput(out)

	switch strings.ToLower(format) {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		logger.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}
}

// Component returns an entry tagged with the component name, e.g. "[api]"
func Component(name string) *log.Entry {
	return log.WithField("component", name)
}
