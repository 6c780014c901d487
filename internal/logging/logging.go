package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. Production gets JSON lines for log
// shipping; development keeps the human-readable text formatter.
func New(level, env string) *logrus.Logger {
	log := logrus.New()

	if strings.ToLower(env) == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warning":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}
