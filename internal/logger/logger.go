package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const (
	// FldEvent is the log field holding an event id
	FldEvent = "event"
	// FldUser is the log field holding the uid of the signed-in user
	FldUser = "user"
	// FldOp is the log field naming the failed operation
	FldOp = "op"
	// FldBacking names the active backing (remote or mock)
	FldBacking = "backing"
)

// New creates a JSON logger tagged with the service name.
func New(serviceName, level string) *logrus.Entry {
	return NewWithOutput(serviceName, level, os.Stdout)
}

func NewWithOutput(serviceName, level string, out io.Writer) *logrus.Entry {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	log.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log.WithField("service", serviceName)
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Entry {
	return NewWithOutput("test", "panic", io.Discard)
}
