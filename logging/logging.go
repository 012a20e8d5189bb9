// Package logging builds the application logger and names the fields used in
// structured log entries.
package logging

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// FldID is the ID of the event an entry refers to
	FldID = "id"
	// FldMethod is the HTTP method of a request
	FldMethod = "method"
	// FldPath is the request path
	FldPath = "path"
	// FldStatus is the HTTP status sent to the client
	FldStatus = "status"
	// FldLatency is the time spent handling a request
	FldLatency = "latency"
	// FldIP is the client IP address
	FldIP = "ip"
	// FldStore names the store backend
	FldStore = "store"
	// FldTransport is the name of the transport emitting the entry
	FldTransport = "transport"
	// FldKey is a cache or quota key
	FldKey = "key"
)

// New creates a logger writing to out with the given level and format
// ("text" or "json").
func New(out io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, errors.Errorf("unknown log format %q", format)
	}
	return logger, nil
}

// Discard returns an entry that drops everything. Handy in tests.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
