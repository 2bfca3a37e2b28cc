package experiment

import (
	"io"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is the layout of log timestamps, with milliseconds.
const TimestampFormat = "2006-01-02 15:04:05.000"

// NewLogger returns a text logger with full timestamps at the given level.
func NewLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: TimestampFormat})
	return logger, nil
}
