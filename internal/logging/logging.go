// Package logging builds the go-kit logger used for diagnostics.
//
// Diagnostics go to stderr in logfmt so they never mix with the table
// printed on stdout.
package logging

import (
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Levels lists the accepted log level names, most verbose first.
var Levels = []string{"debug", "info", "warn", "error"}

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New returns a logfmt logger writing to w that drops records below lvl.
func New(w io.Writer, lvl string) (log.Logger, error) {
	opt, err := levelOption(lvl)
	if err != nil {
		return nil, err
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return logger, nil
}

func levelOption(lvl string) (level.Option, error) {
	switch lvl {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("unrecognized log level %q", lvl)
	}
}
