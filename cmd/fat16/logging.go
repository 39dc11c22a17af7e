package main

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// verboseLevels maps the value of the verbose flag to a log level.
// The library only logs at debug level, so there is no trace level.
var verboseLevels = []log.Level{log.ErrorLevel, log.InfoLevel, log.DebugLevel}

// plainFormatter prints info messages as they are and falls back to
// key=value lines for everything else, which carries the image fields.
type plainFormatter struct {
	structured log.TextFormatter
}

func (f *plainFormatter) Format(entry *log.Entry) ([]byte, error) {
	if entry.Level == log.InfoLevel {
		return append([]byte(entry.Message), '\n'), nil
	}
	return f.structured.Format(entry)
}

// SetupLogging configures the standard logger from the quiet and verbose flags.
// An explicit verbose level switches to key=value lines for every message.
func SetupLogging(quiet bool, verbose int, verboseSet bool) error {
	if verbose < 0 || verbose >= len(verboseLevels) {
		return fmt.Errorf("verbose must be between 0 and %d", len(verboseLevels)-1)
	}
	if quiet && verboseSet && verbose > 0 {
		return errors.New("quiet and verbose can not be used together")
	}

	level := verboseLevels[verbose]
	if quiet {
		level = log.ErrorLevel
	}
	log.SetLevel(level)

	if verboseSet && level != log.ErrorLevel {
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	} else {
		log.SetFormatter(new(plainFormatter))
	}
	return nil
}
