package main

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// verbosityLevels maps the values of --verbose to log levels.
var verbosityLevels = []log.Level{log.ErrorLevel, log.InfoLevel, log.DebugLevel, log.TraceLevel}

// plainFormatter prints info lines without decoration and leaves
// warnings, errors and debug output to the text formatter.
type plainFormatter struct {
	text log.Formatter
}

func (f plainFormatter) Format(entry *log.Entry) ([]byte, error) {
	if entry.Level == log.InfoLevel {
		return append([]byte(entry.Message), '\n'), nil
	}
	return f.text.Format(entry)
}

// setupLogging configures the standard logger from --quiet and --verbose.
// An explicit --verbose switches to structured lines for all levels so the
// geometry fields logged while opening a volume are readable.
func setupLogging(quiet bool, verbose int, verboseSet bool) error {
	if quiet && verboseSet && verbose > 0 {
		return errors.New("--quiet and --verbose can't be combined")
	}
	if verbose < 0 || verbose >= len(verbosityLevels) {
		return fmt.Errorf("--verbose must be between 0 and %d, got %d", len(verbosityLevels)-1, verbose)
	}

	text := &log.TextFormatter{}
	if verboseSet {
		log.SetFormatter(text)
	} else {
		log.SetFormatter(plainFormatter{text: text})
	}

	level := verbosityLevels[verbose]
	if quiet {
		level = log.ErrorLevel
	}
	log.SetLevel(level)
	return nil
}
