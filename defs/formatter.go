package defs

import (
	log "github.com/sirupsen/logrus"
)

// NoFormatter prints only the message of a log entry. It is used for console
// output, the log file gets the full logrus text format.
type NoFormatter struct{}

// Format implements logrus.Formatter
func (f *NoFormatter) Format(entry *log.Entry) ([]byte, error) {
	return append([]byte(entry.Message), '\n'), nil
}
