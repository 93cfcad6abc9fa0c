package main

import (
	"io"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fmantz/speedtracker/defs"
)

// fileHook copies every log entry to a size rotated log file, the console
// only gets the bare messages
type fileHook struct {
	writer    io.Writer
	formatter log.Formatter
}

func newFileHook(path string, maxKB int) *fileHook {
	return &fileHook{
		writer: &lumberjack.Logger{
			Filename: path,
			MaxSize:  maxSizeMB(maxKB),
			// rotated files are never removed
			MaxBackups: 0,
			MaxAge:     0,
		},
		formatter: &log.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: defs.DateTimeFormat,
		},
	}
}

// maxSizeMB converts the configured size, rotation works in whole megabytes
func maxSizeMB(kb int) int {
	if mb := kb / 1024; mb > 1 {
		return mb
	}
	return 1
}

func (h *fileHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *fileHook) Fire(entry *log.Entry) error {
	b, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(b)
	return err
}
