// Package ui is the human-facing logger of the command line tool. Library
// packages log through gologger; this one renders diagnostics for a person
// watching a terminal, on stderr so query output stays pipeable.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

type Logger struct {
	log    *logrus.Logger
	colors struct {
		red    *color.Color
		green  *color.Color
		yellow *color.Color
		cyan   *color.Color
		bold   *color.Color
	}
}

func NewLogger(debug bool) *Logger {
	l := &Logger{
		log: logrus.New(),
	}

	l.colors.red = color.New(color.FgRed)
	l.colors.green = color.New(color.FgGreen)
	l.colors.yellow = color.New(color.FgYellow)
	l.colors.cyan = color.New(color.FgCyan)
	l.colors.bold = color.New(color.Bold)

	l.log.SetOutput(os.Stderr)
	l.log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	if debug {
		l.log.SetLevel(logrus.DebugLevel)
	}

	return l
}

// Debug goes through logrus and only shows up when the debug level is on.
func (l *Logger) Debug(message string) {
	l.log.Debug(message)
}

func (l *Logger) Info(message string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", l.colors.cyan.Sprint("i"), message)
}

func (l *Logger) Warn(message string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", l.colors.yellow.Sprint("!"), message)
}

func (l *Logger) Error(message string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", l.colors.red.Sprint("x"), message)
}

func (l *Logger) Success(message string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", l.colors.green.Sprint("+"), message)
}
