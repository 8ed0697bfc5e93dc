package logger

import (
	"io"
	"log"
	"os"
)

var (
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
	Debug   *log.Logger
	HTTP    *log.Logger
)

func init() {
	// Loggers are usable before Setup is called, e.g. from tests.
	SetupWithWriter(os.Stdout, os.Stderr)
}

// Setup initializes the leveled loggers writing to stdout/stderr.
func Setup() {
	SetupWithWriter(os.Stdout, os.Stderr)
}

// SetupWithWriter initializes the leveled loggers with custom writers.
func SetupWithWriter(out io.Writer, errOut io.Writer) {
	flags := log.Ldate | log.Ltime | log.Lshortfile

	Info = log.New(out, "INFO: ", flags)
	Warning = log.New(out, "WARNING: ", flags)
	Error = log.New(errOut, "ERROR: ", flags)
	Debug = log.New(out, "DEBUG: ", flags)
	HTTP = log.New(out, "HTTP: ", flags)
}

// Silence discards every log line. Used by tests.
func Silence() {
	SetupWithWriter(io.Discard, io.Discard)
}
