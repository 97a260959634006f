// Package logging writes one JSON object per line to the standard
// logger. Match IDs, player UUIDs and error text travel as fields so
// log lines stay grep-able while rounds resolve concurrently.
package logging

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

type Fields map[string]interface{}

func emit(level, msg string, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	fields["level"] = level
	fields["ts"] = time.Now().UTC().Format(time.RFC3339)
	fields["msg"] = msg
	b, err := json.Marshal(fields)
	if err != nil {
		// A field that cannot marshal falls back to plain text.
		log.Printf("%s: %s (%v)\n", level, msg, fields)
		return
	}
	log.Println(string(b))
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	emit("info", msg, fields)
}

// Warn logs a recoverable anomaly, for example an unknown ability tag in
// the catalog (which the engine treats as inert).
func Warn(msg string, fields Fields) {
	emit("warn", msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	emit("error", msg, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	emit("fatal", msg, fields)
	os.Exit(1)
}
