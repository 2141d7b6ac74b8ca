package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"
)

// Logger writes one JSON object per line with a "ts" timestamp rendered in
// the configured location. A nil *Logger discards everything.
type Logger struct {
	out *log.Logger
	loc *time.Location
}

// New returns a Logger writing to w.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{out: log.New(w, "", 0), loc: loc}
}

// Stdout returns a Logger writing to standard output.
func Stdout(loc *time.Location) *Logger {
	return New(os.Stdout, loc)
}

// Log emits data as-is, adding "ts" and a "level" derived from "status"
// when the caller did not set one.
func (l *Logger) Log(data map[string]any) {
	if l == nil {
		return
	}
	data["ts"] = time.Now().In(l.loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		l.out.Printf("failed to marshal log entry: %v", err)
		return
	}
	l.out.Println(string(b))
}

// Info logs msg with optional fields.
func (l *Logger) Info(msg string, fields map[string]any) {
	l.Log(entry("info", msg, fields))
}

// Error logs msg with err under "error".
func (l *Logger) Error(msg string, err error, fields map[string]any) {
	e := entry("error", msg, fields)
	if err != nil {
		e["error"] = err.Error()
	}
	l.Log(e)
}

func entry(level, msg string, fields map[string]any) map[string]any {
	e := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		e[k] = v
	}
	e["level"] = level
	e["msg"] = msg
	return e
}
