package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(Config{Level: level, Output: &buf, Prefix: "editcore"})
	l.sink.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"Error":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerFormat(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)
	l.WithComponent("bracket").WithField("row", 3).Info("matched %s", "(")

	want := "2024-01-02T03:04:05.000 [INFO] editcore: matched ( {component=bracket, row=3}\n"
	if buf.String() != want {
		t.Errorf("got %q\nwant %q", buf.String(), want)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	l, buf := newTestLogger(LevelWarn)
	child := l.WithComponent("engine")

	child.Info("hidden")
	child.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	l.SetLevel(LevelDebug)
	child.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("SetLevel on the root should apply to derived loggers")
	}
}

func TestLoggerDisable(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)
	l.Disable()
	l.Error("x")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
	l.Enable()
	l.Error("x")
	if buf.Len() == 0 {
		t.Error("enabled logger wrote nothing")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("discarded")
	var nilLogger *Logger
	nilLogger.Info("no panic")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editcore.log")
	l, closer, err := OpenFile(path, LevelInfo, "")
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	l.Info("hello %d", 1)
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[INFO] hello 1") {
		t.Errorf("log file = %q", data)
	}
}
