package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, tc := range []Options{
		{JSON: false, Debug: false},
		{JSON: true, Debug: true},
	} {
		logger, err := New(tc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := logger.Core().Enabled(zapcore.DebugLevel); got != tc.Debug {
			t.Fatalf("expected debug enabled=%v, got %v", tc.Debug, got)
		}
	}
}

func TestNewWritesJSONToOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	logger, err := New(Options{JSON: true, Output: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("resume ingested", zap.Duration("took", 1500*1e6))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	line := string(data)
	for _, want := range []string{`"msg":"resume ingested"`, `"level":"info"`, `"took":"1.5s"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in %s", want, line)
		}
	}
}
