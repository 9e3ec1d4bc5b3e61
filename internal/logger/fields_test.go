package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	for _, tc := range []struct {
		name  string
		pairs []StringField
		want  map[string]string
	}{
		{name: "none", want: map[string]string{}},
		{
			name:  "trimmed",
			pairs: []StringField{{Key: " source ", Value: " resume.pdf "}},
			want:  map[string]string{"source": "resume.pdf"},
		},
		{
			name: "blank parts skipped",
			pairs: []StringField{
				{Key: "rule", Value: "  "},
				{Key: " ", Value: "orphan"},
				{Key: FieldSession, Value: "abc"},
			},
			want: map[string]string{FieldSession: "abc"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fields := StringFields(tc.pairs...)
			if len(fields) != len(tc.want) {
				t.Fatalf("expected %d fields, got %d", len(tc.want), len(fields))
			}
			for _, field := range fields {
				if tc.want[field.Key] != field.String {
					t.Fatalf("unexpected field %s=%q", field.Key, field.String)
				}
			}
		})
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	if got := WithFields(base); got != base {
		t.Fatalf("expected the same logger without fields")
	}

	WithFields(base, zap.String("source", "cv.docx")).Info("decoded")

	entries := observed.All()
	if len(entries) != 1 || entries[0].ContextMap()["source"] != "cv.docx" {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	// nil loggers fall back to a no-op logger
	WithFields(nil, zap.String("source", "cv.docx")).Info("dropped")
}
