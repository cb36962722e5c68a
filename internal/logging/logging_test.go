package logging

import (
	"testing"

	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]struct {
		want    zap.AtomicLevel
		wantErr bool
	}{
		"debug": {want: zap.NewAtomicLevelAt(zap.DebugLevel)},
		"":      {want: zap.NewAtomicLevelAt(zap.InfoLevel)},
		"WARN":  {want: zap.NewAtomicLevelAt(zap.WarnLevel)},
		"error": {want: zap.NewAtomicLevelAt(zap.ErrorLevel)},
		"trace": {wantErr: true},
	}

	for input, tc := range cases {
		got, err := ParseLevel(input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseLevel(%q): expected error", input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", input, err)
		}
		if got != tc.want.Level() {
			t.Fatalf("ParseLevel(%q) = %v, want %v", input, got, tc.want.Level())
		}
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		logger, err := New("debug", format)
		if err != nil {
			t.Fatalf("New(debug, %q): %v", format, err)
		}
		if !logger.Core().Enabled(zap.DebugLevel) {
			t.Fatalf("format %q: expected debug enabled", format)
		}
	}

	if _, err := New("info", "xml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
