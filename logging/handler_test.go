package logging

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/exp/slog"
)

func TestHandleWritesOneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("query completed", "stop", int32(42), "seconds", 300)

	out := buf.String()
	if !strings.Contains(out, "query completed") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "stop=42") {
		t.Errorf("output missing attr: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected exactly one line, got %q", out)
	}
}

func TestWithAttrsCarriesAttrsIntoOutput(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)
	child := h.WithAttrs([]slog.Attr{slog.String("component", "profile")})

	logger := slog.New(child)
	logger.Info("scan started")

	if !strings.Contains(buf.String(), "component=profile") {
		t.Errorf("output missing inherited attr: %q", buf.String())
	}
}
