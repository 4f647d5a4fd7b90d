package cmdlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithWriter(buf)
	logger.DisableColor()
	logger.SetLevel(WarnLevel)

	logger.Debug("debug line")
	logger.Info("info line")
	logger.Warnf("warn %d", 1)
	logger.Error("error line")

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Fatalf("lines below warn level were printed: %q", out)
	}
	if !strings.Contains(out, "warn 1") {
		t.Fatalf("warning missing: %q", out)
	}
	if !strings.Contains(out, "Error: error line") {
		t.Fatalf("error missing: %q", out)
	}
}

func TestTaskStep(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithWriter(buf)
	logger.DisableColor()

	task := logger.NewTask(2)
	task.Step("📦", "first")
	task.Step("📦", "second")

	if !strings.Contains(buf.String(), "[2 / 2] second") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("expected a logger")
	}
	// must not panic
	OrDiscard(nil).Warn("nothing")
}
