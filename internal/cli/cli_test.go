package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel, false)
	logger.Info("test message")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Error("debug should be filtered at info level")
	}
}

func TestNewLoggerProduction(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel, true)
	logger.Info("started", "addr", ":8080")
	out := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"addr":":8080"`) {
		t.Errorf("expected JSON output, got %q", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("expected default logger without one attached")
	}
	l := newLogger(&bytes.Buffer{}, log.InfoLevel, false)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("expected attached logger")
	}
}

func TestSetVersion(t *testing.T) {
	old := version
	t.Cleanup(func() { version = old })

	SetVersion("1.0.0", "abc123", "2024-01-01")
	if version != "1.0.0" || commit != "abc123" || date != "2024-01-01" {
		t.Errorf("SetVersion left %q %q %q", version, commit, date)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", writeConfig(t)}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// writeConfig points the backgrounds directory at an empty temp dir so only
// the built-in background exists.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mcgen.toml")
	body := "backgrounds_dir = \"" + filepath.ToSlash(filepath.Join(dir, "none")) + "\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBackgroundsCommand(t *testing.T) {
	out, err := run(t, "backgrounds")
	if err != nil {
		t.Fatalf("backgrounds failed: %v", err)
	}
	if !strings.Contains(out, "plain\n") {
		t.Errorf("output = %q, want plain listed", out)
	}
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if _, err := run(t, "render", "--text", "Mined a block", "--scale", "2", "-o", path); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderUnknownBackground(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	_, err := run(t, "render", "-b", "nope", "-o", path)
	if err == nil {
		t.Fatal("expected error for unknown background")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be written on error")
	}
}

func TestRenderInvalidScale(t *testing.T) {
	_, err := run(t, "render", "--scale", "99", "-o", filepath.Join(t.TempDir(), "out.png"))
	if err == nil {
		t.Fatal("expected error for scale out of range")
	}
}

func TestBadConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "backgrounds"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
