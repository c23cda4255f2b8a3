package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sccasc/cmipclean/internal/config"
	"github.com/sccasc/cmipclean/internal/term"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = ""
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "cmipclean.log")
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	l.Success("kept %d", 3)
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("[INFO] to file")) || !bytes.Contains(b, []byte("[SUCCESS] kept 3")) {
		t.Errorf("log file content: %s", string(b))
	}
}

func TestLogger_RoutesErrorsToStderr(t *testing.T) {
	term.Configure(config.ColorNever)
	var stdout, stderr bytes.Buffer
	l, err := newLogger("", &stdout, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hello")
	l.Warn("careful")
	l.Error("boom")

	if !strings.Contains(stdout.String(), "[INFO] hello") || !strings.Contains(stdout.String(), "[WARN] careful") {
		t.Errorf("stdout: %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "boom") {
		t.Errorf("error leaked to stdout: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "[ERROR] boom") {
		t.Errorf("stderr: %q", stderr.String())
	}
}

func TestLogger_DebugGatedByVerbose(t *testing.T) {
	term.Configure(config.ColorNever)
	var stdout bytes.Buffer
	l, err := newLogger("", &stdout, &stdout)
	if err != nil {
		t.Fatal(err)
	}
	l.Debug(false, "hidden")
	l.Debug(true, "shown %s", "now")
	if strings.Contains(stdout.String(), "hidden") {
		t.Errorf("non-verbose debug was written: %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "[DEBUG] shown now") {
		t.Errorf("verbose debug missing: %q", stdout.String())
	}
}
