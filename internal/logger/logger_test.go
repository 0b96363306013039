package logger

import (
	"bytes"
	"os"
	"testing"
)

func TestSetVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestDebug_OnlyWhenVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)

	SetVerbose(false)
	Debug("hidden %s", "message")
	if buf.Len() != 0 {
		t.Errorf("expected no output when not verbose, got %q", buf.String())
	}

	SetVerbose(true)
	Debug("shown %s", "message")
	if got := buf.String(); got != "[DEBUG] shown message\n" {
		t.Errorf("unexpected debug output: %q", got)
	}
}

func TestError_AlwaysPrinted(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("failed to parse %s", "file.html")
	if got := buf.String(); got != "[ERROR] failed to parse file.html\n" {
		t.Errorf("unexpected error output: %q", got)
	}
}
