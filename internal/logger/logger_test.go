package logger

import (
	"bytes"
	"os"
	"testing"
)

func resetAfterTest(t *testing.T) {
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
}

func TestSetVerbose(t *testing.T) {
	resetAfterTest(t)

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	resetAfterTest(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("embedded %d chunks", 4)

	if got := buf.String(); got != "[DEBUG] embedded 4 chunks\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	resetAfterTest(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("should not appear")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	resetAfterTest(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Retrieval")

	if got := buf.String(); got != "\n=== Retrieval ===\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestSection_NameIsNotAFormatString(t *testing.T) {
	resetAfterTest(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	// A name containing verb-like text must render verbatim.
	Section("Ingest: baltic_100%_report.txt")

	if got := buf.String(); got != "\n=== Ingest: baltic_100%_report.txt ===\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestInfoAndWarn(t *testing.T) {
	resetAfterTest(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("stored %s", "doc")
	Warn("skipped %s", "doc")

	want := "[INFO] stored doc\n[WARN] skipped doc\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output: %q", got)
	}
}
