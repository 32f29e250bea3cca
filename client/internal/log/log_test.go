package log

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "warn")
	l.Info("dropped")
	l.Warn("kept", "aircraft", "AC1234")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 record, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if rec["msg"] != "kept" || rec["aircraft"] != "AC1234" {
		t.Errorf("unexpected record %v", rec)
	}
	if _, ok := rec["callstack"]; !ok {
		t.Errorf("record missing callstack")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Debug("x")
	l.Infof("x %d", 1)
	if l.With("k", "v") != nil {
		t.Fatalf("With on nil logger should stay nil")
	}
}

func TestParseLevel(t *testing.T) {
	if _, ok := parseLevel("verbose"); ok {
		t.Errorf("verbose should be rejected")
	}
	if lvl, ok := parseLevel("DEBUG"); !ok || lvl.String() != "DEBUG" {
		t.Errorf("DEBUG parsed as %v %v", lvl, ok)
	}
}

func TestCallstackStopsAtTest(t *testing.T) {
	fr := Callstack(nil)
	if len(fr) == 0 {
		t.Fatalf("empty callstack")
	}
	if fr[0].File == "" || fr[0].Line == 0 {
		t.Errorf("frame not populated: %+v", fr[0])
	}
}

func TestSourcesCarryLicenseHeader(t *testing.T) {
	for _, fn := range []string{"log.go", "stack.go"} {
		b, err := os.ReadFile(fn)
		if err != nil {
			t.Fatal(err)
		}
		head := string(b[:min(len(b), 400)])
		for _, want := range []string{"vice contributors", "SPDX: GPL-3.0-only"} {
			if !strings.Contains(head, want) {
				t.Errorf("%s: header missing %q", fn, want)
			}
		}
	}
}
