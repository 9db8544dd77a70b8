package logger

import (
	"bytes"
	"strings"
	"testing"
)

// fakeSegment implements Segment with fixed levels.
type fakeSegment struct {
	path    string
	debug   int
	verbose int
}

func (s fakeSegment) Path() string      { return s.path }
func (s fakeSegment) DebugLevel() int   { return s.debug }
func (s fakeSegment) VerboseLevel() int { return s.verbose }

func newBufLogger() (*Standard, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewTo(&buf, &Config{Format: "json", Timestamp: false})
	return l, &buf
}

func TestError_AlwaysEmitted(t *testing.T) {
	l, buf := newBufLogger()
	l.Error(fakeSegment{path: "main/half"}, "handler failed")

	out := buf.String()
	if !strings.Contains(out, "handler failed") {
		t.Fatalf("expected message, got: %s", out)
	}
	if !strings.Contains(out, "main/half") {
		t.Fatalf("expected segment path, got: %s", out)
	}
}

func TestWarn_AlwaysEmitted(t *testing.T) {
	l, buf := newBufLogger()
	l.Warn(fakeSegment{path: "main"}, "dropping item")
	if !strings.Contains(buf.String(), "dropping item") {
		t.Fatalf("expected warn emitted, got: %s", buf.String())
	}
}

func TestInfo_GatedOnVerboseOrDebug(t *testing.T) {
	l, buf := newBufLogger()

	l.Info(fakeSegment{path: "main"}, "quiet")
	if buf.Len() != 0 {
		t.Fatalf("info with no levels should be suppressed, got: %s", buf.String())
	}

	l.Info(fakeSegment{path: "main", verbose: 1}, "verbose on")
	if !strings.Contains(buf.String(), "verbose on") {
		t.Fatal("expected info with verbose>0")
	}

	buf.Reset()
	l.Info(fakeSegment{path: "main", debug: 1}, "debug on")
	if !strings.Contains(buf.String(), "debug on") {
		t.Fatal("expected info with debug>0")
	}
}

func TestDebug_GatedOnDebug(t *testing.T) {
	l, buf := newBufLogger()

	l.Debug(fakeSegment{path: "main", verbose: 3}, "nope")
	if buf.Len() != 0 {
		t.Fatalf("debug without debug level should be suppressed, got: %s", buf.String())
	}

	l.Debug(fakeSegment{path: "main", debug: 1}, "yes")
	if !strings.Contains(buf.String(), "yes") {
		t.Fatal("expected debug with debug>0")
	}
}

func TestItems_FormattedOnlyWhenVerboseAboveOne(t *testing.T) {
	l, buf := newBufLogger()

	l.Warn(fakeSegment{path: "main", verbose: 1}, "msg", 41, 42)
	if strings.Contains(buf.String(), "42") {
		t.Fatalf("items must not be formatted at verbose<=1, got: %s", buf.String())
	}

	buf.Reset()
	l.Warn(fakeSegment{path: "main", verbose: 2}, "msg", 41, 42)
	out := buf.String()
	if !strings.Contains(out, "41, 42") {
		t.Fatalf("items must be formatted at verbose>1, got: %s", out)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{Format: "xml"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid format error")
	}

	cfg = &Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
