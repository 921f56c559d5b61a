package logger

import (
	"bytes"
	"strings"
	"testing"

	"richards/internal/sched"
)

func TestBuildRejectsBadLevel(t *testing.T) {
	if _, err := Build(sched.LoggerConfig{Level: "loud"}); err == nil {
		t.Fatalf("Build() error = nil, want parse error")
	}
}

func TestBuildSplitsByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	l, err := build(sched.LoggerConfig{Level: "info", Encoding: "json"}, &out, &errOut)
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}

	l.Debug("hidden")
	l.Info("hello")
	l.Error("boom")

	if got := out.String(); !strings.Contains(got, `"msg":"hello"`) || strings.Contains(got, "boom") {
		t.Fatalf("stdout = %q", got)
	}
	if strings.Contains(out.String(), "hidden") {
		t.Fatalf("debug entry written at info level")
	}
	if got := errOut.String(); !strings.Contains(got, "boom") || strings.Contains(got, "hello") {
		t.Fatalf("stderr = %q", got)
	}
}
