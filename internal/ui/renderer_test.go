package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRendererWritesPlainLines(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(Options{NoColor: true, Out: &out, Err: &errOut})

	r.Info("name=nginx has_dashboard=True")
	r.Info("   ")
	r.Column("is_jmx", "Provides a JMX metrics.yaml mapping.")
	r.Error(errors.New("Check `bogus` is not an Agent-based Integration"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %#v", lines)
	}
	if lines[0] != "name=nginx has_dashboard=True" {
		t.Fatalf("unexpected info line %q", lines[0])
	}
	if !strings.Contains(lines[1], "is_jmx") || !strings.Contains(lines[1], "metrics.yaml") {
		t.Fatalf("unexpected column line %q", lines[1])
	}
	if !strings.Contains(errOut.String(), "bogus") {
		t.Fatalf("expected error on stderr writer, got %q", errOut.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("kubernetes_state_core", 10); got != "kuberne..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncate("nginx", 10); got != "nginx" {
		t.Fatalf("unexpected truncation %q", got)
	}
}
