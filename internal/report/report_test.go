package report

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCLIFormatter_MarksFailureWithError(t *testing.T) {
	r := Result{Module: "redis", Error: "boom"}
	out := NewCLIFormatter(false).Format(r)
	if !strings.Contains(out, "failed") || !strings.Contains(out, "boom") {
		t.Errorf("got %q, want it to mention failed and boom", out)
	}
}

func TestCLIFormatter_NoColorOmitsEscapeCodes(t *testing.T) {
	out := NewCLIFormatter(false).Format(Result{Module: "redis"})
	if strings.Contains(out, "\033") {
		t.Error("expected no ANSI escape codes when Color is false")
	}
}

func TestJSONFormatter_RoundTrips(t *testing.T) {
	r := Result{Module: "redis", Ready: true, Ports: []PortBinding{{ContainerPort: 6379, HostPort: 54321}}}
	out := NewJSONFormatter().Format(r)

	var got Result
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Module != r.Module || len(got.Ports) != 1 || got.Ports[0].HostPort != 54321 {
		t.Errorf("got %+v, want %+v", got, r)
	}
}
