package main

import (
	"strings"
	"testing"

	"github.com/sensornet/sensorctl/pkg/cli"
)

func TestRestconfList(t *testing.T) {
	body := []byte(`{"Accedian-session:sessions":{"session":[
		{"id":"s1","name":"twamp-nyc","type":"twamp","status":"running"},
		{"id":"s2","name":"echo-lon","type":"echo","status":"stopped"}
	]}}`)

	sessions := restconfList(body, "Accedian-session:sessions", "session")
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if got := sessions[0].Get("name").String(); got != "twamp-nyc" {
		t.Errorf("first session name = %q", got)
	}
}

func TestRestconfList_MissingContainer(t *testing.T) {
	if got := restconfList([]byte(`{}`), "Accedian-service:services", "service"); len(got) != 0 {
		t.Errorf("expected no items, got %d", len(got))
	}
}

func TestSeverityColor(t *testing.T) {
	tests := []struct {
		severity string
		want     string
	}{
		{"critical", cli.Bold(cli.Red("critical"))},
		{"major", cli.Red("major")},
		{"minor", cli.Yellow("minor")},
		{"warning", cli.Yellow("warning")},
		{"info", "info"},
	}
	for _, tt := range tests {
		if got := severityColor(tt.severity); got != tt.want {
			t.Errorf("severityColor(%q) = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 60)
	if got := truncate(long, 50); len(got) != 50 {
		t.Errorf("truncate length = %d", len(got))
	}
	if got := truncate("short", 50); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
}
