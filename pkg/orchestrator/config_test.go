package orchestrator

import (
	"strings"
	"testing"
)

func TestConfig_BaseURL(t *testing.T) {
	tests := []struct {
		url  string
		port string
		want string
	}{
		{"https://10.250.4.254", "9081", "https://10.250.4.254:9081"},
		{"https://orchestrate.dev.sensorlab.local", "", "https://orchestrate.dev.sensorlab.local"},
		{"http://localhost", "8444", "http://localhost:8444"},
	}
	for _, tt := range tests {
		cfg := Config{URL: tt.url, Port: tt.port}
		if got := cfg.BaseURL(); got != tt.want {
			t.Errorf("BaseURL(%q, %q) = %q, want %q", tt.url, tt.port, got, tt.want)
		}
	}
}

func TestConfig_StringRedactsPassword(t *testing.T) {
	cfg := Config{
		Name:     "sensor",
		URL:      "https://10.250.4.254",
		Port:     "9081",
		Username: "admin",
		Password: "hunter2",
	}
	s := cfg.String()
	if strings.Contains(s, "hunter2") {
		t.Errorf("String() must not leak the password: %s", s)
	}
	if !strings.Contains(s, "admin") {
		t.Errorf("String() should include the username: %s", s)
	}
	if !strings.Contains(s, "********") {
		t.Errorf("String() should mark a set password: %s", s)
	}
}

func TestConfig_StringEmptyPassword(t *testing.T) {
	s := Config{Name: "ygw"}.String()
	if strings.Contains(s, "********") {
		t.Errorf("empty password should not render a mask: %s", s)
	}
}
