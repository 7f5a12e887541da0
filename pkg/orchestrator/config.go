// Package orchestrator implements the authenticated HTTP client shared
// by the sensorctl tools. Each backend (agent orchestrator, analytics,
// sensor orchestrator, YANG gateway) is described by a Config; a Client
// performs the login handshake, attaches credentials to requests, and
// returns raw responses without interpreting status codes.
package orchestrator

import (
	"fmt"
	"strings"
)

// Config describes one management backend.
type Config struct {
	// Name identifies the backend in logs and error messages.
	Name string `yaml:"name"`

	// URL is the scheme and host, without a trailing slash.
	URL string `yaml:"url"`

	// Port is appended to URL as ":port" when non-empty.
	Port string `yaml:"port"`

	// GatewayFronted marks a backend reached through the API gateway.
	// The gateway handles authentication, so login and logout are
	// no-ops and every request carries forwarded tenant headers.
	GatewayFronted bool `yaml:"gateway_fronted"`

	// Username and Password authenticate standalone backends.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// LoginPaths are POSTed to in order during Login. Backends that
	// expose several API families need one login per family.
	LoginPaths []string `yaml:"login_paths"`

	// LogoutPaths are POSTed to during Logout.
	LogoutPaths []string `yaml:"logout_paths"`

	// TenantID and UserRoles populate the forwarded identity headers
	// on gateway-fronted backends.
	TenantID  string `yaml:"tenant_id"`
	UserRoles string `yaml:"user_roles"`

	// StrictLogin rejects credentials from non-2xx login responses.
	// The default keeps them, which lets tools keep working against
	// backends that return odd statuses from a successful login.
	StrictLogin bool `yaml:"strict_login"`
}

// BaseURL returns the URL with the port appended when set.
func (c Config) BaseURL() string {
	if c.Port != "" {
		return c.URL + ":" + c.Port
	}
	return c.URL
}

// String renders the config for debug output with the password redacted.
func (c Config) String() string {
	password := ""
	if c.Password != "" {
		password = "********"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "name: %s\n", c.Name)
	fmt.Fprintf(&b, "url: %s\n", c.BaseURL())
	fmt.Fprintf(&b, "gateway_fronted: %t\n", c.GatewayFronted)
	fmt.Fprintf(&b, "username: %s\n", c.Username)
	fmt.Fprintf(&b, "password: %s\n", password)
	fmt.Fprintf(&b, "login_paths: %s\n", strings.Join(c.LoginPaths, ", "))
	fmt.Fprintf(&b, "logout_paths: %s\n", strings.Join(c.LogoutPaths, ", "))
	fmt.Fprintf(&b, "tenant_id: %s\n", c.TenantID)
	fmt.Fprintf(&b, "user_roles: %s", c.UserRoles)
	return b.String()
}
