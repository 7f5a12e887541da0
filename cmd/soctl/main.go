// Soctl - Sensor Orchestrator API Tool
//
// A CLI tool for the sensor orchestrator: Echo and TWAMP session
// lookups through the northbound API, plus Y.1564 and RFC2544 test
// configuration listings used for service acceptance testing (SAT).
//
// The orchestrator exposes two northbound surfaces with separate
// logins (/nbapi and /nbapiemswsweb); the client holds a credential
// for each and picks the right one per request path.
//
// Examples:
//
//	soctl get-session-echo echo-nyc-1
//	soctl get-session-twamp twamp-nyc-1
//	soctl get-sessions-y1564
//	soctl get-sessions-rfc2544
//	soctl get-sessions-sat
package main

import (
	"github.com/spf13/cobra"

	"github.com/sensornet/sensorctl/internal/tool"
	"github.com/sensornet/sensorctl/pkg/profile"
)

var app = tool.New("soctl", profile.BackendSensor,
	"Sensor orchestrator API tool",
	`Soctl queries the sensor orchestrator: Echo and TWAMP sessions,
and the Y.1564 / RFC2544 test configurations run during service
acceptance testing.

  soctl [--env <env>] <command> [args]`)

func main() {
	app.Main()
}

func init() {
	app.Root.AddGroup(
		&cobra.Group{ID: "session", Title: "Session Commands:"},
		&cobra.Group{ID: "sat", Title: "Service Acceptance Testing:"},
	)

	for _, cmd := range []*cobra.Command{getSessionEchoCmd, getSessionTwampCmd} {
		cmd.GroupID = "session"
		app.Root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{getSessionsY1564Cmd, getSessionsRFC2544Cmd, getSessionsSATCmd} {
		cmd.GroupID = "sat"
		app.Root.AddCommand(cmd)
	}
}
