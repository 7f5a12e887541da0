// Ygwctl - YANG Gateway RESTCONF API Tool
//
// A CLI tool for the YANG gateway: service endpoints, alert policies,
// sessions, services, and the metadata configuration exposed over
// RESTCONF, plus generic verbs for arbitrary RESTCONF paths.
//
// When the gateway runs behind the tenant proxy the client forwards
// the caller identity in X-Forwarded-* headers; override the defaults
// with --user-id, --user-name, and --user-groups.
//
// Examples:
//
//	ygwctl get-endpoints
//	ygwctl get-session twamp-nyc-1
//	ygwctl get-alerts
//	ygwctl get /restconf/data/Accedian-service:services
package main

import (
	"github.com/spf13/cobra"

	"github.com/sensornet/sensorctl/internal/tool"
	"github.com/sensornet/sensorctl/pkg/orchestrator"
	"github.com/sensornet/sensorctl/pkg/profile"
)

var app = tool.New("ygwctl", profile.BackendYGW,
	"YANG gateway RESTCONF API tool",
	`Ygwctl queries the YANG gateway over RESTCONF: service endpoints,
alert policies, sessions, services, and metadata configuration.

  ygwctl [--env <env>] <command> [args]`)

var (
	forwardedUserID     string
	forwardedUserName   string
	forwardedUserGroups string
)

func main() {
	app.Main()
}

// forwardedIdentity supplies the caller identity headers the gateway
// expects when fronted by the tenant proxy. Tenant id and roles are
// attached by the client; these add the user fields.
func forwardedIdentity() []orchestrator.RequestOption {
	if !app.Client().Config().GatewayFronted {
		return nil
	}
	return []orchestrator.RequestOption{
		orchestrator.WithHeaders(map[string]string{
			"X-Forwarded-User-Id":       forwardedUserID,
			"X-Forwarded-User-Username": forwardedUserName,
			"X-Forwarded-User-groups":   forwardedUserGroups,
		}),
	}
}

func init() {
	app.Root.PersistentFlags().StringVar(&forwardedUserID, "user-id", "12345", "forwarded user id for gateway-fronted requests")
	app.Root.PersistentFlags().StringVar(&forwardedUserName, "user-name", "operator", "forwarded username for gateway-fronted requests")
	app.Root.PersistentFlags().StringVar(&forwardedUserGroups, "user-groups", "operators", "forwarded user groups for gateway-fronted requests")

	app.AddVerbCommands(forwardedIdentity)
	app.Root.AddGroup(&cobra.Group{ID: "restconf", Title: "RESTCONF Data:"})

	for _, cmd := range []*cobra.Command{
		getEndpointsCmd, getEndpointCmd, getAlertsCmd,
		getSessionsCmd, getSessionCmd, getServicesCmd, getMetadataCmd,
	} {
		cmd.GroupID = "restconf"
		app.Root.AddCommand(cmd)
	}
}
