// Anactl - Analytics API Tool
//
// A CLI tool for the analytics backend:
//   - Alerting policy listing and bulk deletion (v2 + v3 APIs)
//   - Monitored object inspection
//   - Tenant metadata reads, updates, and the case-sensitivity patch
//   - Deployment verification (metadata categories, TWAMP-SF metrics)
//
// Every command logs in before running and logs out after. The backend
// is selected with --env; credentials come from the profiles file, a
// .env file, or SENSORCTL_ANALYTICS_USERNAME / SENSORCTL_ANALYTICS_PASSWORD.
//
// Examples:
//
//	anactl get-alerting-policies
//	anactl get-alerting-policy latency-slo
//	anactl delete-all-policies               # Confirmed, v2 then v3
//	anactl get-monitored-objects
//	anactl verify-metadata-categories
//	anactl verify-twampsf-metrics
package main

import (
	"github.com/spf13/cobra"

	"github.com/sensornet/sensorctl/internal/tool"
	"github.com/sensornet/sensorctl/pkg/profile"
)

var app = tool.New("anactl", profile.BackendAnalytics,
	"Analytics API tool",
	`Anactl inspects and manages the analytics backend: alerting
policies, monitored objects, tenant metadata, and the verification
checks run after a deployment.

  anactl [--env <env>] <command> [args]`)

func main() {
	app.Main()
}

func init() {
	app.Root.AddGroup(
		&cobra.Group{ID: "policy", Title: "Alerting Policies:"},
		&cobra.Group{ID: "object", Title: "Monitored Objects:"},
		&cobra.Group{ID: "metadata", Title: "Tenant Metadata:"},
		&cobra.Group{ID: "verify", Title: "Verification:"},
	)

	for _, cmd := range []*cobra.Command{
		getAlertingPoliciesCmd, getAlertingPolicyCmd, deleteAllPoliciesCmd,
	} {
		cmd.GroupID = "policy"
		app.Root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{getMonitoredObjectsCmd, getMonitoredObjectCmd} {
		cmd.GroupID = "object"
		app.Root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		getMetadataMappingCmd, getTenantMetadataCmd, updateTenantMetadataCmd, patchCaseSensitiveCmd,
	} {
		cmd.GroupID = "metadata"
		app.Root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{verifyMetadataCategoriesCmd, verifyTwampSFMetricsCmd} {
		cmd.GroupID = "verify"
		app.Root.AddCommand(cmd)
	}
}
