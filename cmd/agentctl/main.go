// Agentctl - Agent Orchestrator API Tool
//
// A CLI tool for the agent orchestrator backend:
//   - Generic HTTP verbs against any API path
//   - Session inspection and bulk deletion
//   - Registered-agent listing and configuration dumps
//
// Every command logs in before running and logs out after. The backend
// is selected with --env (built-in environments plus any defined in
// ~/.sensorctl/profiles.yaml); credentials come from the profiles file,
// a .env file, or SENSORCTL_AGENT_USERNAME / SENSORCTL_AGENT_PASSWORD.
//
// Examples:
//
//	agentctl get-agents                       # Agent inventory table
//	agentctl get-sessions-status              # Session status table
//	agentctl get-session-status twamp-nyc-7   # One session's status
//	agentctl delete-sessions twamp-nyc        # Delete by prefix (confirmed)
//	agentctl delete-sessions all              # Delete everything (confirmed)
//	agentctl get /api/orchestrate/v3/agents/sessions --jq '.data[].attributes'
package main

import (
	"github.com/spf13/cobra"

	"github.com/sensornet/sensorctl/internal/tool"
	"github.com/sensornet/sensorctl/pkg/profile"
)

// agentAPI is the base path of the orchestrator's agent API.
const agentAPI = "/api/orchestrate/v3/agents"

var app = tool.New("agentctl", profile.BackendAgent,
	"Agent orchestrator API tool",
	`Agentctl inspects and manages the agent orchestrator: registered
agents, their configuration, and the test sessions scheduled on them.

  agentctl [--env <env>] <command> [args]`)

func main() {
	app.Main()
}

func init() {
	app.AddVerbCommands(nil)

	app.Root.AddGroup(
		&cobra.Group{ID: "session", Title: "Session Operations:"},
		&cobra.Group{ID: "agent", Title: "Agent Operations:"},
	)

	for _, cmd := range []*cobra.Command{
		getSessionsCmd, getSessionStatusCmd, getSessionsStatusCmd, deleteSessionsCmd,
	} {
		cmd.GroupID = "session"
		app.Root.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		getAgentsCmd, getAgentCmd, getAgentConfigCmd, getAgentsConfigCmd,
	} {
		cmd.GroupID = "agent"
		app.Root.AddCommand(cmd)
	}
}
