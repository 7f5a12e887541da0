package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/sensornet/sensorctl/pkg/cli"
	"github.com/sensornet/sensorctl/pkg/orchestrator"
	"github.com/sensornet/sensorctl/pkg/util"
)

// The agent endpoints want the JSON:API content type even on reads.
func jsonAPIHeader() orchestrator.RequestOption {
	return orchestrator.WithHeader("Content-type", "application/vnd.api+json")
}

var getAgentsCmd = &cobra.Command{
	Use:   "get-agents",
	Short: "List all registered agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.Client().Get(agentAPI, jsonAPIHeader())
		if err != nil {
			return err
		}
		if resp.IsError() {
			cli.LogResponse(os.Stdout, resp)
			return util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode())
		}

		agents := collectAgents(resp.Body())
		if len(agents) == 0 {
			fmt.Println(cli.Yellow("No agents found."))
			return nil
		}
		sortAgents(agents)

		fmt.Println(cli.Bold("Registered Agents"))
		table := cli.NewTable("ID", "NAME", "TYPE", "STATUS", "STATE", "METADATA")
		for _, a := range agents {
			table.Row(a.ID, a.Name, a.Type, cli.StatusColor(a.Status), a.State, a.Metadata)
		}
		table.Flush()
		return nil
	},
}

var getAgentCmd = &cobra.Command{
	Use:   "get-agent <agent-id>",
	Short: "Retrieve details for a specific agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.Client().Get(agentAPI+"/"+args[0], jsonAPIHeader())
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("agent %q: %w", args[0],
				util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode()))
		}
		cli.LogResponse(os.Stdout, resp)
		return nil
	},
}

var getAgentConfigCmd = &cobra.Command{
	Use:   "get-agent-config <agent-id>",
	Short: "Retrieve configuration for a specific agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.Client().Get(agentAPI+"/configuration/"+args[0], jsonAPIHeader())
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("configuration for agent %q: %w", args[0],
				util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode()))
		}
		cli.LogResponse(os.Stdout, resp)
		return nil
	},
}

var getAgentsConfigCmd = &cobra.Command{
	Use:   "get-agents-config",
	Short: "Retrieve configuration for every registered agent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.Client().Get(agentAPI, jsonAPIHeader())
		if err != nil {
			return err
		}
		if resp.IsError() {
			cli.LogResponse(os.Stdout, resp)
			return util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode())
		}

		agents := collectAgents(resp.Body())
		if len(agents) == 0 {
			fmt.Println(cli.Yellow("No agents found."))
			return nil
		}

		fmt.Printf("Fetching configuration for %d agent(s)...\n", len(agents))
		for _, a := range agents {
			name := a.Name
			if name == "" {
				name = "Unknown"
			}
			fmt.Printf("\n%s %s (ID: %s)\n", cli.Bold("Agent:"), name, a.ID)
			resp, err := app.Client().Get(agentAPI+"/configuration/"+a.ID, jsonAPIHeader())
			if err != nil {
				return err
			}
			cli.LogResponse(os.Stdout, resp)
		}
		return nil
	},
}

// agentRow is one line of the agent inventory table.
type agentRow struct {
	ID       string
	Name     string
	Type     string
	Status   string
	State    string
	Metadata string
}

func collectAgents(body []byte) []agentRow {
	var agents []agentRow
	gjson.GetBytes(body, "data").ForEach(func(_, a gjson.Result) bool {
		agents = append(agents, agentRow{
			ID:       a.Get("id").String(),
			Name:     a.Get("attributes.agentName").String(),
			Type:     a.Get("attributes.agentType").String(),
			Status:   a.Get("attributes.status").String(),
			State:    a.Get("attributes.state").String(),
			Metadata: a.Get("attributes.metadata").Raw,
		})
		return true
	})
	return agents
}
