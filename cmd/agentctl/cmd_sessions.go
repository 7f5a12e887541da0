package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/sensornet/sensorctl/pkg/cli"
	"github.com/sensornet/sensorctl/pkg/util"
)

var getSessionsCmd = &cobra.Command{
	Use:   "get-sessions",
	Short: "Retrieve all sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.Client().Get(agentAPI + "/sessions")
		if err != nil {
			return err
		}
		cli.LogResponse(os.Stdout, resp)
		return nil
	},
}

var getSessionStatusCmd = &cobra.Command{
	Use:   "get-session-status <session-id>",
	Short: "Retrieve status for a specific session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.Client().Get(agentAPI + "/sessionstatus/" + args[0])
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("session %q: %w", args[0],
				util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode()))
		}
		cli.LogResponse(os.Stdout, resp)
		return nil
	},
}

var getSessionsStatusCmd = &cobra.Command{
	Use:   "get-sessions-status",
	Short: "Show the status of all sessions as a table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.Client().Get(agentAPI + "/sessionstatuses")
		if err != nil {
			return err
		}
		if resp.IsError() {
			cli.LogResponse(os.Stdout, resp)
			return util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode())
		}

		sessions := gjson.GetBytes(resp.Body(), "data")
		if !sessions.Exists() || len(sessions.Array()) == 0 {
			fmt.Println(cli.Yellow("No sessions found."))
			return nil
		}

		fmt.Println(cli.Bold("Sessions Status"))
		table := cli.NewTable("SESSION ID", "STATUS", "STATUS MESSAGE")
		sessions.ForEach(func(_, s gjson.Result) bool {
			table.Row(
				s.Get("sessionId").String(),
				cli.StatusColor(s.Get("status").String()),
				s.Get("statusMessage").String(),
			)
			return true
		})
		table.Flush()
		return nil
	},
}

var deleteSessionsCmd = &cobra.Command{
	Use:   "delete-sessions <prefix>",
	Short: `Delete sessions matching a prefix ("all" deletes everything)`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := args[0]

		resp, err := app.Client().Get(agentAPI + "/sessions")
		if err != nil {
			return err
		}
		if resp.IsError() {
			cli.LogResponse(os.Stdout, resp)
			return util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode())
		}

		var ids []string
		gjson.GetBytes(resp.Body(), "data").ForEach(func(_, s gjson.Result) bool {
			ids = append(ids, s.Get("attributes.session.sessionId").String())
			return true
		})

		matched := filterSessionIDs(ids, prefix)
		if len(matched) == 0 {
			fmt.Println(cli.Yellow(fmt.Sprintf("No sessions found matching prefix %q", prefix)))
			return nil
		}

		fmt.Printf("Found %d session(s) to delete:\n", len(matched))
		for _, id := range matched {
			fmt.Printf("  - %s\n", id)
		}
		fmt.Println("\n" + cli.Red("This action cannot be undone!"))
		if !cli.Confirm("Proceed with deletion?") {
			fmt.Println(cli.Yellow("Deletion cancelled."))
			return nil
		}

		deleted := 0
		for _, id := range matched {
			fmt.Printf("Deleting session: %s ... ", id)
			resp, err := app.Client().Delete(agentAPI + "/session/" + id)
			if err != nil {
				return err
			}
			if resp.IsError() {
				fmt.Println(cli.Red("failed"))
				cli.LogResponse(os.Stdout, resp)
				continue
			}
			fmt.Println(cli.Green("ok"))
			deleted++
		}
		fmt.Printf("\nDeleted %d/%d session(s)\n", deleted, len(matched))
		return nil
	},
}
