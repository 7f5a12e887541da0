package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/sensornet/sensorctl/pkg/cli"
	"github.com/sensornet/sensorctl/pkg/orchestrator"
	"github.com/sensornet/sensorctl/pkg/util"
)

const alertingV2 = "/api/v2/policies/alerting"
const alertingV3 = "/api/v3/policies/alerting"

var getAlertingPoliciesCmd = &cobra.Command{
	Use:   "get-alerting-policies",
	Short: "List all alerting policies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.Client().Get(alertingV2)
		if err != nil {
			return err
		}
		if resp.IsError() {
			cli.LogResponse(os.Stdout, resp)
			return util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode())
		}

		policies := gjson.GetBytes(resp.Body(), "data").Array()
		if len(policies) == 0 {
			fmt.Println(cli.Yellow("No alerting policies found"))
			return nil
		}

		fmt.Println(cli.Bold(fmt.Sprintf("Alerting Policies (%d total)", len(policies))))
		table := cli.NewTable("ID", "NAME", "STATUS", "TAGS")
		for _, p := range policies {
			var tags []string
			p.Get("attributes.tags").ForEach(func(_, t gjson.Result) bool {
				tags = append(tags, t.String())
				return true
			})
			table.Row(
				p.Get("id").String(),
				p.Get("attributes.name").String(),
				cli.StatusColor(p.Get("attributes.status").String()),
				strings.Join(tags, ", "),
			)
		}
		table.Flush()
		return nil
	},
}

var getAlertingPolicyCmd = &cobra.Command{
	Use:   "get-alerting-policy <tag>",
	Short: "Show alerting policies carrying a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := args[0]
		resp, err := app.Client().Get(alertingV2, orchestrator.WithQuery(map[string]string{"tag": tag}))
		if err != nil {
			return err
		}
		if resp.IsError() {
			cli.LogResponse(os.Stdout, resp)
			return util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode())
		}
		if len(gjson.GetBytes(resp.Body(), "data").Array()) == 0 {
			fmt.Println(cli.Yellow(fmt.Sprintf("No alerting policies found with tag %q", tag)))
			return nil
		}
		fmt.Println(cli.Bold(fmt.Sprintf("Alerting Policies with tag %q:", tag)))
		cli.LogResponse(os.Stdout, resp)
		return nil
	},
}

var deleteAllPoliciesCmd = &cobra.Command{
	Use:   "delete-all-policies",
	Short: "Delete every alerting policy (v2 and v3 APIs)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Fetching all policies...")
		resp, err := app.Client().Get(alertingV2)
		if err != nil {
			return err
		}
		if resp.IsError() {
			cli.LogResponse(os.Stdout, resp)
			return util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode())
		}

		var ids []string
		gjson.GetBytes(resp.Body(), "data").ForEach(func(_, p gjson.Result) bool {
			if id := p.Get("id").String(); id != "" {
				ids = append(ids, id)
			}
			return true
		})
		if len(ids) == 0 {
			fmt.Println(cli.Yellow("No policies found to delete"))
			return nil
		}

		fmt.Printf("Found %d policy/policies:\n", len(ids))
		for _, id := range ids {
			fmt.Printf("  - %s\n", id)
		}
		fmt.Println("\n" + cli.Red("This action cannot be undone!"))
		if !cli.Confirm("Proceed with deletion?") {
			fmt.Println(cli.Yellow("Deletion cancelled."))
			return nil
		}

		// Policies may live in either API generation; try both for
		// each id and report per attempt.
		for _, id := range ids {
			if err := deletePolicy(id, alertingV2+"/"+id, "v2", nil); err != nil {
				return err
			}
			v3Query := orchestrator.WithQuery(map[string]string{"ignoreAlerts": "true"})
			if err := deletePolicy(id, alertingV3+"/"+id, "v3", v3Query); err != nil {
				return err
			}
		}
		fmt.Println("\n" + cli.Green("Policy deletion completed."))
		return nil
	},
}

func deletePolicy(id, uri, api string, opt orchestrator.RequestOption) error {
	var opts []orchestrator.RequestOption
	if opt != nil {
		opts = append(opts, opt)
	}
	resp, err := app.Client().Delete(uri, opts...)
	if err != nil {
		return err
	}
	if resp.IsError() {
		fmt.Printf("%s %s deletion failed for %s: %d\n", cli.Yellow("!"), api, id, resp.StatusCode())
		return nil
	}
	fmt.Printf("%s Deleted %s via %s API\n", cli.Green("+"), id, api)
	return nil
}
