package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/sensornet/sensorctl/pkg/cli"
	"github.com/sensornet/sensorctl/pkg/util"
)

const monitoredObjectsAPI = "/api/v2/monitored-objects"

var getMonitoredObjectsCmd = &cobra.Command{
	Use:   "get-monitored-objects",
	Short: "List all monitored objects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.Client().Get(monitoredObjectsAPI)
		if err != nil {
			return err
		}
		if resp.IsError() {
			cli.LogResponse(os.Stdout, resp)
			return util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode())
		}

		objects := gjson.GetBytes(resp.Body(), "data").Array()
		if len(objects) == 0 {
			fmt.Println(cli.Yellow("No monitored objects found"))
			return nil
		}

		fmt.Println(cli.Bold(fmt.Sprintf("Monitored Objects (%d total)", len(objects))))
		table := cli.NewTable("ID", "TYPE", "NAME")
		for _, o := range objects {
			table.Row(
				o.Get("id").String(),
				o.Get("type").String(),
				o.Get("attributes.name").String(),
			)
		}
		table.Flush()
		return nil
	},
}

var getMonitoredObjectCmd = &cobra.Command{
	Use:   "get-monitored-object <object-id>",
	Short: "Retrieve a specific monitored object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.Client().Get(monitoredObjectsAPI + "/" + args[0])
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("monitored object %q: %w", args[0],
				util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode()))
		}
		cli.LogResponse(os.Stdout, resp)
		return nil
	},
}
