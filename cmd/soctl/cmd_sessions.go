package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sensornet/sensorctl/pkg/cli"
	"github.com/sensornet/sensorctl/pkg/util"
)

var getSessionEchoCmd = &cobra.Command{
	Use:   "get-session-echo <session-id>",
	Short: "Retrieve a specific Echo session",
	Long: `Fetches an Echo session by identifier. Echo sessions cover basic
connectivity and latency measurements.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSession("Echo", "/nbapi/session/echo/"+args[0], args[0])
	},
}

var getSessionTwampCmd = &cobra.Command{
	Use:   "get-session-twamp <session-id>",
	Short: "Retrieve a specific TWAMP session",
	Long: `Fetches a TWAMP session by identifier. TWAMP sessions measure
delay, jitter, and packet loss between a sender and a reflector.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSession("TWAMP", "/nbapi/session/twamp/"+args[0], args[0])
	},
}

func printSession(kind, uri, id string) error {
	fmt.Printf("Fetching %s session: %s\n", kind, id)
	resp, err := app.Client().Get(uri)
	if err != nil {
		return err
	}
	if resp.IsError() {
		cli.LogResponse(os.Stdout, resp)
		return fmt.Errorf("%s session %q: %w", kind, id,
			util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode()))
	}
	cli.PrintJSON(os.Stdout, fmt.Sprintf("%s Session: %s", kind, id), resp.Body())
	return nil
}
