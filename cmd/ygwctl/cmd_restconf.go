package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/sensornet/sensorctl/pkg/cli"
	"github.com/sensornet/sensorctl/pkg/util"
)

const restconfData = "/restconf/data/"

// fetchRestconf GETs a RESTCONF path with the forwarded identity
// headers attached. An empty body is reported as "no data" by the
// callers, not as an error.
func fetchRestconf(uri string) (*resty.Response, error) {
	resp, err := app.Client().Get(uri, forwardedIdentity()...)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		cli.LogResponse(os.Stdout, resp)
		return nil, util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode())
	}
	return resp, nil
}

// restconfList pulls the list items out of a RESTCONF container, e.g.
// container "Accedian-session:sessions", item "session".
func restconfList(body []byte, container, item string) []gjson.Result {
	return gjson.GetBytes(body, container+"."+item).Array()
}

var getEndpointsCmd = &cobra.Command{
	Use:   "get-endpoints",
	Short: "List all service endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Fetching all service endpoints...")
		resp, err := fetchRestconf(restconfData + "Accedian-service-endpoint:service-endpoints")
		if err != nil {
			return err
		}
		if len(resp.Body()) == 0 {
			fmt.Println(cli.Yellow("No data."))
			return nil
		}

		endpoints := restconfList(resp.Body(), "Accedian-service-endpoint:service-endpoints", "service-endpoint")
		if len(endpoints) == 0 {
			fmt.Println(cli.Yellow("No service endpoints found."))
			return nil
		}

		fmt.Println(cli.Bold(fmt.Sprintf("Service Endpoints (%d total)", len(endpoints))))
		table := cli.NewTable("#", "NAME", "TYPE", "STATUS", "DESCRIPTION")
		for i, ep := range endpoints {
			table.Row(
				strconv.Itoa(i+1),
				orNA(ep.Get("name").String()),
				orNA(ep.Get("type").String()),
				cli.StatusColor(orNA(ep.Get("status").String())),
				orNA(ep.Get("description").String()),
			)
		}
		table.Flush()

		if cli.PromptYN("Show detailed JSON?") {
			cli.PrintJSON(os.Stdout, "Service Endpoints", resp.Body())
		}
		return nil
	},
}

var getEndpointCmd = &cobra.Command{
	Use:   "get-endpoint <endpoint-id>",
	Short: "Retrieve a specific service endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Fetching endpoint: %s\n", args[0])
		uri := restconfData + "Accedian-service-endpoint:service-endpoints/service-endpoint=" + args[0]
		resp, err := fetchRestconf(uri)
		if err != nil {
			return fmt.Errorf("endpoint %q: %w", args[0], err)
		}
		if len(resp.Body()) == 0 {
			fmt.Println(cli.Yellow("No data."))
			return nil
		}
		cli.PrintJSON(os.Stdout, "Service Endpoint: "+args[0], resp.Body())
		return nil
	},
}

var getAlertsCmd = &cobra.Command{
	Use:   "get-alerts",
	Short: "List all alert policies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Fetching all alert policies...")
		resp, err := fetchRestconf(restconfData + "Accedian-alert:alert-policies")
		if err != nil {
			return err
		}
		if len(resp.Body()) == 0 {
			fmt.Println(cli.Yellow("No data."))
			return nil
		}

		policies := restconfList(resp.Body(), "Accedian-alert:alert-policies", "alert-policy")
		if len(policies) == 0 {
			fmt.Println(cli.Yellow("No alert policies found."))
			return nil
		}

		fmt.Println(cli.Bold(fmt.Sprintf("Alert Policies (%d total)", len(policies))))
		table := cli.NewTable("#", "NAME", "SEVERITY", "STATUS", "CONDITION")
		for i, p := range policies {
			table.Row(
				strconv.Itoa(i+1),
				orNA(p.Get("name").String()),
				severityColor(orNA(p.Get("severity").String())),
				cli.StatusColor(orNA(p.Get("status").String())),
				truncate(orNA(p.Get("condition").String()), 50),
			)
		}
		table.Flush()

		if cli.PromptYN("Show detailed JSON?") {
			cli.PrintJSON(os.Stdout, "Alert Policies", resp.Body())
		}
		return nil
	},
}

var getSessionsCmd = &cobra.Command{
	Use:   "get-sessions",
	Short: "List all sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Fetching all sessions...")
		resp, err := fetchRestconf(restconfData + "Accedian-session:sessions")
		if err != nil {
			return err
		}
		if len(resp.Body()) == 0 {
			fmt.Println(cli.Yellow("No data."))
			return nil
		}

		sessions := restconfList(resp.Body(), "Accedian-session:sessions", "session")
		if len(sessions) == 0 {
			fmt.Println(cli.Yellow("No sessions found."))
			return nil
		}

		fmt.Println(cli.Bold(fmt.Sprintf("Sessions (%d total)", len(sessions))))
		table := cli.NewTable("#", "ID", "NAME", "TYPE", "STATUS")
		for i, s := range sessions {
			table.Row(
				strconv.Itoa(i+1),
				orNA(s.Get("id").String()),
				orNA(s.Get("name").String()),
				orNA(s.Get("type").String()),
				cli.StatusColor(orNA(s.Get("status").String())),
			)
		}
		table.Flush()

		if cli.PromptYN("Show detailed JSON?") {
			cli.PrintJSON(os.Stdout, "Sessions", resp.Body())
		}
		return nil
	},
}

var getSessionCmd = &cobra.Command{
	Use:   "get-session <session-id>",
	Short: "Retrieve a specific session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Fetching session: %s\n", args[0])
		uri := restconfData + "Accedian-session:sessions/session=" + args[0]
		resp, err := fetchRestconf(uri)
		if err != nil {
			return fmt.Errorf("session %q: %w", args[0], err)
		}
		if len(resp.Body()) == 0 {
			fmt.Println(cli.Yellow("No data."))
			return nil
		}
		cli.PrintJSON(os.Stdout, "Session: "+args[0], resp.Body())
		return nil
	},
}

var getServicesCmd = &cobra.Command{
	Use:   "get-services",
	Short: "List all services",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Fetching all services...")
		resp, err := fetchRestconf(restconfData + "Accedian-service:services")
		if err != nil {
			return err
		}
		if len(resp.Body()) == 0 {
			fmt.Println(cli.Yellow("No data."))
			return nil
		}

		services := restconfList(resp.Body(), "Accedian-service:services", "service")
		if len(services) == 0 {
			fmt.Println(cli.Yellow("No services found."))
			return nil
		}

		fmt.Println(cli.Bold(fmt.Sprintf("Services (%d total)", len(services))))
		table := cli.NewTable("#", "ID", "NAME", "TYPE", "STATUS")
		for i, s := range services {
			table.Row(
				strconv.Itoa(i+1),
				orNA(s.Get("id").String()),
				orNA(s.Get("name").String()),
				orNA(s.Get("type").String()),
				cli.StatusColor(orNA(s.Get("status").String())),
			)
		}
		table.Flush()

		if cli.PromptYN("Show detailed JSON?") {
			cli.PrintJSON(os.Stdout, "Services", resp.Body())
		}
		return nil
	},
}

var getMetadataCmd = &cobra.Command{
	Use:   "get-metadata",
	Short: "Retrieve the metadata configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Fetching metadata configuration...")
		resp, err := fetchRestconf(restconfData + "Accedian-metadata:metadata-config")
		if err != nil {
			return err
		}
		if len(resp.Body()) == 0 {
			fmt.Println(cli.Yellow("No data."))
			return nil
		}
		cli.PrintJSON(os.Stdout, "Metadata Configuration", resp.Body())
		return nil
	},
}

// severityColor highlights alert severities, critical loudest.
func severityColor(severity string) string {
	switch strings.ToLower(severity) {
	case "critical":
		return cli.Bold(cli.Red(severity))
	case "major":
		return cli.Red(severity)
	case "minor", "warning":
		return cli.Yellow(severity)
	default:
		return severity
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
