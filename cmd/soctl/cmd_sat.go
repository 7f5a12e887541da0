package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/sensornet/sensorctl/pkg/cli"
	"github.com/sensornet/sensorctl/pkg/util"
)

const y1564SearchAPI = "/nbapiemswsweb/rest/v1/Search/Y1564TestConfig"
const rfc2544SearchAPI = "/nbapiemswsweb/rest/v1/Search/RFC2544TestConfig"

var getSessionsY1564Cmd = &cobra.Command{
	Use:   "get-sessions-y1564",
	Short: "List all Y.1564 test sessions",
	Long: `Fetches every Y.1564 service activation test configuration. Y.1564
is the ITU-T methodology for turning up carrier Ethernet services.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTestSessions("Y.1564", y1564SearchAPI)
	},
}

var getSessionsRFC2544Cmd = &cobra.Command{
	Use:   "get-sessions-rfc2544",
	Short: "List all RFC2544 test sessions",
	Long: `Fetches every RFC2544 benchmarking test configuration: throughput,
latency, frame loss, and back-to-back tests.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTestSessions("RFC2544", rfc2544SearchAPI)
	},
}

var getSessionsSATCmd = &cobra.Command{
	Use:   "get-sessions-sat",
	Short: "List all SAT sessions (Y.1564 + RFC2544)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(cli.Bold("Service Acceptance Testing (SAT) Sessions"))
		fmt.Println("Fetching Y.1564 and RFC2544 test configurations...")

		y1564, err := countTestSessions("Y.1564", y1564SearchAPI)
		if err != nil {
			return err
		}
		fmt.Println()
		rfc2544, err := countTestSessions("RFC2544", rfc2544SearchAPI)
		if err != nil {
			return err
		}

		fmt.Println("\n" + cli.Bold("SAT Sessions Summary"))
		fmt.Printf("  Y.1564 Sessions:  %d\n", y1564)
		fmt.Printf("  RFC2544 Sessions: %d\n", rfc2544)
		fmt.Printf("  Total:            %d\n", y1564+rfc2544)
		return nil
	},
}

func fetchTestSessions(kind, uri string) (*resty.Response, []gjson.Result, error) {
	resp, err := app.Client().Get(uri)
	if err != nil {
		return nil, nil, err
	}
	if resp.IsError() {
		cli.LogResponse(os.Stdout, resp)
		return nil, nil, fmt.Errorf("%s sessions: %w", kind,
			util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode()))
	}
	return resp, gjson.GetBytes(resp.Body(), "content").Array(), nil
}

func printTestSessions(kind, uri string) error {
	fmt.Printf("Fetching %s sessions...\n", kind)
	resp, sessions, err := fetchTestSessions(kind, uri)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println(cli.Yellow(fmt.Sprintf("No %s sessions found.", kind)))
		return nil
	}

	fmt.Println(cli.Bold(fmt.Sprintf("%s Test Sessions (%d total)", kind, len(sessions))))
	table := cli.NewTable("#", "ID", "NAME", "STATUS", "TYPE")
	for i, row := range sessionRows(sessions) {
		table.Row(strconv.Itoa(i+1), row.ID, row.Name, cli.StatusColor(row.Status), row.Type)
	}
	table.Flush()

	if cli.PromptYN("Show detailed JSON?") {
		cli.PrintJSON(os.Stdout, kind+" Sessions", []byte(gjson.GetBytes(resp.Body(), "content").Raw))
	}
	return nil
}

func countTestSessions(kind, uri string) (int, error) {
	fmt.Println(cli.Bold(fmt.Sprintf("--- %s Test Sessions ---", kind)))
	_, sessions, err := fetchTestSessions(kind, uri)
	if err != nil {
		return 0, err
	}
	if len(sessions) == 0 {
		fmt.Println(cli.Yellow(fmt.Sprintf("No %s sessions found.", kind)))
		return 0, nil
	}

	table := cli.NewTable("#", "ID", "NAME", "STATUS")
	for i, row := range sessionRows(sessions) {
		table.Row(strconv.Itoa(i+1), row.ID, row.Name, cli.StatusColor(row.Status))
	}
	table.Flush()
	return len(sessions), nil
}

// sessionRow is one test configuration from a search result.
type sessionRow struct {
	ID     string
	Name   string
	Status string
	Type   string
}

func sessionRows(sessions []gjson.Result) []sessionRow {
	rows := make([]sessionRow, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, sessionRow{
			ID:     orNA(s.Get("id").String()),
			Name:   orNA(s.Get("name").String()),
			Status: orNA(s.Get("status").String()),
			Type:   orNA(s.Get("testType").String()),
		})
	}
	return rows
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
