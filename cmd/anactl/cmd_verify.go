package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/sensornet/sensorctl/pkg/cli"
	"github.com/sensornet/sensorctl/pkg/util"
)

// Metadata categories every tenant needs before session metrics can
// be correlated back to services.
var expectedCategories = []string{
	"service_id",
	"ne_id_sender",
	"service_name",
	"ne_id_reflector",
}

// TWAMP stateful metrics the ingestion profile has to enable for the
// standard dashboards to populate.
var expectedTwampSFMetrics = []string{
	"delayAvg", "delayMax", "delayMin",
	"delayP25", "delayP50", "delayP75", "delayP95",
	"delayPHi", "delayPLo", "delayPMi",
	"delayStdDevAvg", "delayVarAvg", "delayVarMax", "delayVarMin",
	"delayVarP25", "delayVarP50", "delayVarP75", "delayVarP95",
	"delayVarPHi", "delayVarPLo", "delayVarPMi",
	"duration", "fCongestion",
	"jitterAvg", "jitterMax", "jitterP95",
	"jitterPHi", "jitterPLo", "jitterPMi", "jitterStdDev",
	"lostBurstMax", "packetsLost", "packetsLostPct", "packetsReceived",
	"periodsLost", "syncQuality", "syncState",
}

var verifyMetadataCategoriesCmd = &cobra.Command{
	Use:   "verify-metadata-categories",
	Short: "Check that the required metadata categories are active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := fetchTenantMetadata()
		if err != nil {
			return err
		}

		found := activeCategoryNames(resp.Body())
		absent := missingNames(expectedCategories, found)

		fmt.Println(cli.Bold("Metadata Category Verification"))
		table := cli.NewTable("CATEGORY", "STATUS")
		for _, name := range expectedCategories {
			if contains(found, name) {
				table.Row(name, cli.Green("active"))
			} else {
				table.Row(name, cli.Red("missing"))
			}
		}
		table.Flush()

		if len(absent) == 0 {
			fmt.Println("\n" + cli.Green("PASS!") + " All required metadata categories are active.")
			return nil
		}
		fmt.Printf("\n%s %d required category/categories missing or inactive.\n",
			cli.Red("FAIL!"), len(absent))
		return fmt.Errorf("metadata categories %v not active: %w", absent, util.ErrNotFound)
	},
}

var verifyTwampSFMetricsCmd = &cobra.Command{
	Use:   "verify-twampsf-metrics",
	Short: "Check the TWAMP stateful metrics enabled for ingestion",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.Client().Get("/api/v2/ingestion-profiles")
		if err != nil {
			return err
		}
		if resp.IsError() {
			cli.LogResponse(os.Stdout, resp)
			return util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode())
		}

		enabled := enabledTwampSFMetrics(resp.Body())
		absent := missingNames(expectedTwampSFMetrics, enabled)

		fmt.Println(cli.Bold("TWAMP-SF Ingestion Metrics"))
		table := cli.NewTable("METRIC", "STATUS")
		for _, name := range expectedTwampSFMetrics {
			if contains(enabled, name) {
				table.Row(name, cli.Green("enabled"))
			} else {
				table.Row(name, cli.Red("disabled"))
			}
		}
		table.Flush()

		fmt.Printf("\n%d/%d expected metrics enabled.\n",
			len(expectedTwampSFMetrics)-len(absent), len(expectedTwampSFMetrics))
		if len(absent) == 0 {
			fmt.Println(cli.Green("PASS!") + " All expected TWAMP-SF metrics are enabled.")
			return nil
		}
		fmt.Println(cli.Red("FAIL!") + " Some expected TWAMP-SF metrics are disabled.")
		return fmt.Errorf("twamp-sf metrics %v not enabled: %w", absent, util.ErrNotFound)
	},
}

// activeCategoryNames extracts the names of the active entries from
// the tenant metadata category map.
func activeCategoryNames(body []byte) []string {
	var names []string
	gjson.GetBytes(body, "data.attributes.metadataCategoryMap").ForEach(func(_, entry gjson.Result) bool {
		if entry.Get("isActive").Bool() {
			if name := entry.Get("name").String(); name != "" {
				names = append(names, name)
			}
		}
		return true
	})
	sort.Strings(names)
	return names
}

// enabledTwampSFMetrics walks every ingestion profile and collects the
// metric names flagged true in the twamp-sf metric map.
func enabledTwampSFMetrics(body []byte) []string {
	seen := map[string]bool{}
	gjson.GetBytes(body, "data").ForEach(func(_, profile gjson.Result) bool {
		metricMap := profile.Get("attributes.metrics.vendorMap.accedian-twamp.monitoredObjectTypeMap.twamp-sf.metricMap")
		metricMap.ForEach(func(name, enabled gjson.Result) bool {
			if enabled.Bool() {
				seen[name.String()] = true
			}
			return true
		})
		return true
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func missingNames(expected, found []string) []string {
	var missing []string
	for _, name := range expected {
		if !contains(found, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
