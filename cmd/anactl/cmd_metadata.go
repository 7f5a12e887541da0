package main

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/sensornet/sensorctl/pkg/cli"
	"github.com/sensornet/sensorctl/pkg/orchestrator"
	"github.com/sensornet/sensorctl/pkg/util"
)

const tenantMetadataAPI = "/api/v2/tenant-metadata"

const caseSensitivePath = "data.attributes.storeMetadataValueCaseSensitive"

var getMetadataMappingCmd = &cobra.Command{
	Use:   "get-metadata-mapping",
	Short: "Show the active metrics metadata category mapping",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.Client().Get("/api/v2/metadata-category-mappings/activeMetrics")
		if err != nil {
			return err
		}
		if resp.IsError() {
			cli.LogResponse(os.Stdout, resp)
			return util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode())
		}
		cli.LogResponse(os.Stdout, resp)
		return nil
	},
}

var getTenantMetadataCmd = &cobra.Command{
	Use:   "get-tenant-metadata",
	Short: "Retrieve the tenant metadata document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := fetchTenantMetadata()
		if err != nil {
			return err
		}
		cli.LogResponse(os.Stdout, resp)
		return nil
	},
}

var updateTenantMetadataCmd = &cobra.Command{
	Use:   "update-tenant-metadata <file>",
	Short: "Patch the tenant metadata from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read metadata file: %w", err)
		}
		tenantID, err := configuredTenantID()
		if err != nil {
			return err
		}
		resp, err := app.Client().Patch(tenantMetadataAPI+"/"+tenantID, orchestrator.WithBody(body))
		if err != nil {
			return err
		}
		cli.LogResponse(os.Stdout, resp)
		if resp.IsError() {
			return util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode())
		}
		fmt.Println(cli.Green("Tenant metadata updated."))
		return nil
	},
}

var patchCaseSensitiveCmd = &cobra.Command{
	Use:   "patch-case-sensitive",
	Short: "Enable case-sensitive metadata value storage",
	Long: `Fetches the tenant metadata and, unless already enabled, patches
storeMetadataValueCaseSensitive to true.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := fetchTenantMetadata()
		if err != nil {
			return err
		}

		current := gjson.GetBytes(resp.Body(), caseSensitivePath)
		if current.Exists() && current.Bool() {
			fmt.Println(cli.Green("storeMetadataValueCaseSensitive is already true, nothing to do."))
			return nil
		}

		patched, err := sjson.SetBytes(resp.Body(), caseSensitivePath, true)
		if err != nil {
			return fmt.Errorf("patch metadata document: %w", err)
		}

		tenantID, err := configuredTenantID()
		if err != nil {
			return err
		}
		patchResp, err := app.Client().Patch(tenantMetadataAPI+"/"+tenantID, orchestrator.WithBody(patched))
		if err != nil {
			return err
		}
		cli.LogResponse(os.Stdout, patchResp)
		if patchResp.IsError() {
			return util.NewRequestError(patchResp.Request.Method, patchResp.Request.URL, patchResp.StatusCode())
		}
		fmt.Println(cli.Green("storeMetadataValueCaseSensitive set to true."))
		return nil
	},
}

func configuredTenantID() (string, error) {
	id := app.Client().Config().TenantID
	if id == "" {
		return "", fmt.Errorf("no tenant id configured for this environment: %w", util.ErrInvalidProfile)
	}
	return id, nil
}

func fetchTenantMetadata() (*resty.Response, error) {
	tenantID, err := configuredTenantID()
	if err != nil {
		return nil, err
	}
	resp, err := app.Client().Get(tenantMetadataAPI + "/" + tenantID)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		cli.LogResponse(os.Stdout, resp)
		return nil, util.NewRequestError(resp.Request.Method, resp.Request.URL, resp.StatusCode())
	}
	return resp, nil
}
