// tenantinfo — standalone tenant onboarding lookup
//
// Usage:
//
//	tenantinfo [TENANT_IP]           Fetch tenant id and name (default 10.250.1.192)
//	tenantinfo --raw [TENANT_IP]     Print the result as JSON
//	tenantinfo --version             Print version information
//
// tenantinfo is self-contained: it needs no profile, settings file, or
// login, just network reachability to the tenant's onboarding API.
// Connection failures are reported in the output rather than as a
// non-zero exit, so the tool can probe hosts from scripts.
package main

import (
	"crypto/tls"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/sensornet/sensorctl/pkg/version"
)

const tenantInfoURI = "/api/v1/onboarding/tenant-info"
const defaultTenantIP = "10.250.1.192"

type tenantInfo struct {
	TenantURL  string `json:"tenantUrl,omitempty"`
	TenantID   string `json:"tenantId,omitempty"`
	TenantName string `json:"tenantName,omitempty"`
	Error      string `json:"error,omitempty"`
	Message    string `json:"message,omitempty"`
}

func getTenantInfo(url string) tenantInfo {
	client := resty.New().SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	resp, err := client.R().Get(url + tenantInfoURI)
	if err != nil {
		return tenantInfo{Error: "Connection error", Message: err.Error()}
	}
	attrs := gjson.GetBytes(resp.Body(), "data.attributes")
	return tenantInfo{
		TenantURL:  url,
		TenantID:   attrs.Get("tenantId").String(),
		TenantName: attrs.Get("tenantName").String(),
	}
}

func main() {
	raw := flag.Bool("raw", false, "print raw JSON response")
	flag.BoolVar(raw, "r", false, "print raw JSON response (shorthand)")
	showVersion := flag.Bool("version", false, "print version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: tenantinfo [--raw] [TENANT_IP]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("tenantinfo %s (%s)\n", version.Version, version.GitCommit)
		os.Exit(0)
	}

	ip := defaultTenantIP
	if flag.NArg() > 0 {
		ip = flag.Arg(0)
	}

	info := getTenantInfo("https://" + ip)
	if *raw {
		out, _ := json.MarshalIndent(info, "", "  ")
		fmt.Println(string(out))
		return
	}
	fmt.Printf("URL:        %s\n", info.TenantURL)
	fmt.Printf("tenantId:   %s\n", info.TenantID)
	fmt.Printf("tenantName: %s\n", info.TenantName)
	if info.Error != "" {
		fmt.Printf("error:      %s (%s)\n", info.Error, info.Message)
	}
}
