package tool

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sensornet/sensorctl/pkg/cli"
	"github.com/sensornet/sensorctl/pkg/orchestrator"
)

// AddVerbCommands registers the generic get/post/put/patch/delete
// commands. The extras callback supplies per-request options the tool
// wants on every generic call; nil is fine.
func (t *Tool) AddVerbCommands(extras func() []orchestrator.RequestOption) {
	t.Root.AddGroup(&cobra.Group{ID: "verb", Title: "Generic Requests:"})
	for _, method := range []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
	} {
		t.Root.AddCommand(t.newVerbCmd(method, extras))
	}
}

func (t *Tool) newVerbCmd(method string, extras func() []orchestrator.RequestOption) *cobra.Command {
	var body, bodyFile, jqExpr string

	hasBody := method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch

	cmd := &cobra.Command{
		Use:     strings.ToLower(method) + " <uri>",
		Short:   method + " an arbitrary API path",
		GroupID: "verb",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri := args[0]
			if !strings.HasPrefix(uri, "/") {
				uri = "/" + uri
			}

			var opts []orchestrator.RequestOption
			if extras != nil {
				opts = append(opts, extras()...)
			}
			payload, err := readBody(body, bodyFile)
			if err != nil {
				return err
			}
			if payload != "" {
				opts = append(opts, orchestrator.WithBody(payload))
			}

			resp, err := t.client.Do(method, uri, opts...)
			if err != nil {
				return err
			}
			if jqExpr != "" {
				out, err := cli.ApplyJQ(resp.Body(), jqExpr)
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}
			cli.LogResponse(os.Stdout, resp)
			return nil
		},
	}

	if hasBody {
		cmd.Flags().StringVar(&body, "body", "", "Inline JSON request body")
		cmd.Flags().StringVar(&bodyFile, "body-file", "", "File containing the JSON request body")
	}
	cmd.Flags().StringVar(&jqExpr, "jq", "", "jq expression applied to the response body")
	return cmd
}

// readBody resolves the request body from the --body/--body-file flags.
func readBody(inline, file string) (string, error) {
	switch {
	case inline != "" && file != "":
		return "", fmt.Errorf("--body and --body-file are mutually exclusive")
	case inline != "":
		return inline, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading body file: %w", err)
		}
		return string(data), nil
	}
	return "", nil
}
