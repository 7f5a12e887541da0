package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// ApplyJQ evaluates a jq expression against a JSON body and returns
// the rendered results, one per line.
func ApplyJQ(body []byte, expr string) (string, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return "", fmt.Errorf("parse jq expression %q: %w", expr, err)
	}

	var input interface{}
	if err := json.Unmarshal(body, &input); err != nil {
		return "", fmt.Errorf("response body is not JSON: %w", err)
	}

	var results []string
	iter := query.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return "", fmt.Errorf("jq evaluation: %w", err)
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		results = append(results, string(out))
	}
	return strings.Join(results, "\n"), nil
}
