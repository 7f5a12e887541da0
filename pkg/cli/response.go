package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-resty/resty/v2"
)

// LogResponse prints the outcome line for an API call followed by the
// request and response bodies, JSON-indented when possible.
func LogResponse(w io.Writer, resp *resty.Response) {
	outcome := Green("SUCCESS")
	if resp.StatusCode() == 0 || resp.StatusCode() >= 400 {
		outcome = Red("ERROR")
	}
	req := resp.Request
	fmt.Fprintf(w, "%s: %d %s %s\n", outcome, resp.StatusCode(), req.Method, req.URL)

	if body := prettyRequestBody(req.Body); body != "" {
		fmt.Fprintf(w, "   %s:\n%s\n", Bold("REQUEST"), indentLines(body, "   "))
	}
	if body := prettyJSON(resp.Body()); body != "" {
		fmt.Fprintf(w, "   %s:\n%s\n", Bold("RESPONSE"), indentLines(body, "   "))
	}
}

// PrintJSON prints a bold title followed by the indented JSON body.
func PrintJSON(w io.Writer, title string, body []byte) {
	if title != "" {
		fmt.Fprintln(w, Bold(title))
	}
	fmt.Fprintln(w, prettyJSON(body))
}

// prettyRequestBody renders the request body resty captured, whatever
// form it was set in.
func prettyRequestBody(body interface{}) string {
	switch b := body.(type) {
	case nil:
		return ""
	case string:
		return prettyJSON([]byte(b))
	case []byte:
		return prettyJSON(b)
	case json.RawMessage:
		return prettyJSON(b)
	default:
		out, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", b)
		}
		return string(out)
	}
}

// prettyJSON indents raw JSON; non-JSON bodies come back as-is.
func prettyJSON(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(trimmed), "", "  "); err != nil {
		return trimmed
	}
	return buf.String()
}

func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
