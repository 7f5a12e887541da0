package cli

import "strings"

// StatusColor colorizes well-known status and severity strings for
// table cells. Unknown values pass through unchanged.
func StatusColor(status string) string {
	switch strings.ToLower(status) {
	case "running", "active", "connected", "online", "enabled", "up", "ok", "completed", "clear":
		return Green(status)
	case "pending", "starting", "degraded", "warning", "minor":
		return Yellow(status)
	case "failed", "error", "disconnected", "offline", "down", "critical", "major":
		return Red(status)
	case "stopped", "disabled", "inactive":
		return Dim(status)
	default:
		return status
	}
}
