package main

import (
	"sort"
	"strings"
)

// filterSessionIDs returns the session IDs matching the prefix. The
// literal prefix "all" matches everything; empty IDs are dropped.
func filterSessionIDs(ids []string, prefix string) []string {
	var matched []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if prefix == "all" || strings.HasPrefix(id, prefix) {
			matched = append(matched, id)
		}
	}
	return matched
}

// sortAgents orders the inventory by agent type, then metadata, so
// agents of the same kind group together.
func sortAgents(agents []agentRow) {
	sort.Slice(agents, func(i, j int) bool {
		if agents[i].Type != agents[j].Type {
			return agents[i].Type < agents[j].Type
		}
		return agents[i].Metadata < agents[j].Metadata
	})
}
