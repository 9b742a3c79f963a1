package handlers

import "strings"

// splitAndTrim splits raw on sep and drops empty elements, so inputs like
// "1, 2,,3" parse cleanly.
func splitAndTrim(raw, sep string) []string {
	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
