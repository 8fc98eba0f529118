package ai

import (
	"strings"

	"github.com/samber/lo"
)

// splitSuggestions turns raw model output into at most max suggestions:
// one per non-empty trimmed line, with markdown fence lines dropped.
func splitSuggestions(text string, max int) []string {
	lines := lo.FilterMap(strings.Split(text, "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != "" && !strings.HasPrefix(line, "```")
	})
	if max > 0 && len(lines) > max {
		lines = lines[:max]
	}
	return lines
}

func valueOrDefault(value string, def string) string {
	if value == "" {
		return def
	}
	return value
}
