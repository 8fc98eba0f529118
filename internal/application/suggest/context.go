package suggest

import (
	"fmt"
	"strings"

	"github.com/doeshing/aih-go/internal/domain"
)

const preferencesHeader = "IMPORTANT USER PREFERENCES - This document shows what the user might want. Use this information whenever relevant:"

// assembleContext joins, in order, the preference document, the environment
// context and the feedback block. Empty parts are skipped. The result is ""
// when no part exists, which providers treat as "no context".
func assembleContext(preferences, environment string, state *domain.InteractionState) string {
	var parts []string

	if prefs := strings.TrimSpace(preferences); prefs != "" {
		parts = append(parts, preferencesHeader+"\n\n"+prefs)
	}
	if env := strings.TrimSpace(environment); env != "" {
		parts = append(parts, env)
	}
	if state != nil && state.HasFeedback() {
		parts = append(parts, feedbackBlock(state.PreviousSuggestions, state.PendingComment))
	}

	return strings.Join(parts, "\n\n")
}

func feedbackBlock(previous []string, comment string) string {
	var b strings.Builder
	b.WriteString("Previous suggestions:\n")
	for i, suggestion := range previous {
		fmt.Fprintf(&b, "%d. %s\n", i+1, suggestion)
	}
	b.WriteString("\nUser comment: ")
	b.WriteString(comment)
	return b.String()
}
