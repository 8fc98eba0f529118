package domain

// SuggestionRequest is what the interaction loop hands to a provider.
// An empty Context means no context at all; providers must then omit the
// context section from the request instead of sending an empty one.
type SuggestionRequest struct {
	Prompt         string
	Context        string
	Model          string
	MaxSuggestions int
}

// HasContext reports whether any context was assembled.
func (r SuggestionRequest) HasContext() bool {
	return r.Context != ""
}

// InteractionState is the mutable state of one invocation. It is never
// persisted.
type InteractionState struct {
	OriginalPrompt      string
	PreviousSuggestions []string
	PendingComment      string
}

// NewInteractionState starts a session for prompt.
func NewInteractionState(prompt string) *InteractionState {
	return &InteractionState{OriginalPrompt: prompt}
}

// Present records the batch just shown. The previous batch is discarded.
func (s *InteractionState) Present(suggestions []string) {
	s.PreviousSuggestions = append([]string(nil), suggestions...)
}

// SetComment replaces the pending comment.
func (s *InteractionState) SetComment(text string) {
	s.PendingComment = text
}

// HasFeedback reports whether both a previous batch and a comment exist.
func (s *InteractionState) HasFeedback() bool {
	return len(s.PreviousSuggestions) > 0 && s.PendingComment != ""
}

// LoopOutcome describes how an interaction loop ended.
type LoopOutcome string

const (
	OutcomeAborted       LoopOutcome = "aborted"
	OutcomeNoSuggestions LoopOutcome = "no_suggestions"
	OutcomeExecuted      LoopOutcome = "executed"
	OutcomeDeclined      LoopOutcome = "declined"
)

// LoopResult summarizes a finished loop.
type LoopResult struct {
	Outcome LoopOutcome
	Command string
	Rounds  int
}
