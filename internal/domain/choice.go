package domain

// ChoiceOutcome is the result of one user interaction step. Exactly one of
// Quit, Regenerate, Comment or Execute.
type ChoiceOutcome interface {
	choiceOutcome()
}

// Quit ends the session without running anything.
type Quit struct{}

// Regenerate asks for a fresh batch with the same prompt and feedback.
type Regenerate struct{}

// Comment carries free-text feedback for the next round.
type Comment struct {
	Text string
}

// Execute carries the command the user picked.
type Execute struct {
	Command string
}

func (Quit) choiceOutcome()       {}
func (Regenerate) choiceOutcome() {}
func (Comment) choiceOutcome()    {}
func (Execute) choiceOutcome()    {}
