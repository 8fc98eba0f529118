package terminal

import (
	"context"
	"strconv"
	"strings"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

type choiceKind int

const (
	choiceInvalid choiceKind = iota
	choiceQuit
	choiceRegenerate
	choiceComment
	choiceSelect
)

// parseChoice classifies one menu answer for a list of n suggestions. For
// choiceSelect the second value is the zero-based index.
func parseChoice(input string, n int) (choiceKind, int) {
	token := strings.ToLower(strings.TrimSpace(input))
	switch token {
	case "", "q":
		return choiceQuit, 0
	case "r":
		return choiceRegenerate, 0
	case "c":
		return choiceComment, 0
	}
	if !isDigits(token) {
		return choiceInvalid, 0
	}
	i, err := strconv.Atoi(token)
	switch {
	case err != nil:
		return choiceInvalid, 0
	case i == 0:
		return choiceQuit, 0
	case i >= 1 && i <= n:
		return choiceSelect, i - 1
	default:
		return choiceInvalid, 0
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Chooser presents the numbered suggestions and menu and maps the answer to
// a domain.ChoiceOutcome. Malformed answers re-prompt; only cancellation
// produces an error.
type Chooser struct {
	reader   *LineReader
	renderer *Renderer
}

// NewChooser builds a chooser reading from reader and writing via renderer.
func NewChooser(reader *LineReader, renderer *Renderer) *Chooser {
	return &Chooser{reader: reader, renderer: renderer}
}

// Choose implements ports.Chooser.
func (c *Chooser) Choose(ctx context.Context, suggestions []string) (domain.ChoiceOutcome, error) {
	for {
		c.renderer.Menu(suggestions)
		c.renderer.Prompt("\nYour choice: ")

		answer, err := c.reader.ReadLine(ctx)
		if err != nil {
			return nil, err
		}

		kind, idx := parseChoice(answer, len(suggestions))
		switch kind {
		case choiceQuit:
			return domain.Quit{}, nil
		case choiceRegenerate:
			return domain.Regenerate{}, nil
		case choiceSelect:
			return domain.Execute{Command: suggestions[idx]}, nil
		case choiceComment:
			c.renderer.Prompt("Enter your comment or clarification: ")
			comment, err := c.reader.ReadLine(ctx)
			if err != nil {
				return nil, err
			}
			if comment != "" {
				return domain.Comment{Text: comment}, nil
			}
		default:
			c.renderer.Warn("Invalid choice. Please try again.")
		}
	}
}

var _ ports.Chooser = (*Chooser)(nil)
