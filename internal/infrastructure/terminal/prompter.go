package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

// Prompter implements ports.Confirmer on the terminal.
type Prompter struct {
	reader   *LineReader
	renderer *Renderer
}

// NewPrompter constructs a prompter sharing the chooser's line reader.
func NewPrompter(reader *LineReader, renderer *Renderer) *Prompter {
	return &Prompter{reader: reader, renderer: renderer}
}

// Confirm shows guardrail findings, if any, then asks whether to run
// command. Only "y" or "yes" (any case) proceed.
func (p *Prompter) Confirm(ctx context.Context, command string, risk domain.RiskAssessment) (bool, error) {
	if risk.IsRisky() {
		p.renderer.Risk(risk)
	}
	p.renderer.Prompt(fmt.Sprintf("Execute '%s'? [y/N]: ", command))

	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

var _ ports.Confirmer = (*Prompter)(nil)
