// Package execute confirms, records and runs a chosen command.
package execute

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

// Service implements ports.Executor.
type Service struct {
	Confirmer ports.Confirmer
	History   ports.HistoryRepository
	Runner    ports.CommandRunner
	Security  ports.SecurityService
	Notifier  ports.Notifier
	Logger    ports.Logger
	Clock     func() time.Time
}

// Execute asks for confirmation unless skipConfirmation is set, appends the
// command to history and hands it to the runner. A declined confirmation
// prints "Aborted.", has no side effect and reports false. History failures
// are reported but never stop execution.
func (s *Service) Execute(ctx context.Context, command string, skipConfirmation bool) (bool, error) {
	if s.Runner == nil || s.Notifier == nil || s.Logger == nil {
		return false, errors.New("execute.Service dependencies not satisfied")
	}
	command = strings.TrimSpace(command)
	if command == "" {
		return false, errors.New("command must not be empty")
	}

	risk := s.assess(command)

	if skipConfirmation {
		for _, reason := range risk.Reasons {
			s.Notifier.Warn(reason)
		}
	} else {
		if s.Confirmer == nil {
			return false, errors.New("execute.Service: confirmation required but no confirmer configured")
		}
		ok, err := s.Confirmer.Confirm(ctx, command, risk)
		if err != nil {
			return false, err
		}
		if !ok {
			s.Logger.Info("execution declined", map[string]interface{}{"command": command})
			s.Notifier.Notice("Aborted.")
			return false, nil
		}
	}

	s.record(command)

	if s.Runner.Mode() == domain.ExecutionRun {
		s.Notifier.Notice("Running...")
	}
	s.Logger.Info("executing command", map[string]interface{}{
		"command": command,
		"mode":    string(s.Runner.Mode()),
		"risk":    string(risk.Level),
	})
	return true, s.Runner.Run(ctx, command)
}

func (s *Service) assess(command string) domain.RiskAssessment {
	if s.Security == nil {
		return domain.RiskAssessment{Level: domain.RiskSafe}
	}
	risk, err := s.Security.Evaluate(command)
	if err != nil {
		s.Logger.Warn("guardrail evaluation failed", map[string]interface{}{"error": err.Error()})
		return domain.RiskAssessment{Level: domain.RiskSafe}
	}
	return risk
}

func (s *Service) record(command string) {
	if s.History == nil {
		return
	}
	now := time.Now
	if s.Clock != nil {
		now = s.Clock
	}
	if err := s.History.Append(domain.NewHistoryEntry(now(), command)); err != nil {
		s.Logger.Error("history append failed", err, map[string]interface{}{"path": s.History.Path()})
		s.Notifier.Warn("Could not save command to history: " + err.Error())
	}
}
