// Package doctor diagnoses the local setup: configuration, provider
// credentials, history storage, preferences, guardrail rules and the shell
// function used in handoff mode.
package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

// RuleSource describes the loaded guardrail rules.
type RuleSource interface {
	RuleCount() int
	Source() string
}

// PreferenceFile is a preference source backed by a file.
type PreferenceFile interface {
	ports.PreferenceSource
	Path() string
}

// ShellStatus reports whether the handoff shell function is installed.
type ShellStatus interface {
	Status(shell domain.ShellName) domain.ShellStatus
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Registry       ports.ProviderRegistry
	History        ports.HistoryRepository
	Preferences    PreferenceFile
	Guardrail      RuleSource
	Shell          ShellStatus
	ShellName      domain.ShellName
}

// Run executes checks and returns a report. A configuration that cannot be
// loaded ends the run early and is also returned as the error.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config", err.Error()))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config", fmt.Sprintf("model %s, execution mode %s", cfg.GetModel(), cfg.GetExecutionMode())))

	checks = append(checks, s.credentialCheck(cfg))
	if s.History != nil {
		checks = append(checks, s.historyCheck(cfg))
	}
	if s.Preferences != nil {
		checks = append(checks, s.preferenceCheck())
	}
	if s.Guardrail != nil {
		checks = append(checks, ok("Guardrail", fmt.Sprintf("%d rules from %s", s.Guardrail.RuleCount(), s.Guardrail.Source())))
	} else {
		checks = append(checks, warn("Guardrail", "rules not loaded"))
	}
	if cfg.GetExecutionMode() == domain.ExecutionHandoff && s.Shell != nil {
		checks = append(checks, s.shellCheck())
	}

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) credentialCheck(cfg domain.Config) domain.HealthCheck {
	if s.Registry == nil {
		return warn("Credentials", "provider registry not initialized")
	}
	provider, err := s.Registry.Resolve(cfg.GetModel())
	if err != nil {
		var cfgErr *domain.ConfigError
		if errors.As(err, &cfgErr) {
			return fail("Credentials", cfgErr.Error())
		}
		return fail("Credentials", err.Error())
	}
	if provider.Name() == "echo" {
		return warn("Credentials", fmt.Sprintf("unknown model prefix %q, using the offline echo backend", cfg.ProviderPrefix()))
	}
	return ok("Credentials", fmt.Sprintf("%s backend ready", provider.Name()))
}

func (s *Service) historyCheck(cfg domain.Config) domain.HealthCheck {
	entries, err := s.History.Entries(0)
	if err != nil {
		return warn("History", fmt.Sprintf("%s: %v", s.History.Path(), err))
	}
	return ok("History", fmt.Sprintf("%s (%s, %d/%d entries)", s.History.Path(), cfg.GetHistoryBackend(), len(entries), cfg.GetMaxCommandHistory()))
}

func (s *Service) preferenceCheck() domain.HealthCheck {
	text, err := s.Preferences.Load()
	switch {
	case err != nil:
		return warn("Preferences", err.Error())
	case text == "":
		return ok("Preferences", fmt.Sprintf("none (optional, %s)", s.Preferences.Path()))
	default:
		return ok("Preferences", s.Preferences.Path())
	}
}

func (s *Service) shellCheck() domain.HealthCheck {
	status := s.Shell.Status(s.ShellName)
	switch {
	case status.Error != "":
		return warn("Shell integration", status.Error)
	case status.LinePresent:
		return ok("Shell integration", fmt.Sprintf("%s function sourced from %s", status.Shell, status.RCFile))
	default:
		return warn("Shell integration", fmt.Sprintf("handoff mode needs `aih shell-init %s --install`", status.Shell))
	}
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
