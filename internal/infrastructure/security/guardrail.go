package security

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/aih-go/assets"
	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

// Guardrail implements the SecurityService port. Its findings are warnings
// shown before confirmation; it never blocks a command.
type Guardrail struct {
	patterns []compiledPattern
	source   string
}

type compiledPattern struct {
	re   *regexp.Regexp
	rule DangerPattern
}

// DangerPattern describes a regex-based guardrail rule.
type DangerPattern struct {
	Pattern string `yaml:"pattern"`
	Level   string `yaml:"level"`
	Message string `yaml:"message"`
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		DangerPatterns []DangerPattern `yaml:"danger_patterns"`
	} `yaml:"rules"`
}

// NewGuardrail loads rules from path, or the embedded defaults when path is
// empty or does not exist. A present but malformed file is an error.
func NewGuardrail(path string) (*Guardrail, error) {
	rules, source, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	compiled := make([]compiledPattern, 0, len(rules.Rules.DangerPatterns))
	for _, pattern := range rules.Rules.DangerPatterns {
		re, err := regexp.Compile(pattern.Pattern)
		if err != nil {
			return nil, fmt.Errorf("guardrail rule %q: %w", pattern.Pattern, err)
		}
		compiled = append(compiled, compiledPattern{re: re, rule: pattern})
	}

	return &Guardrail{patterns: compiled, source: source}, nil
}

// Evaluate implements ports.SecurityService.
func (g *Guardrail) Evaluate(command string) (domain.RiskAssessment, error) {
	assessment := domain.RiskAssessment{Level: domain.RiskSafe}
	for _, pattern := range g.patterns {
		if !pattern.re.MatchString(command) {
			continue
		}
		level := parseRiskLevel(pattern.rule.Level)
		if moreSevere(level, assessment.Level) {
			assessment.Level = level
		}
		assessment.Reasons = append(assessment.Reasons, pattern.rule.Message)
		assessment.MatchedRules = append(assessment.MatchedRules, pattern.rule.Pattern)
	}
	return assessment, nil
}

// RuleCount reports how many rules are loaded.
func (g *Guardrail) RuleCount() int {
	return len(g.patterns)
}

// Source names where the rules came from: a file path or "built-in".
func (g *Guardrail) Source() string {
	return g.source
}

func loadRules(path string) (RulesFile, string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			rules, err := parseRules(data)
			if err != nil {
				return RulesFile{}, "", fmt.Errorf("parse %s: %w", path, err)
			}
			if len(rules.Rules.DangerPatterns) > 0 {
				return rules, path, nil
			}
		case !os.IsNotExist(err):
			return RulesFile{}, "", err
		}
	}
	rules, err := parseRules(assets.DefaultGuardrailYAML)
	if err != nil {
		return RulesFile{}, "", fmt.Errorf("parse built-in rules: %w", err)
	}
	return rules, "built-in", nil
}

func parseRules(data []byte) (RulesFile, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, err
	}
	return rules, nil
}

func parseRiskLevel(value string) domain.RiskLevel {
	switch strings.ToLower(value) {
	case "low":
		return domain.RiskLow
	case "medium":
		return domain.RiskMedium
	case "high":
		return domain.RiskHigh
	case "critical":
		return domain.RiskCritical
	default:
		return domain.RiskLow
	}
}

var severity = map[domain.RiskLevel]int{
	domain.RiskSafe:     0,
	domain.RiskLow:      1,
	domain.RiskMedium:   2,
	domain.RiskHigh:     3,
	domain.RiskCritical: 4,
}

func moreSevere(next, current domain.RiskLevel) bool {
	return severity[next] > severity[current]
}

var _ ports.SecurityService = (*Guardrail)(nil)
