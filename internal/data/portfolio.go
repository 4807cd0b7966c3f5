package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tvm-engine/internal/analysis"

	"gopkg.in/yaml.v3"
)

// Portfolio is a set of projects evaluated at one discount rate.
type Portfolio struct {
	// Rate is optional; nil means the caller's default.
	Rate     *float64           `json:"rate,omitempty" yaml:"rate,omitempty"`
	Projects []analysis.Project `json:"projects" yaml:"projects"`
}

// RateOr returns the portfolio rate, or fallback when none is set.
func (p *Portfolio) RateOr(fallback float64) float64 {
	if p.Rate == nil {
		return fallback
	}
	return *p.Rate
}

func (p *Portfolio) Validate() error {
	if len(p.Projects) == 0 {
		return fmt.Errorf("portfolio has no projects")
	}
	seen := map[string]bool{}
	for i, pr := range p.Projects {
		name := strings.TrimSpace(pr.Name)
		if name == "" {
			return fmt.Errorf("project %d has no name", i)
		}
		if seen[name] {
			return fmt.Errorf("duplicate project name %q", name)
		}
		seen[name] = true
		if len(pr.Flows) == 0 {
			return fmt.Errorf("project %q has no cash flows", name)
		}
	}
	return nil
}

// LoadPortfolio reads a portfolio from a JSON or YAML file, chosen by
// extension.
func LoadPortfolio(path string) (*Portfolio, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio file: %w", err)
	}

	var p Portfolio
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &p)
	default:
		err = json.Unmarshal(raw, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse portfolio file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid portfolio %s: %w", path, err)
	}
	return &p, nil
}

// SavePortfolio writes p as indented JSON, creating parent directories.
func SavePortfolio(p *Portfolio, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write portfolio file: %w", err)
	}
	return nil
}
