// Package severity resolves offence descriptions to integer severity
// weights via ordered keyword matching.
package severity

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/garda-insights/riskmap/internal/config"
)

// Rule pairs a lowercase offence keyword with its weight.
type Rule struct {
	Keyword string
	Weight  int
}

// Table is an immutable, ordered severity weight table. Resolution scans
// rules in order and the first keyword contained in the offence text
// wins, so iteration order is explicit and deterministic.
type Table struct {
	rules         []Rule
	defaultWeight int
}

// New builds a Table from configuration. The rule list must be
// non-empty, keywords non-blank, and all weights (including the default)
// at least 1; violations are configuration errors, fatal to scoring.
func New(cfg config.SeverityConfig) (*Table, error) {
	if len(cfg.Rules) == 0 {
		return nil, eris.New("severity: empty rule table")
	}
	if cfg.DefaultWeight < 1 {
		return nil, eris.Errorf("severity: default weight must be >= 1, got %d", cfg.DefaultWeight)
	}

	var errs []string
	rules := make([]Rule, 0, len(cfg.Rules))
	for i, r := range cfg.Rules {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		if kw == "" {
			errs = append(errs, fmt.Sprintf("rule %d: blank keyword", i))
			continue
		}
		if r.Weight < 1 {
			errs = append(errs, fmt.Sprintf("rule %d (%q): weight must be >= 1, got %d", i, kw, r.Weight))
			continue
		}
		rules = append(rules, Rule{Keyword: kw, Weight: r.Weight})
	}
	if len(errs) > 0 {
		return nil, eris.Errorf("severity: invalid rule table: %s", strings.Join(errs, "; "))
	}

	return &Table{rules: rules, defaultWeight: cfg.DefaultWeight}, nil
}

// Resolve returns the severity weight for an offence description. The
// first rule whose keyword appears in the lowercased text wins; text
// matching no rule gets the default weight.
func (t *Table) Resolve(offence string) int {
	lower := strings.ToLower(offence)
	for _, r := range t.rules {
		if strings.Contains(lower, r.Keyword) {
			return r.Weight
		}
	}
	return t.defaultWeight
}

// DefaultWeight returns the weight applied to unmatched offences.
func (t *Table) DefaultWeight() int {
	return t.defaultWeight
}

// Rules returns a copy of the ordered rule list.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}
