// Package etl imports bank and processor CSV exports into cash events,
// categorizing rows with user-editable YAML rules.
package etl

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule maps a description substring to a category. LagDays shifts the
// event date forward, for processors that settle after the ledger date.
type Rule struct {
	Match    string `yaml:"match"`
	Category string `yaml:"category"`
	LagDays  int    `yaml:"lag_days,omitempty"`
}

// Rules is the full categorization rule set.
type Rules struct {
	DefaultCategory string `yaml:"default_category"`
	Rules           []Rule `yaml:"rules"`
}

// DefaultRules covers the common vendors so a fresh install categorizes
// something useful before the user writes their own rules file.
func DefaultRules() Rules {
	return Rules{
		DefaultCategory: "uncategorized",
		Rules: []Rule{
			{Match: "shopify", Category: "payouts", LagDays: 2},
			{Match: "stripe", Category: "payouts", LagDays: 2},
			{Match: "amazon", Category: "payouts"},
			{Match: "payroll", Category: "payroll"},
			{Match: "gusto", Category: "payroll"},
			{Match: "amex", Category: "credit_card"},
			{Match: "sba", Category: "debt_service"},
			{Match: "freight", Category: "shipping"},
		},
	}
}

// LoadRules reads a rules file, or returns the defaults when path is empty.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading rules: %w", err)
	}
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("parsing rules: %w", err)
	}
	if r.DefaultCategory == "" {
		r.DefaultCategory = "uncategorized"
	}
	return r, nil
}

// Categorize returns the category and settlement lag for a description.
// Matching is case-insensitive substring, first rule wins.
func (r Rules) Categorize(description string) (string, int) {
	desc := strings.ToLower(description)
	for _, rule := range r.Rules {
		if rule.Match != "" && strings.Contains(desc, strings.ToLower(rule.Match)) {
			return rule.Category, rule.LagDays
		}
	}
	return r.DefaultCategory, 0
}
