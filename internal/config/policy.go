package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"clubfin/internal/finance"
	"clubfin/internal/members"
)

// Policy is the YAML policy file. Unset fields keep their defaults.
type Policy struct {
	AdvanceCategory     string   `yaml:"advance_category"`
	MembersCategory     string   `yaml:"members_category"`
	LegacyDoubleCount   bool     `yaml:"legacy_double_count"`
	RecurringCategories []string `yaml:"recurring_categories"`
	MediumThreshold     string   `yaml:"medium_threshold"`
	HighThreshold       string   `yaml:"high_threshold"`
	DiscountTopN        int      `yaml:"discount_top_n"`
	DiscountPercent     int      `yaml:"discount_percent"`
	PenaltyAfter        int      `yaml:"penalty_after"`
}

// LoadPolicy reads path and merges it over the defaults. An empty path
// returns the defaults.
func LoadPolicy(path string) (finance.Policy, members.Rules, error) {
	fp, rules := finance.DefaultPolicy(), members.DefaultRules()
	if path == "" {
		return fp, rules, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fp, rules, fmt.Errorf("read policy file: %w", err)
	}
	var p Policy
	if err := yaml.Unmarshal(b, &p); err != nil {
		return fp, rules, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	return p.Apply(fp, rules)
}

// Apply overlays the set fields of p onto the given policy and rules.
func (p Policy) Apply(fp finance.Policy, rules members.Rules) (finance.Policy, members.Rules, error) {
	if p.AdvanceCategory != "" {
		fp.AdvanceCategory = p.AdvanceCategory
	}
	if p.MembersCategory != "" {
		fp.MembersCategory = p.MembersCategory
	}
	fp.LegacyDoubleCount = fp.LegacyDoubleCount || p.LegacyDoubleCount
	if len(p.RecurringCategories) > 0 {
		fp.RecurringCategories = append([]string(nil), p.RecurringCategories...)
	}
	if p.MediumThreshold != "" {
		d, err := decimal.NewFromString(p.MediumThreshold)
		if err != nil {
			return fp, rules, fmt.Errorf("medium_threshold: %w", err)
		}
		fp.MediumThreshold = d
	}
	if p.HighThreshold != "" {
		d, err := decimal.NewFromString(p.HighThreshold)
		if err != nil {
			return fp, rules, fmt.Errorf("high_threshold: %w", err)
		}
		fp.HighThreshold = d
	}
	if fp.HighThreshold.LessThan(fp.MediumThreshold) {
		return fp, rules, fmt.Errorf("high_threshold %s is below medium_threshold %s", fp.HighThreshold, fp.MediumThreshold)
	}
	if p.DiscountTopN < 0 || p.DiscountPercent < 0 || p.DiscountPercent > 100 || p.PenaltyAfter < 0 {
		return fp, rules, fmt.Errorf("discount and penalty settings must be non-negative and discount_percent at most 100")
	}
	if p.DiscountTopN > 0 {
		rules.TopAttendees = p.DiscountTopN
	}
	if p.DiscountPercent > 0 {
		rules.DiscountPercent = p.DiscountPercent
	}
	if p.PenaltyAfter > 0 {
		rules.PenaltyAfter = p.PenaltyAfter
	}
	return fp, rules, nil
}
