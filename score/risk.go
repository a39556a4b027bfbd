package score

import (
	"fmt"
	"strings"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/schema"
)

// RiskResult is the outcome of scoring one screening session.
type RiskResult struct {
	Score            int                  `json:"score"`
	Level            schema.RiskLevel     `json:"level"`
	Explanation      string               `json:"explanation"`
	SelectedSymptoms []schema.SymptomType `json:"selected_symptoms"`
	RuleVersion      string               `json:"rule_version"`
}

// CalculateRisk sums the rule-set weight of every distinct reported symptom
// and buckets the total against the rule-set thresholds. Identifiers not in
// the weight table contribute zero; duplicated identifiers are counted once.
// The result depends only on the rule set and the distinct id set, never on
// input order.
func CalculateRisk(rules schema.RuleSet, selected []schema.SymptomType) RiskResult {
	seen := make(map[schema.SymptomType]bool, len(selected))
	distinct := make([]schema.SymptomType, 0, len(selected))

	total := 0
	for _, id := range selected {
		if seen[id] {
			continue
		}
		seen[id] = true
		distinct = append(distinct, id)
		total += rules.Weights[id]
	}

	var level schema.RiskLevel
	switch {
	case total >= rules.HighThreshold:
		level = schema.RiskLevelHigh
	case total >= rules.MediumThreshold:
		level = schema.RiskLevelMedium
	default:
		level = schema.RiskLevelLow
	}

	return RiskResult{
		Score:            total,
		Level:            level,
		Explanation:      explain(level, seen),
		SelectedSymptoms: distinct,
		RuleVersion:      rules.Version,
	}
}

// explain builds the rationale from the matched questionnaire labels, walking
// the fixed catalogue so the text does not depend on input order. Unknown ids
// are skipped here the same way they are skipped in scoring.
func explain(level schema.RiskLevel, seen map[schema.SymptomType]bool) string {
	names := make([]string, 0, len(seen))
	for _, s := range schema.Symptoms {
		if seen[s.ID] {
			names = append(names, strings.TrimSuffix(s.Question, "?"))
		}
	}

	explanation := fmt.Sprintf("You are at %s Risk", level)
	if len(names) == 0 {
		return explanation + ". No significant risk symptoms reported."
	}

	explanation += fmt.Sprintf(" because you reported: %s.", strings.Join(names, ", "))
	if level == schema.RiskLevelHigh || level == schema.RiskLevelMedium {
		explanation += " These are signs that require medical attention and could indicate potential complications like pre-eclampsia."
	}
	return explanation
}
