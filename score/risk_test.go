package score_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/schema"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/score"
)

func TestCalculateRiskBuckets(t *testing.T) {
	testCases := []struct {
		name     string
		selected []schema.SymptomType
		score    int
		level    schema.RiskLevel
	}{
		{"empty selection", nil, 0, schema.RiskLevelLow},
		{"single low symptom", []schema.SymptomType{schema.Swelling}, 2, schema.RiskLevelLow},
		{"medium at threshold", []schema.SymptomType{schema.BlurredVision}, 5, schema.RiskLevelMedium},
		{"medium combination", []schema.SymptomType{schema.Headache, schema.AbdominalPain}, 7, schema.RiskLevelMedium},
		{"high at threshold", []schema.SymptomType{schema.Headache, schema.Swelling, schema.BlurredVision}, 10, schema.RiskLevelHigh},
		{"all symptoms", []schema.SymptomType{schema.Headache, schema.Swelling, schema.BlurredVision, schema.AbdominalPain}, 14, schema.RiskLevelHigh},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := score.CalculateRisk(schema.DefaultRuleSet, tc.selected)
			assert.Equal(t, tc.score, result.Score, "wrong score")
			assert.Equal(t, tc.level, result.Level, "wrong level")
			assert.Equal(t, schema.DefaultRuleSet.Version, result.RuleVersion, "wrong rule version")
		})
	}
}

func TestCalculateRiskIgnoresUnknownSymptoms(t *testing.T) {
	result := score.CalculateRisk(schema.DefaultRuleSet, []schema.SymptomType{"fever", schema.Swelling, "chills"})
	assert.Equal(t, 2, result.Score, "unknown ids must contribute zero weight")
	assert.Equal(t, schema.RiskLevelLow, result.Level)
}

func TestCalculateRiskOrderAndDuplicateInvariance(t *testing.T) {
	base := score.CalculateRisk(schema.DefaultRuleSet, []schema.SymptomType{
		schema.Headache, schema.BlurredVision, schema.AbdominalPain,
	})

	permuted := score.CalculateRisk(schema.DefaultRuleSet, []schema.SymptomType{
		schema.AbdominalPain, schema.Headache, schema.BlurredVision,
	})
	duplicated := score.CalculateRisk(schema.DefaultRuleSet, []schema.SymptomType{
		schema.BlurredVision, schema.Headache, schema.Headache,
		schema.AbdominalPain, schema.BlurredVision, schema.AbdominalPain,
	})

	assert.Equal(t, base.Score, permuted.Score, "score must not depend on order")
	assert.Equal(t, base.Level, permuted.Level, "level must not depend on order")
	assert.Equal(t, base.Explanation, permuted.Explanation, "explanation must not depend on order")

	assert.Equal(t, base.Score, duplicated.Score, "duplicated ids must not be double-counted")
	assert.Equal(t, base.Level, duplicated.Level)
	assert.Equal(t, base.Explanation, duplicated.Explanation)
}

func TestCalculateRiskExplanation(t *testing.T) {
	result := score.CalculateRisk(schema.DefaultRuleSet, []schema.SymptomType{schema.BlurredVision})
	assert.Equal(t,
		"You are at Medium Risk because you reported: Blurred Vision. These are signs that require medical attention and could indicate potential complications like pre-eclampsia.",
		result.Explanation)

	empty := score.CalculateRisk(schema.DefaultRuleSet, nil)
	assert.Equal(t, "You are at Low Risk. No significant risk symptoms reported.", empty.Explanation)
}

func TestCalculateRiskPreservesSelectionOrder(t *testing.T) {
	result := score.CalculateRisk(schema.DefaultRuleSet, []schema.SymptomType{
		schema.AbdominalPain, schema.Headache, schema.AbdominalPain,
	})
	assert.Equal(t, []schema.SymptomType{schema.AbdominalPain, schema.Headache}, result.SelectedSymptoms,
		"selection keeps first-seen order for display")
}
