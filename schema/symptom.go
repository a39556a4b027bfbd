package schema

type SymptomType string

const (
	Headache      SymptomType = "headache"
	Swelling      SymptomType = "swelling"
	BlurredVision SymptomType = "blurred_vision"
	AbdominalPain SymptomType = "abdominal_pain"
)

// SymptomFromID is a map which key is Symptom.ID and value is a object of Symptom
var SymptomFromID = map[SymptomType]Symptom{
	Headache:      Symptoms[0],
	Swelling:      Symptoms[1],
	BlurredVision: Symptoms[2],
	AbdominalPain: Symptoms[3],
}

type Symptom struct {
	ID       SymptomType `json:"id"`
	Question string      `json:"question"`
	Category string      `json:"category"`
	Weight   int         `json:"-"`
}

// Symptoms is the fixed screening questionnaire. Question text is the English
// fallback; other locales come from the i18n bundle. Weight here mirrors the
// default rule set and is kept for display only, scoring always reads the
// RuleSet passed in.
var Symptoms = []Symptom{
	{Headache, "Severe Headache?", "neurological", 3},
	{Swelling, "Swelling in hands/face?", "circulatory", 2},
	{BlurredVision, "Blurred Vision?", "vision", 5},
	{AbdominalPain, "Upper abdominal pain?", "gastrointestinal", 4},
}

type SymptomWeights map[SymptomType]int

// RuleSet is one version of the scoring rule table. Versions are immutable:
// publishing new weights or thresholds means publishing a new RuleSet, and
// records scored under an older version keep their original score and level.
type RuleSet struct {
	Version         string         `json:"version"`
	Weights         SymptomWeights `json:"weights"`
	MediumThreshold int            `json:"medium_threshold"`
	HighThreshold   int            `json:"high_threshold"`
}

var DefaultRuleSet = RuleSet{
	Version: "2024-09",
	Weights: SymptomWeights{
		Headache:      3,
		Swelling:      2,
		BlurredVision: 5,
		AbdominalPain: 4,
	},
	MediumThreshold: 5,
	HighThreshold:   10,
}
