package schema

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// SymptomIDs is stored as a JSON text column so the selection order reported
// by the user survives a round trip through the database.
type SymptomIDs []SymptomType

func (s SymptomIDs) Value() (driver.Value, error) {
	if s == nil {
		s = SymptomIDs{}
	}
	return json.Marshal(s)
}

func (s *SymptomIDs) Scan(value interface{}) error {
	if value == nil {
		*s = SymptomIDs{}
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported type for symptom id list")
	}
	return json.Unmarshal(b, s)
}

// Assessment is one completed screening session. It is created exactly once
// with a fresh client-side uuid and is mutated exactly once afterwards, when
// the sync engine flips IsSynced after remote confirmation.
type Assessment struct {
	ID          string     `json:"id" gorm:"primary_key"`
	Timestamp   int64      `json:"timestamp" gorm:"not null;index"`
	Symptoms    SymptomIDs `json:"symptoms" gorm:"type:text;not null"`
	Notes       string     `json:"notes"`
	RiskScore   int        `json:"risk_score" gorm:"not null"`
	RiskLevel   RiskLevel  `json:"risk_level" gorm:"not null"`
	RuleVersion string     `json:"rule_version" gorm:"not null"`
	IsSynced    bool       `json:"is_synced" gorm:"not null;index"`
}

// AssessmentSymptoms is the symptoms object of the remote assessments table.
type AssessmentSymptoms struct {
	Selected []SymptomType `json:"selected"`
	Notes    *string       `json:"notes"`
}

// RemoteAssessment is the wire shape accepted by the remote upsert endpoint,
// keyed by ID for insert-or-replace.
type RemoteAssessment struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	TotalScore int                `json:"total_score"`
	RiskLevel  RiskLevel          `json:"risk_level"`
	Symptoms   AssessmentSymptoms `json:"symptoms"`
	CreatedAt  string             `json:"created_at"`
}

// RemoteRecord maps a local row to the remote wire shape, attaching the
// authenticated user id. ID is carried over unchanged so retried submissions
// collapse onto the same remote row.
func (a Assessment) RemoteRecord(userID string) RemoteAssessment {
	var notes *string
	if a.Notes != "" {
		n := a.Notes
		notes = &n
	}

	return RemoteAssessment{
		ID:         a.ID,
		UserID:     userID,
		TotalScore: a.RiskScore,
		RiskLevel:  a.RiskLevel,
		Symptoms: AssessmentSymptoms{
			Selected: []SymptomType(a.Symptoms),
			Notes:    notes,
		},
		CreatedAt: time.Unix(0, a.Timestamp*int64(time.Millisecond)).UTC().Format(time.RFC3339),
	}
}
