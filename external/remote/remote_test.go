package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/external/remote"
	"github.com/Muhammad-Raisul-Maharub/maasathi-health/schema"
)

func testRecords() []schema.RemoteAssessment {
	return []schema.RemoteAssessment{
		{
			ID:         "0a8f2d6e-6c1b-4f2f-9a74-0a6e4ed1b111",
			UserID:     "user-1",
			TotalScore: 5,
			RiskLevel:  schema.RiskLevelMedium,
			Symptoms: schema.AssessmentSymptoms{
				Selected: []schema.SymptomType{schema.BlurredVision},
			},
			CreatedAt: "2024-09-18T08:30:00Z",
		},
	}
}

func TestUpsertAssessments(t *testing.T) {
	var gotPath, gotPrefer, gotAPIKey, gotAuth string
	var gotRecords []schema.RemoteAssessment

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotPrefer = r.Header.Get("Prefer")
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotRecords)
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	c := remote.NewClient(ts.URL, "anon-key", ts.Client())
	err := c.UpsertAssessments(context.Background(), "token-abc", testRecords())

	assert.Nil(t, err, "wrong UpsertAssessments")
	assert.Equal(t, "/rest/v1/assessments?on_conflict=id", gotPath, "wrong upsert target")
	assert.Equal(t, "resolution=merge-duplicates", gotPrefer, "wrong conflict resolution header")
	assert.Equal(t, "anon-key", gotAPIKey)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, testRecords(), gotRecords, "wrong batch body")
}

func TestUpsertAssessmentsRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "row level security violation"})
	}))
	defer ts.Close()

	c := remote.NewClient(ts.URL, "anon-key", ts.Client())
	err := c.UpsertAssessments(context.Background(), "token-abc", testRecords())

	assert.EqualError(t, err, "remote store rejected the batch: row level security violation")
}

func TestUpsertAssessmentsEmptyEndpoint(t *testing.T) {
	c := remote.NewClient("", "anon-key", nil)
	err := c.UpsertAssessments(context.Background(), "token-abc", testRecords())
	assert.NotNil(t, err, "empty endpoint must fail")
}
