package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/schema"
)

var errEmptyEndpoint = fmt.Errorf("empty remote endpoint")

// Remote is the central assessments store, reached through its batch upsert
// endpoint. The endpoint performs insert-or-replace keyed by record id, so
// resubmitting a previously accepted batch is harmless.
type Remote interface {
	UpsertAssessments(ctx context.Context, accessToken string, records []schema.RemoteAssessment) error
}

type client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(endpoint, apiKey string, httpClient *http.Client) Remote {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

// UpsertAssessments submits the whole batch in a single call. Either the
// remote store accepts every row or the call fails as a whole; there is no
// partial acceptance to reconcile.
func (c *client) UpsertAssessments(ctx context.Context, accessToken string, records []schema.RemoteAssessment) error {
	if c.endpoint == "" {
		return errEmptyEndpoint
	}

	body, err := json.Marshal(records)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("%s/rest/v1/assessments?on_conflict=id", c.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, query, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	d, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("remote store rejected the batch with status %d", resp.StatusCode)
	}

	var r errorResponse
	if err := json.Unmarshal(d, &r); err != nil || r.Message == "" {
		return fmt.Errorf("remote store rejected the batch with status %d", resp.StatusCode)
	}
	return fmt.Errorf("remote store rejected the batch: %s", r.Message)
}
