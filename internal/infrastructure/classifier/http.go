package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"NPSLabeler/internal/labeling"
	"NPSLabeler/internal/ports"
)

// HTTPClient talks to a zero-shot classification service. The service takes a
// text plus candidate labels and answers with parallel label and score
// arrays, one score per candidate, independent of each other.
type HTTPClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.Classifier = (*HTTPClient)(nil)

// NewHTTPClient creates a reusable client for the given inference endpoint.
func NewHTTPClient(endpoint, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

// Classify scores the text against the candidate labels.
func (c *HTTPClient) Classify(ctx context.Context, text string, labels []labeling.Label) (labeling.Scores, error) {
	payload := map[string]any{
		"text":        text,
		"labels":      labels,
		"multi_label": true,
	}

	var resp struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
	}
	if err := c.post(ctx, payload, &resp); err != nil {
		return nil, err
	}

	return zipScores(labels, resp.Labels, resp.Scores)
}

func (c *HTTPClient) post(ctx context.Context, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return fmt.Errorf("unexpected status %s, close body: %v", resp.Status, closeErr)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		_ = resp.Body.Close()
		return fmt.Errorf("decode response: %w", err)
	}

	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return nil
}

// zipScores pairs the service's parallel arrays by position, then verifies
// that every requested label came back. Services typically return labels
// reordered by descending score, so pairing must go through the names.
func zipScores(requested []labeling.Label, names []string, values []float64) (labeling.Scores, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("mismatched response arrays: %d labels, %d scores", len(names), len(values))
	}
	scores := make(labeling.Scores, len(names))
	for i, name := range names {
		scores[labeling.Label(name)] = values[i]
	}
	if missing := scores.Missing(requested); len(missing) > 0 {
		return nil, fmt.Errorf("response missing scores for %q", missing)
	}
	return scores, nil
}
