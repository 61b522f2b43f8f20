package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"NPSLabeler/internal/labeling"
)

func TestHTTPClientClassify(t *testing.T) {
	t.Parallel()

	labels := []labeling.Label{"waiting time", "delay", "clinic related"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text       string   `json:"text"`
			Labels     []string `json:"labels"`
			MultiLabel bool     `json:"multi_label"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Text != "waited too long" {
			t.Errorf("unexpected text: %q", req.Text)
		}
		if len(req.Labels) != 3 {
			t.Errorf("expected 3 candidate labels, got %d", len(req.Labels))
		}
		if !req.MultiLabel {
			t.Errorf("expected multi_label request")
		}

		// Services answer sorted by score, not in request order.
		_, _ = w.Write([]byte(`{
			"sequence": "waited too long",
			"labels": ["delay", "waiting time", "clinic related"],
			"scores": [0.97, 0.91, 0.03]
		}`))
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL, "", 5*time.Second)
	scores, err := c.Classify(context.Background(), "waited too long", labels)
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}

	if scores["delay"] != 0.97 {
		t.Fatalf("unexpected delay score: %v", scores["delay"])
	}
	if scores["waiting time"] != 0.91 {
		t.Fatalf("unexpected waiting time score: %v", scores["waiting time"])
	}
	if scores["clinic related"] != 0.03 {
		t.Fatalf("unexpected clinic related score: %v", scores["clinic related"])
	}
}

func TestHTTPClientRejectsErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL, "", 5*time.Second)
	_, err := c.Classify(context.Background(), "any text", []labeling.Label{"delay"})
	if err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}

func TestHTTPClientSendsBearerToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sekrit" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		_, _ = w.Write([]byte(`{"labels": ["delay"], "scores": [0.5]}`))
	}))
	defer server.Close()

	c := NewHTTPClient(server.URL, "sekrit", 5*time.Second)
	if _, err := c.Classify(context.Background(), "text", []labeling.Label{"delay"}); err != nil {
		t.Fatalf("Classify error: %v", err)
	}
}

func TestZipScoresRejectsMismatchedArrays(t *testing.T) {
	t.Parallel()

	_, err := zipScores([]labeling.Label{"delay"}, []string{"delay", "waiting time"}, []float64{0.9})
	if err == nil {
		t.Fatalf("expected error for mismatched arrays")
	}
}

func TestZipScoresRejectsMissingLabels(t *testing.T) {
	t.Parallel()

	_, err := zipScores(
		[]labeling.Label{"delay", "waiting time"},
		[]string{"delay"},
		[]float64{0.9},
	)
	if err == nil {
		t.Fatalf("expected error when a requested label is absent")
	}
}
