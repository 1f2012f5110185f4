package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cafescout/contexts/moderation/approval-pipeline/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionResponse(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func newTestScorer(t *testing.T, handler http.HandlerFunc) *Scorer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewScorer(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
	}, nil)
}

func TestScorerParsesValidVerdict(t *testing.T) {
	scorer := newTestScorer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])

		fmt.Fprint(w, completionResponse(`{"decision":"approved","confidence":0.92,"reason":"legitimate cafe"}`))
	})

	result, err := scorer.Score(context.Background(), ports.PendingSubmission{
		SubmissionID: "sub-1",
		Name:         "Bean There",
		City:         "Lisbon",
	})
	require.NoError(t, err)
	assert.Equal(t, ports.DecisionApproved, result.Decision)
	assert.InDelta(t, 0.92, result.Confidence, 1e-9)
	assert.Equal(t, "legitimate cafe", result.Reason)
}

func TestScorerRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"unknown decision":   `{"decision":"maybe","confidence":0.5,"reason":"unsure"}`,
		"confidence over 1":  `{"decision":"approved","confidence":1.5,"reason":"x"}`,
		"missing reason":     `{"decision":"approved","confidence":0.9}`,
		"extra field":        `{"decision":"approved","confidence":0.9,"reason":"x","note":"y"}`,
		"not a json object":  `"approved"`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			scorer := newTestScorer(t, func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, completionResponse(content))
			})
			_, err := scorer.Score(context.Background(), ports.PendingSubmission{SubmissionID: "sub-1"})
			require.Error(t, err)
		})
	}
}

func TestScorerSurfacesUpstreamFailure(t *testing.T) {
	scorer := newTestScorer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	})

	_, err := scorer.Score(context.Background(), ports.PendingSubmission{SubmissionID: "sub-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestScorerRejectsNonJSONContent(t *testing.T) {
	scorer := newTestScorer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, completionResponse("I think this cafe looks fine."))
	})

	_, err := scorer.Score(context.Background(), ports.PendingSubmission{SubmissionID: "sub-1"})
	require.Error(t, err)
}
