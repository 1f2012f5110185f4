package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	cafeservice "cafescout/contexts/discovery/cafe-service"
	ratingservice "cafescout/contexts/discovery/rating-service"
	"cafescout/contexts/discovery/rating-service/adapters/cafes"
	approvalpipeline "cafescout/contexts/moderation/approval-pipeline"
	pipeentities "cafescout/contexts/moderation/approval-pipeline/domain/entities"
	submissionservice "cafescout/contexts/moderation/submission-service"
)

type stubClassifier struct {
	remaining int
	calls     int
}

func (c *stubClassifier) Classify(_ context.Context, limit int, _ bool) (pipeentities.BatchResult, error) {
	c.calls++
	take := limit
	if c.remaining < take {
		take = c.remaining
	}
	c.remaining -= take
	return pipeentities.BatchResult{TotalProcessed: take, Approved: take, ExternalCallCount: take}, nil
}

func newTestServer(t *testing.T, secret string, classifier *stubClassifier) *Server {
	t.Helper()
	cafeModule := cafeservice.NewInMemoryModule(nil, nil)
	ratingModule := ratingservice.NewInMemoryModule(nil, cafes.Checker{Queries: cafeModule.Handler.Queries}, nil)
	subModule := submissionservice.NewInMemoryModule(nil, nil)
	pipelineModule := approvalpipeline.NewModule(approvalpipeline.Dependencies{
		Classifier: classifier,
		Secret:     secret,
	})
	return New(cafeModule, ratingModule, subModule, pipelineModule, nil, "")
}

func triggerPipeline(server *Server, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/cron/process-submissions", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPipelineTriggerRejectsMissingToken(t *testing.T) {
	classifier := &stubClassifier{remaining: 10}
	server := newTestServer(t, "s3cret", classifier)

	rec := triggerPipeline(server, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body["error"] != "Unauthorized" {
		t.Fatalf("expected Unauthorized error, got %+v", body)
	}
	if classifier.calls != 0 {
		t.Fatalf("classifier must not run on auth failure, got %d calls", classifier.calls)
	}
}

func TestPipelineTriggerRejectsWrongToken(t *testing.T) {
	classifier := &stubClassifier{remaining: 10}
	server := newTestServer(t, "s3cret", classifier)

	rec := triggerPipeline(server, "Bearer wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if classifier.calls != 0 {
		t.Fatalf("classifier must not run on auth failure, got %d calls", classifier.calls)
	}
}

func TestPipelineTriggerMissingSecretIsServerError(t *testing.T) {
	classifier := &stubClassifier{remaining: 10}
	server := newTestServer(t, "", classifier)

	rec := triggerPipeline(server, "Bearer anything")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body["error"] != "Cron not configured" {
		t.Fatalf("expected configuration error, got %+v", body)
	}
}

func TestPipelineTriggerRunsWithValidToken(t *testing.T) {
	classifier := &stubClassifier{remaining: 7}
	server := newTestServer(t, "s3cret", classifier)

	rec := triggerPipeline(server, "Bearer s3cret")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report struct {
		Success        bool `json:"success"`
		TotalProcessed int  `json:"totalProcessed"`
		BatchRuns      int  `json:"batchRuns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report failed: %v", err)
	}
	if !report.Success || report.TotalProcessed != 7 || report.BatchRuns != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}
