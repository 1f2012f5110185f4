package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"cafescout/contexts/moderation/approval-pipeline/ports"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// verdictSchema constrains what the model may answer. Responses that do not
// validate are treated as a per-submission failure by the caller.
const verdictSchema = `{
  "type": "object",
  "required": ["decision", "confidence", "reason"],
  "additionalProperties": false,
  "properties": {
    "decision": {"type": "string", "enum": ["approved", "rejected", "flagged"]},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1},
    "reason": {"type": "string", "maxLength": 500}
  }
}`

const systemPrompt = `You are a content moderator for a cafe discovery platform. ` +
	`Evaluate the submitted cafe listing and decide whether it should be published. ` +
	`Reject listings that are spam, offensive, not a cafe, or contain fabricated locations. ` +
	`Flag listings you are unsure about. ` +
	`Answer with a single JSON object: {"decision": "approved"|"rejected"|"flagged", "confidence": 0..1, "reason": "short explanation"}.`

// Config for the moderation model client.
type Config struct {
	APIKey      string // falls back to env OPENAI_API_KEY
	BaseURL     string // default https://api.openai.com/v1
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Scorer implements ports.SubmissionScorer over an OpenAI-compatible
// chat/completions endpoint.
type Scorer struct {
	cfg    Config
	http   *http.Client
	schema *jsonschema.Schema
	logger *slog.Logger
}

func NewScorer(cfg Config, logger *slog.Logger) *Scorer {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		schema: jsonschema.MustCompileString("verdict.json", verdictSchema),
		logger: logger,
	}
}

func (s *Scorer) Score(ctx context.Context, submission ports.PendingSubmission) (ports.ScoreResult, error) {
	start := time.Now()

	listing, err := json.Marshal(map[string]any{
		"name":        submission.Name,
		"description": submission.Description,
		"address":     submission.Address,
		"city":        submission.City,
		"website":     submission.Website,
		"latitude":    submission.Latitude,
		"longitude":   submission.Longitude,
	})
	if err != nil {
		return ports.ScoreResult{}, fmt.Errorf("marshal listing: %w", err)
	}

	body := map[string]any{
		"model":           s.cfg.Model,
		"temperature":     s.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": string(listing)},
		},
	}

	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := s.post(ctx, endpoint, body)
	if err != nil {
		s.logger.Error("moderation model call failed",
			"event", "llm_score_http_error",
			"module", "moderation/approval-pipeline",
			"layer", "adapter",
			"submission_id", submission.SubmissionID,
			"error", err.Error(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return ports.ScoreResult{}, err
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &completion); err != nil {
		return ports.ScoreResult{}, fmt.Errorf("decode completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return ports.ScoreResult{}, fmt.Errorf("no choices in completion")
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return ports.ScoreResult{}, fmt.Errorf("verdict is not valid JSON: %w", err)
	}
	if err := s.schema.Validate(parsed); err != nil {
		s.logger.Warn("moderation verdict rejected by schema",
			"event", "llm_score_schema_invalid",
			"module", "moderation/approval-pipeline",
			"layer", "adapter",
			"submission_id", submission.SubmissionID,
			"error", err.Error(),
		)
		return ports.ScoreResult{}, fmt.Errorf("verdict schema validation: %w", err)
	}

	var verdict struct {
		Decision   string  `json:"decision"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		return ports.ScoreResult{}, fmt.Errorf("decode verdict: %w", err)
	}

	return ports.ScoreResult{
		Decision:   ports.Decision(verdict.Decision),
		Confidence: verdict.Confidence,
		Reason:     verdict.Reason,
	}, nil
}

func (s *Scorer) post(ctx context.Context, endpoint string, body map[string]any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call model endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("model endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}
