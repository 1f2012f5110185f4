package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{
		"CONFIG_FILE", "SERVICE_NAME", "HTTP_PORT", "CRON_SECRET",
		"PIPELINE_BATCH_SIZE", "PIPELINE_MAX_BATCHES", "PIPELINE_PAUSE",
		"LLM_TIMEOUT", "LLM_MIN_CONFIDENCE",
	} {
		t.Setenv(name, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "cafescout" || cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Pipeline.BatchSize != 20 || cfg.Pipeline.MaxBatches != 5 {
		t.Fatalf("unexpected pipeline defaults: %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.Pause != 2*time.Second {
		t.Fatalf("expected 2s pause default, got %s", cfg.Pipeline.Pause)
	}
}

func TestLoadYAMLOverrideAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("http_port: \"9090\"\ncron_secret: from-file\npipeline:\n  batch_size: 10\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("CRON_SECRET", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected file override for port, got %s", cfg.HTTPPort)
	}
	if cfg.Pipeline.BatchSize != 10 {
		t.Fatalf("expected file override for batch size, got %d", cfg.Pipeline.BatchSize)
	}
	if cfg.CronSecret != "from-env" {
		t.Fatalf("env must win over file for secrets, got %q", cfg.CronSecret)
	}
}

func TestValidateRejectsImpossibleTunings(t *testing.T) {
	base := Config{
		Pipeline: PipelineConfig{BatchSize: 20, MaxBatches: 5, Pause: 2 * time.Second},
		LLM:      LLMConfig{Timeout: 30 * time.Second},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := base
	bad.Pipeline.BatchSize = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for zero batch size")
	}

	bad = base
	bad.Pipeline.MaxBatches = 100
	bad.Pipeline.Pause = 10 * time.Second
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error when pauses exceed the trigger deadline")
	}

	bad = base
	bad.LLM.Timeout = 120 * time.Second
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error when batch latency budget exceeds the trigger deadline")
	}

	bad = base
	bad.LLM.MinConfidence = 1.5
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for out-of-range confidence threshold")
	}
}
