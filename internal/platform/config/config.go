package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `yaml:"service_name"`
	HTTPPort    string `yaml:"http_port"`
	PostgresDSN string `yaml:"postgres_dsn"`

	// CronSecret authorizes the scheduled pipeline trigger. Empty means the
	// trigger endpoint refuses every call.
	CronSecret string `yaml:"cron_secret"`

	Pipeline PipelineConfig `yaml:"pipeline"`
	LLM      LLMConfig      `yaml:"llm"`
	Photos   PhotosConfig   `yaml:"photos"`

	OutboxPollInterval time.Duration `yaml:"outbox_poll_interval"`
}

type PipelineConfig struct {
	BatchSize  int           `yaml:"batch_size"`
	MaxBatches int           `yaml:"max_batches"`
	Pause      time.Duration `yaml:"pause"`
	LeaseTTL   time.Duration `yaml:"lease_ttl"`
	Verbose    bool          `yaml:"verbose"`
}

type LLMConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`

	// MinConfidence below which a non-rejected verdict is flagged for a
	// human instead of auto-applied.
	MinConfidence float64 `yaml:"min_confidence"`
}

type PhotosConfig struct {
	Region   string `yaml:"region"`
	Bucket   string `yaml:"bucket"`
	Endpoint string `yaml:"endpoint"`
}

// triggerDeadline is the wall-clock ceiling a scheduled trigger runs under.
const triggerDeadline = 300 * time.Second

// Load reads environment variables, then applies overrides from the YAML
// file named by CONFIG_FILE when set. Env wins for secrets so deployments
// can keep credentials out of the file.
func Load() (Config, error) {
	cfg := Config{
		ServiceName: "cafescout",
		HTTPPort:    "8080",
		Pipeline: PipelineConfig{
			BatchSize:  20,
			MaxBatches: 5,
			Pause:      2 * time.Second,
			LeaseTTL:   5 * time.Minute,
		},
		LLM: LLMConfig{
			Timeout:       30 * time.Second,
			MinConfidence: 0.7,
		},
		OutboxPollInterval: 2 * time.Second,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.ServiceName, "SERVICE_NAME")
	setString(&cfg.HTTPPort, "HTTP_PORT")
	setString(&cfg.PostgresDSN, "POSTGRES_DSN")
	setString(&cfg.CronSecret, "CRON_SECRET")

	setInt(&cfg.Pipeline.BatchSize, "PIPELINE_BATCH_SIZE")
	setInt(&cfg.Pipeline.MaxBatches, "PIPELINE_MAX_BATCHES")
	setDuration(&cfg.Pipeline.Pause, "PIPELINE_PAUSE")
	setDuration(&cfg.Pipeline.LeaseTTL, "PIPELINE_LEASE_TTL")
	cfg.Pipeline.Verbose = envBool("PIPELINE_VERBOSE", cfg.Pipeline.Verbose)

	setString(&cfg.LLM.APIKey, "OPENAI_API_KEY")
	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	setDuration(&cfg.LLM.Timeout, "LLM_TIMEOUT")
	setFloat(&cfg.LLM.MinConfidence, "LLM_MIN_CONFIDENCE")

	setString(&cfg.Photos.Region, "PHOTOS_S3_REGION")
	setString(&cfg.Photos.Bucket, "PHOTOS_S3_BUCKET")
	setString(&cfg.Photos.Endpoint, "PHOTOS_S3_ENDPOINT")

	setDuration(&cfg.OutboxPollInterval, "OUTBOX_POLL_INTERVAL")
}

// Validate rejects tunings that cannot finish inside the trigger deadline.
// The budget charges each batch one full model timeout plus the inter-batch
// pause, so a run that hits the model's worst case on every batch still fits.
func (c Config) Validate() error {
	if c.Pipeline.BatchSize <= 0 {
		return errors.New("pipeline batch_size must be positive")
	}
	if c.Pipeline.MaxBatches <= 0 {
		return errors.New("pipeline max_batches must be positive")
	}
	if c.Pipeline.Pause < 0 {
		return errors.New("pipeline pause must not be negative")
	}
	if c.LLM.MinConfidence < 0 || c.LLM.MinConfidence > 1 {
		return errors.New("llm min_confidence must be within [0, 1]")
	}

	latencyBudget := time.Duration(c.Pipeline.MaxBatches) * c.LLM.Timeout
	pauseBudget := time.Duration(c.Pipeline.MaxBatches-1) * c.Pipeline.Pause
	if runBudget := latencyBudget + pauseBudget; runBudget >= triggerDeadline {
		return fmt.Errorf("pipeline worst case %s exceeds the %s trigger deadline", runBudget, triggerDeadline)
	}
	return nil
}

func setString(target *string, name string) {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		*target = value
	}
}

func setInt(target *int, name string) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return
	}
	if value, err := strconv.Atoi(raw); err == nil {
		*target = value
	}
}

func setFloat(target *float64, name string) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return
	}
	if value, err := strconv.ParseFloat(raw, 64); err == nil {
		*target = value
	}
}

func setDuration(target *time.Duration, name string) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return
	}
	if value, err := time.ParseDuration(raw); err == nil {
		*target = value
	}
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
