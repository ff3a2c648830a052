package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/FACorreiaa/go-trip-planner/internal/app/models"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	ResolutionLastResolved = "last-resolved"
	ResolutionLatestIssued = "latest-issued"
)

type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the provider endpoint, e.g. for OpenAI compatible
	// gateways. Empty uses the provider default.
	BaseURL string
}

type GeocodingConfig struct {
	BaseURL   string
	UserAgent string
}

// ObservabilityConfig drives the tracer and meter providers. An empty
// OTLPEndpoint disables trace export.
type ObservabilityConfig struct {
	ServiceName      string
	ServiceVersion   string
	MetricsAddr      string
	MetricsPath      string
	OTLPEndpoint     string
	TraceSampleRatio float64
	PprofAddr        string
}

type PlannerConfig struct {
	SessionTTL time.Duration
	Resolution string
}

type Config struct {
	ServerPort    string
	LogLevel      string
	LLM           LLMConfig
	Geocoding     GeocodingConfig
	Observability ObservabilityConfig
	Planner       PlannerConfig
}

var defaultModels = map[string]string{
	ProviderGemini: "gemini-1.5-flash",
	ProviderOpenAI: "gpt-4o-mini",
}

// Load reads the configuration from the environment. The LLM credential is
// not checked here; callers that talk to the generative service call
// RequireLLM at startup.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8091")
	v.SetDefault("log.level", "info")
	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("geocoding.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoding.user_agent", "go-trip-planner/1.0")
	v.SetDefault("observability.service_name", "trip-planner")
	v.SetDefault("observability.service_version", "1.0.0")
	v.SetDefault("observability.metrics_addr", ":9092")
	v.SetDefault("observability.metrics_path", "/metrics")
	v.SetDefault("observability.trace_sample_ratio", 1.0)
	v.SetDefault("observability.otlp_endpoint", "otel-collector:4318")
	v.SetDefault("planner.session_ttl", 30*time.Minute)
	v.SetDefault("planner.resolution", ResolutionLastResolved)

	bindings := map[string][]string{
		"server.port":                      {"SERVER_PORT"},
		"log.level":                        {"LOG_LEVEL"},
		"llm.provider":                     {"LLM_PROVIDER"},
		"llm.model":                        {"LLM_MODEL"},
		"llm.api_key":                      {"LLM_API_KEY"},
		"llm.base_url":                     {"LLM_BASE_URL"},
		"llm.gemini_api_key":               {"GEMINI_API_KEY"},
		"llm.openai_api_key":               {"OPENAI_API_KEY"},
		"geocoding.base_url":               {"NOMINATIM_URL"},
		"geocoding.user_agent":             {"NOMINATIM_USER_AGENT"},
		"observability.service_name":       {"SERVICE_NAME"},
		"observability.service_version":    {"SERVICE_VERSION"},
		"observability.metrics_addr":       {"METRICS_ADDR"},
		"observability.metrics_path":       {"METRICS_PATH"},
		"observability.trace_sample_ratio": {"TRACE_SAMPLE_RATIO"},
		"observability.otlp_endpoint":      {"OTLP_ENDPOINT"},
		"observability.pprof_addr":         {"PPROF_ADDR"},
		"planner.session_ttl":              {"SESSION_TTL"},
		"planner.resolution":               {"PLANNER_RESOLUTION"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	provider := strings.ToLower(strings.TrimSpace(v.GetString("llm.provider")))
	cfg := &Config{
		ServerPort: v.GetString("server.port"),
		LogLevel:   v.GetString("log.level"),
		LLM: LLMConfig{
			Provider: provider,
			APIKey:   apiKeyFor(v, provider),
			Model:    v.GetString("llm.model"),
			BaseURL:  v.GetString("llm.base_url"),
		},
		Geocoding: GeocodingConfig{
			BaseURL:   strings.TrimRight(v.GetString("geocoding.base_url"), "/"),
			UserAgent: v.GetString("geocoding.user_agent"),
		},
		Observability: ObservabilityConfig{
			ServiceName:      v.GetString("observability.service_name"),
			ServiceVersion:   v.GetString("observability.service_version"),
			MetricsAddr:      v.GetString("observability.metrics_addr"),
			MetricsPath:      v.GetString("observability.metrics_path"),
			OTLPEndpoint:     v.GetString("observability.otlp_endpoint"),
			TraceSampleRatio: v.GetFloat64("observability.trace_sample_ratio"),
			PprofAddr:        v.GetString("observability.pprof_addr"),
		},
		Planner: PlannerConfig{
			SessionTTL: v.GetDuration("planner.session_ttl"),
			Resolution: strings.ToLower(v.GetString("planner.resolution")),
		},
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModels[provider]
	}

	switch cfg.Planner.Resolution {
	case ResolutionLastResolved, ResolutionLatestIssued:
	default:
		return nil, fmt.Errorf("PLANNER_RESOLUTION must be %q or %q, got %q",
			ResolutionLastResolved, ResolutionLatestIssued, cfg.Planner.Resolution)
	}
	if r := cfg.Observability.TraceSampleRatio; r < 0 || r > 1 {
		return nil, fmt.Errorf("TRACE_SAMPLE_RATIO must be between 0 and 1, got %v", r)
	}
	if !strings.HasPrefix(cfg.Observability.MetricsPath, "/") {
		cfg.Observability.MetricsPath = "/" + cfg.Observability.MetricsPath
	}
	if cfg.Planner.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Planner.SessionTTL)
	}

	return cfg, nil
}

// apiKeyFor prefers LLM_API_KEY, then the provider specific variable.
func apiKeyFor(v *viper.Viper, provider string) string {
	if key := v.GetString("llm.api_key"); key != "" {
		return key
	}
	switch provider {
	case ProviderOpenAI:
		return v.GetString("llm.openai_api_key")
	default:
		return v.GetString("llm.gemini_api_key")
	}
}

// RequireLLM fails fast when the generative service cannot be reached with
// the current configuration.
func (c *Config) RequireLLM() error {
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("%w: set GEMINI_API_KEY or LLM_API_KEY", models.ErrMissingAPIKey)
		}
	case ProviderOpenAI:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("%w: set OPENAI_API_KEY or LLM_API_KEY", models.ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("%w: %q", models.ErrUnsupportedProvider, c.LLM.Provider)
	}
	return nil
}
