package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Dialogue orchestration
	Engine EngineConfig
	Memory MemoryConfig

	// LLM provider
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	RateLimitPerMin int
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// EngineConfig bounds the per-turn orchestration loop.
type EngineConfig struct {
	TurnTimeout time.Duration
	MaxSteps    int
}

// MemoryConfig configures the two-tier conversation memory.
type MemoryConfig struct {
	SQLitePath         string
	CheckpointCapacity int
	CheckpointTTL      time.Duration
}

// LLMConfig holds configuration for the LLM gateway.
type LLMConfig struct {
	Provider      string
	APIKey        string
	BaseURL       string
	Model         string
	RetryAttempts int
	RetryDelay    time.Duration
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = viper.GetInt("http_server.rate_limit_per_min")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Engine
	cfg.Engine.TurnTimeout = viper.GetDuration("engine.turn_timeout")
	cfg.Engine.MaxSteps = viper.GetInt("engine.max_steps")

	// Memory
	cfg.Memory.SQLitePath = viper.GetString("memory.sqlite_path")
	cfg.Memory.CheckpointCapacity = viper.GetInt("memory.checkpoint_capacity")
	cfg.Memory.CheckpointTTL = viper.GetDuration("memory.checkpoint_ttl")

	// LLM provider
	cfg.LLM.Provider = viper.GetString("llm.provider")
	cfg.LLM.APIKey = expandEnvVar(viper.GetString("llm.api_key"))
	cfg.LLM.BaseURL = viper.GetString("llm.base_url")
	cfg.LLM.Model = viper.GetString("llm.model")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetDuration("llm.retry_delay")

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.rate_limit_per_min", 60)
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Engine defaults
	viper.SetDefault("engine.turn_timeout", "40s")
	viper.SetDefault("engine.max_steps", 12)

	// Memory defaults
	viper.SetDefault("memory.sqlite_path", "data/conversations.db")
	viper.SetDefault("memory.checkpoint_capacity", 10000)
	viper.SetDefault("memory.checkpoint_ttl", "30m")

	// LLM defaults
	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.api_key", "${GEMINI_API_KEY}")
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateLLMConfig validates the LLM configuration.
func validateLLMConfig(cfg *LLMConfig) error {
	switch cfg.Provider {
	case "gemini", "deepseek":
	case "":
		return fmt.Errorf("llm.provider is required")
	default:
		return fmt.Errorf("unknown llm.provider %q (want gemini or deepseek)", cfg.Provider)
	}

	if cfg.APIKey == "" || strings.HasPrefix(cfg.APIKey, "${") {
		fmt.Printf("Warning: provider %s has no API key configured\n", cfg.Provider)
	}

	return nil
}
