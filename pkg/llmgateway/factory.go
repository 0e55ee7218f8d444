package llmgateway

import (
	"fmt"

	"disaster-safety-assistant/pkg/deepseek"
	"disaster-safety-assistant/pkg/gemini"
)

// ProviderConfig describes the configured upstream provider.
type ProviderConfig struct {
	Name    string // "gemini" or "deepseek"
	APIKey  string
	BaseURL string
}

// NewFactory builds a Factory for the configured provider. The streaming flag
// is part of the cache key so a future streaming client gets its own
// connection; the current clients ignore it.
func NewFactory(cfg ProviderConfig) (Factory, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s: API key is required", cfg.Name)
	}

	switch cfg.Name {
	case "gemini":
		return func(model string, _ bool) (Provider, error) {
			client, err := gemini.New(gemini.Config{
				APIKey: cfg.APIKey,
				Model:  model,
				APIURL: cfg.BaseURL,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create gemini client: %w", err)
			}
			return NewGeminiAdapter(client), nil
		}, nil

	case "deepseek":
		return func(model string, _ bool) (Provider, error) {
			client, err := deepseek.New(deepseek.Config{
				APIKey:  cfg.APIKey,
				Model:   model,
				BaseURL: cfg.BaseURL,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create deepseek client: %w", err)
			}
			return NewDeepSeekAdapter(client), nil
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Name)
	}
}
