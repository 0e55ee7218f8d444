package deepseek

import "time"

const (
	// DefaultModel is the default DeepSeek model
	DefaultModel = "deepseek-chat"

	// DefaultBaseURL is the default DeepSeek API endpoint
	DefaultBaseURL = "https://api.deepseek.com"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 60 * time.Second
)
