package config

// FetchConfig defines configuration for HTTP document fetches
type FetchConfig struct {
	// Request timeout in seconds for a single attempt
	TimeoutSecs int `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1,max=300"`
	// Total number of attempts before the fetch is considered failed
	RetryAttempts int `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty" validate:"omitempty,min=1,max=10"`
	// Fixed delay in milliseconds between attempts
	RetryDelayMs int `json:"retry_delay_ms,omitempty" yaml:"retry_delay_ms,omitempty" validate:"omitempty,min=0,max=60000"`
}

// NewDefaultFetchConfig creates default fetch configuration
func NewDefaultFetchConfig() FetchConfig {
	return FetchConfig{
		TimeoutSecs:   DefaultEC2TimeoutSecs,
		RetryAttempts: DefaultFetchRetryAttempts,
		RetryDelayMs:  DefaultFetchRetryDelayMs,
	}
}
