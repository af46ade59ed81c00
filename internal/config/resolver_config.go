package config

// ResolverConfig defines configuration for DNS resolution of extracted hostnames
type ResolverConfig struct {
	// Timeout in seconds for resolving one address family of one host
	TimeoutSecs int `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1,max=120"`
	// Maximum number of hosts resolved concurrently
	Concurrency int `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"omitempty,min=1,max=64"`
}

// NewDefaultResolverConfig creates default resolver configuration
func NewDefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		TimeoutSecs: DefaultResolverTimeoutSecs,
		Concurrency: DefaultResolverConcurrency,
	}
}
