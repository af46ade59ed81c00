package config

// EC2Config defines configuration for the EC2 reachability page source
type EC2Config struct {
	// Whether this source runs as part of the full pipeline
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Reachability page listing IPv4 test addresses
	IPv4URL string `json:"ipv4_url,omitempty" yaml:"ipv4_url,omitempty" validate:"omitempty,url"`
	// Reachability page listing IPv6 test addresses
	IPv6URL string `json:"ipv6_url,omitempty" yaml:"ipv6_url,omitempty" validate:"omitempty,url"`
	// User-Agent header sent with page requests
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	// Directory target files are written into
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	// Combined IPv4+IPv6 target file name
	CombinedFile string `json:"combined_file,omitempty" yaml:"combined_file,omitempty"`
	// IPv4-only target file name
	IPv4File string `json:"ipv4_file,omitempty" yaml:"ipv4_file,omitempty"`
	// IPv6-only target file name
	IPv6File string `json:"ipv6_file,omitempty" yaml:"ipv6_file,omitempty"`
	// Output format: pretty or compact
	Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,sdformat"`
	// Fetch behavior for page requests
	Fetch FetchConfig `json:"fetch,omitempty" yaml:"fetch,omitempty"`
}

// NewDefaultEC2Config creates default EC2 reachability source configuration
func NewDefaultEC2Config() EC2Config {
	return EC2Config{
		Enabled:      true,
		IPv4URL:      DefaultEC2IPv4URL,
		IPv6URL:      DefaultEC2IPv6URL,
		UserAgent:    DefaultEC2UserAgent,
		OutputDir:    DefaultEC2OutputDir,
		CombinedFile: DefaultEC2CombinedFile,
		IPv4File:     DefaultEC2IPv4File,
		IPv6File:     DefaultEC2IPv6File,
		Format:       OutputFormatCompact,
		Fetch:        NewDefaultFetchConfig(),
	}
}
