package config

// OoklaConfig defines configuration for the Ookla speedtest server source
type OoklaConfig struct {
	// Whether this source runs as part of the full pipeline
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Speedtest server list API endpoint
	APIURL string `json:"api_url,omitempty" yaml:"api_url,omitempty" validate:"omitempty,url"`
	// User-Agent header sent with API requests
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	// Only servers whose country matches exactly are kept
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
	// Directory target files are written into
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	// IPv4 target file name
	IPv4File string `json:"ipv4_file,omitempty" yaml:"ipv4_file,omitempty"`
	// IPv6 target file name
	IPv6File string `json:"ipv6_file,omitempty" yaml:"ipv6_file,omitempty"`
	// Output format: pretty or compact
	Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,sdformat"`
	// Fetch behavior for the API request
	Fetch FetchConfig `json:"fetch,omitempty" yaml:"fetch,omitempty"`
}

// NewDefaultOoklaConfig creates default Ookla source configuration
func NewDefaultOoklaConfig() OoklaConfig {
	fetch := NewDefaultFetchConfig()
	fetch.TimeoutSecs = DefaultOoklaTimeoutSecs

	return OoklaConfig{
		Enabled:   true,
		APIURL:    DefaultOoklaAPIURL,
		UserAgent: DefaultOoklaUserAgent,
		Country:   DefaultOoklaCountry,
		OutputDir: DefaultOoklaOutputDir,
		IPv4File:  DefaultOoklaIPv4File,
		IPv6File:  DefaultOoklaIPv6File,
		Format:    OutputFormatPretty,
		Fetch:     fetch,
	}
}
