package config

const (
	// Ookla Defaults
	DefaultOoklaAPIURL      = "https://www.speedtest.net/api/js/servers?engine=js&search=Japan&limit=100"
	DefaultOoklaUserAgent   = "github-actions-ookla-targets/1.0"
	DefaultOoklaCountry     = "Japan"
	DefaultOoklaOutputDir   = "out"
	DefaultOoklaIPv4File    = "ookla_icmp_targets_ipv4.json"
	DefaultOoklaIPv6File    = "ookla_icmp_targets_ipv6.json"
	DefaultOoklaTimeoutSecs = 30

	// EC2 Reachability Defaults
	DefaultEC2IPv4URL      = "http://ec2-reachability.amazonaws.com/"
	DefaultEC2IPv6URL      = "http://ipv6.ec2-reachability.amazonaws.com/"
	DefaultEC2UserAgent    = "Mozilla/5.0 (+Prometheus-HTTP-SD-AWS-Reachability; contact=ops@example.com)"
	DefaultEC2OutputDir    = "."
	DefaultEC2CombinedFile = "aws-targets.json"
	DefaultEC2IPv4File     = "aws-targets-ipv4.json"
	DefaultEC2IPv6File     = "aws-targets-ipv6.json"
	DefaultEC2TimeoutSecs  = 20

	// Fetch Defaults
	DefaultFetchRetryAttempts = 3
	DefaultFetchRetryDelayMs  = 1500

	// Output format modes
	OutputFormatPretty  = "pretty"
	OutputFormatCompact = "compact"

	// Resolver Defaults
	DefaultResolverTimeoutSecs = 10
	DefaultResolverConcurrency = 8

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Scheduler Defaults
	DefaultSchedulerRefreshIntervalMins = 360 // 6 hours
)
