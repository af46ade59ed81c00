package generator

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ragujp/prometheus-sample-configs/internal/config"
	"github.com/ragujp/prometheus-sample-configs/internal/differ"
	"github.com/ragujp/prometheus-sample-configs/internal/errorwrapper"
	"github.com/ragujp/prometheus-sample-configs/internal/extractor"
	"github.com/ragujp/prometheus-sample-configs/internal/fetcher"
	"github.com/ragujp/prometheus-sample-configs/internal/models"
	"github.com/ragujp/prometheus-sample-configs/internal/normalizer"
	"github.com/ragujp/prometheus-sample-configs/internal/resolver"
	"github.com/ragujp/prometheus-sample-configs/internal/sdfile"
)

// SourceNameOokla identifies the speedtest server source.
const SourceNameOokla = "ookla"

// OoklaSource generates ICMP probe targets from the speedtest server
// catalog: fetch the server list, resolve each server host, and write one
// target file per address family.
type OoklaSource struct {
	cfg         config.OoklaConfig
	resolverCfg config.ResolverConfig
	fetcher     fetcher.Fetcher
	resolver    resolver.Resolver
	extractor   *extractor.SpeedtestExtractor
	normalizer  *normalizer.SpeedtestNormalizer
	differ      *differ.GroupDiffer
	logger      zerolog.Logger
}

// OoklaSourceBuilder provides a fluent interface for creating OoklaSource
type OoklaSourceBuilder struct {
	cfg         config.OoklaConfig
	resolverCfg config.ResolverConfig
	fetcher     fetcher.Fetcher
	resolver    resolver.Resolver
	logger      zerolog.Logger
}

// NewOoklaSourceBuilder creates a new builder seeded with defaults
func NewOoklaSourceBuilder(logger zerolog.Logger) *OoklaSourceBuilder {
	return &OoklaSourceBuilder{
		cfg:         config.NewDefaultOoklaConfig(),
		resolverCfg: config.NewDefaultResolverConfig(),
		logger:      logger,
	}
}

// WithConfig sets the source configuration
func (b *OoklaSourceBuilder) WithConfig(cfg config.OoklaConfig) *OoklaSourceBuilder {
	b.cfg = cfg
	return b
}

// WithResolverConfig sets the resolver configuration
func (b *OoklaSourceBuilder) WithResolverConfig(cfg config.ResolverConfig) *OoklaSourceBuilder {
	b.resolverCfg = cfg
	return b
}

// WithFetcher overrides the HTTP fetcher
func (b *OoklaSourceBuilder) WithFetcher(f fetcher.Fetcher) *OoklaSourceBuilder {
	b.fetcher = f
	return b
}

// WithResolver overrides the address resolver
func (b *OoklaSourceBuilder) WithResolver(r resolver.Resolver) *OoklaSourceBuilder {
	b.resolver = r
	return b
}

// Build creates the OoklaSource instance
func (b *OoklaSourceBuilder) Build() (*OoklaSource, error) {
	if b.cfg.APIURL == "" {
		return nil, errorwrapper.NewValidationError("api_url", b.cfg.APIURL, "API URL cannot be empty")
	}

	sourceFetcher := b.fetcher
	if sourceFetcher == nil {
		sourceFetcher = fetcher.NewClient(b.cfg.Fetch, b.cfg.UserAgent, b.logger)
	}

	sourceResolver := b.resolver
	if sourceResolver == nil {
		sourceResolver = resolver.NewNet(b.resolverCfg, b.logger)
	}

	return &OoklaSource{
		cfg:         b.cfg,
		resolverCfg: b.resolverCfg,
		fetcher:     sourceFetcher,
		resolver:    sourceResolver,
		extractor:   extractor.NewSpeedtestExtractor(b.cfg.Country, b.logger),
		normalizer:  normalizer.NewSpeedtestNormalizer(b.logger),
		differ:      differ.NewGroupDiffer(b.logger),
		logger:      b.logger.With().Str("component", "OoklaSource").Logger(),
	}, nil
}

// Name implements Source.
func (s *OoklaSource) Name() string {
	return SourceNameOokla
}

// Generate implements Source.
func (s *OoklaSource) Generate(ctx context.Context) (models.RunSummary, error) {
	start := time.Now()

	body, err := s.fetcher.Fetch(ctx, s.cfg.APIURL)
	if err != nil {
		return models.RunSummary{}, errorwrapper.WrapError(err, "failed to fetch server list")
	}

	servers, err := s.extractor.Extract(body)
	if err != nil {
		return models.RunSummary{}, errorwrapper.WrapError(err, "failed to extract server list")
	}
	s.logger.Info().Int("servers", len(servers)).Str("country", s.cfg.Country).Msg("Extracted speedtest servers")

	fqdns := make([]string, len(servers))
	for i := range servers {
		fqdns[i] = resolver.StripPort(servers[i].Host)
	}

	addrs, err := s.resolveAll(ctx, fqdns)
	if err != nil {
		return models.RunSummary{}, errorwrapper.WrapError(err, "failed to resolve server hosts")
	}

	var groups []sdfile.TargetGroup
	for i := range servers {
		groups = append(groups, s.normalizer.Normalize(servers[i], fqdns[i], addrs[i])...)
	}
	ipv4, ipv6 := sdfile.Partition(groups)

	columns := ooklaSortColumns()
	ipv4 = sdfile.Dedupe(ipv4)
	ipv6 = sdfile.Dedupe(ipv6)
	sdfile.SortGroups(ipv4, columns)
	sdfile.SortGroups(ipv6, columns)

	format := sdfile.ParseFormat(s.cfg.Format)
	files := make([]models.FileSummary, 0, 2)
	for _, out := range []struct {
		name   string
		groups []sdfile.TargetGroup
	}{
		{s.cfg.IPv4File, ipv4},
		{s.cfg.IPv6File, ipv6},
	} {
		file, writeErr := writeTargetFile(s.logger, s.differ, filepath.Join(s.cfg.OutputDir, out.name), out.groups, format)
		if writeErr != nil {
			return models.RunSummary{}, errorwrapper.WrapError(writeErr, "failed to write target file")
		}
		files = append(files, file)
	}

	return models.RunSummary{
		Source:      SourceNameOokla,
		Candidates:  len(servers),
		IPv4Groups:  len(ipv4),
		IPv6Groups:  len(ipv6),
		Files:       files,
		RunDuration: time.Since(start),
	}, nil
}

// resolveAll resolves every host with bounded concurrency, preserving input
// order in the result. The first resolver failure fails the whole batch.
func (s *OoklaSource) resolveAll(ctx context.Context, fqdns []string) ([]resolver.HostAddresses, error) {
	concurrency := s.resolverCfg.Concurrency
	if concurrency <= 0 {
		concurrency = config.DefaultResolverConcurrency
	}

	results := make([]resolver.HostAddresses, len(fqdns))
	errs := make([]error, len(fqdns))
	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	for i, fqdn := range fqdns {
		wg.Add(1)
		go func(i int, fqdn string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i], errs[i] = s.resolver.Resolve(ctx, fqdn)
		}(i, fqdn)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// ooklaSortColumns is the column priority that keeps output diffs minimal
// across runs with volatile upstream ordering.
func ooklaSortColumns() []sdfile.SortColumn {
	return []sdfile.SortColumn{
		sdfile.LabelColumn("city"),
		sdfile.LabelColumn("sponsor"),
		sdfile.LabelColumn("ookla_id"),
		sdfile.LabelColumn("ip_family"),
		sdfile.LabelColumn("fqdn"),
		sdfile.LabelColumn("url"),
		sdfile.TargetsColumn(),
	}
}
