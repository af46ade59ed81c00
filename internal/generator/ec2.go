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
	"github.com/ragujp/prometheus-sample-configs/internal/sdfile"
)

// SourceNameEC2 identifies the EC2 reachability source.
const SourceNameEC2 = "ec2-reachability"

// EC2Source generates probe targets from the EC2 reachability pages: scrape
// the IPv4 and IPv6 test-address tables and write a combined file plus one
// file per address family.
type EC2Source struct {
	cfg        config.EC2Config
	fetcher    fetcher.Fetcher
	extractor  *extractor.ReachabilityExtractor
	normalizer *normalizer.ReachabilityNormalizer
	differ     *differ.GroupDiffer
	logger     zerolog.Logger
}

// EC2SourceBuilder provides a fluent interface for creating EC2Source
type EC2SourceBuilder struct {
	cfg     config.EC2Config
	fetcher fetcher.Fetcher
	logger  zerolog.Logger
}

// NewEC2SourceBuilder creates a new builder seeded with defaults
func NewEC2SourceBuilder(logger zerolog.Logger) *EC2SourceBuilder {
	return &EC2SourceBuilder{
		cfg:    config.NewDefaultEC2Config(),
		logger: logger,
	}
}

// WithConfig sets the source configuration
func (b *EC2SourceBuilder) WithConfig(cfg config.EC2Config) *EC2SourceBuilder {
	b.cfg = cfg
	return b
}

// WithFetcher overrides the HTTP fetcher
func (b *EC2SourceBuilder) WithFetcher(f fetcher.Fetcher) *EC2SourceBuilder {
	b.fetcher = f
	return b
}

// Build creates the EC2Source instance
func (b *EC2SourceBuilder) Build() (*EC2Source, error) {
	if b.cfg.IPv4URL == "" || b.cfg.IPv6URL == "" {
		return nil, errorwrapper.NewValidationError("page_url", "", "reachability page URLs cannot be empty")
	}

	sourceFetcher := b.fetcher
	if sourceFetcher == nil {
		sourceFetcher = fetcher.NewClient(b.cfg.Fetch, b.cfg.UserAgent, b.logger)
	}

	return &EC2Source{
		cfg:        b.cfg,
		fetcher:    sourceFetcher,
		extractor:  extractor.NewReachabilityExtractor(b.logger),
		normalizer: normalizer.NewReachabilityNormalizer(b.logger),
		differ:     differ.NewGroupDiffer(b.logger),
		logger:     b.logger.With().Str("component", "EC2Source").Logger(),
	}, nil
}

// Name implements Source.
func (s *EC2Source) Name() string {
	return SourceNameEC2
}

// Generate implements Source.
func (s *EC2Source) Generate(ctx context.Context) (models.RunSummary, error) {
	start := time.Now()

	pages := []struct {
		url  string
		body []byte
		err  error
	}{
		{url: s.cfg.IPv4URL},
		{url: s.cfg.IPv6URL},
	}

	var wg sync.WaitGroup
	for i := range pages {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pages[i].body, pages[i].err = s.fetcher.Fetch(ctx, pages[i].url)
		}(i)
	}
	wg.Wait()

	for _, page := range pages {
		if page.err != nil {
			return models.RunSummary{}, errorwrapper.WrapError(page.err, "failed to fetch reachability page")
		}
	}

	rowsV4 := s.extractor.Extract(pages[0].body)
	rowsV6 := s.extractor.Extract(pages[1].body)
	s.logger.Info().Int("ipv4_rows", len(rowsV4)).Int("ipv6_rows", len(rowsV6)).Msg("Extracted reachability rows")

	var groups []sdfile.TargetGroup
	for _, rows := range [][]models.ReachabilityRow{rowsV4, rowsV6} {
		for _, row := range rows {
			if group, ok := s.normalizer.Normalize(row); ok {
				groups = append(groups, group)
			}
		}
	}
	ipv4, ipv6 := sdfile.Partition(groups)

	ipv4 = sdfile.Dedupe(ipv4)
	ipv6 = sdfile.Dedupe(ipv6)

	combined := make([]sdfile.TargetGroup, 0, len(ipv4)+len(ipv6))
	combined = append(append(combined, ipv4...), ipv6...)

	columns := reachabilitySortColumns()
	sdfile.SortGroups(combined, columns)
	sdfile.SortGroups(ipv4, columns)
	sdfile.SortGroups(ipv6, columns)

	format := sdfile.ParseFormat(s.cfg.Format)
	files := make([]models.FileSummary, 0, 3)
	for _, out := range []struct {
		name   string
		groups []sdfile.TargetGroup
	}{
		{s.cfg.CombinedFile, combined},
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
		Source:      SourceNameEC2,
		Candidates:  len(rowsV4) + len(rowsV6),
		IPv4Groups:  len(ipv4),
		IPv6Groups:  len(ipv6),
		Files:       files,
		RunDuration: time.Since(start),
	}, nil
}

// reachabilitySortColumns orders groups by geography, then the literal
// address, then the address family.
func reachabilitySortColumns() []sdfile.SortColumn {
	return []sdfile.SortColumn{
		sdfile.LabelColumn("area"),
		sdfile.LabelColumn("region"),
		sdfile.LabelColumn("city"),
		sdfile.FirstTargetColumn(),
		sdfile.LabelColumn("ip_version"),
	}
}
