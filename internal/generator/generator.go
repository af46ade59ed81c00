// Package generator runs the per-source pipelines: fetch, extract, resolve,
// normalize, dedupe, sort, write. Sources are independent and run in
// parallel; each one fails as a unit without affecting the others.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ragujp/prometheus-sample-configs/internal/config"
	"github.com/ragujp/prometheus-sample-configs/internal/differ"
	"github.com/ragujp/prometheus-sample-configs/internal/errorwrapper"
	"github.com/ragujp/prometheus-sample-configs/internal/models"
	"github.com/ragujp/prometheus-sample-configs/internal/sdfile"
)

// Source generates the target files for one upstream system.
type Source interface {
	// Name identifies the source in logs and summaries.
	Name() string
	// Generate runs the source pipeline end to end.
	Generate(ctx context.Context) (models.RunSummary, error)
}

// Generator coordinates all configured sources.
type Generator struct {
	sources []Source
	logger  zerolog.Logger
}

// New wires the enabled sources from the global configuration.
func New(cfg *config.GlobalConfig, logger zerolog.Logger) (*Generator, error) {
	var sources []Source

	if cfg.OoklaConfig.Enabled {
		ooklaSource, err := NewOoklaSourceBuilder(logger).
			WithConfig(cfg.OoklaConfig).
			WithResolverConfig(cfg.ResolverConfig).
			Build()
		if err != nil {
			return nil, errorwrapper.WrapError(err, "failed to build ookla source")
		}
		sources = append(sources, ooklaSource)
	}

	if cfg.EC2Config.Enabled {
		ec2Source, err := NewEC2SourceBuilder(logger).
			WithConfig(cfg.EC2Config).
			Build()
		if err != nil {
			return nil, errorwrapper.WrapError(err, "failed to build ec2 reachability source")
		}
		sources = append(sources, ec2Source)
	}

	if len(sources) == 0 {
		return nil, errorwrapper.NewError("no sources enabled")
	}

	return NewFromSources(logger, sources...), nil
}

// NewFromSources creates a Generator over an explicit source list.
func NewFromSources(logger zerolog.Logger, sources ...Source) *Generator {
	return &Generator{
		sources: sources,
		logger:  logger.With().Str("component", "Generator").Logger(),
	}
}

// Run executes every source in parallel and returns the summaries of the
// sources that completed. Failed sources are reported in the joined error.
func (g *Generator) Run(ctx context.Context) ([]models.RunSummary, error) {
	summaries := make([]models.RunSummary, len(g.sources))
	errs := make([]error, len(g.sources))

	var wg sync.WaitGroup
	for i, source := range g.sources {
		wg.Add(1)
		go func(i int, source Source) {
			defer wg.Done()
			summary, err := source.Generate(ctx)
			if err != nil {
				errs[i] = errorwrapper.WrapError(err, fmt.Sprintf("source '%s' failed", source.Name()))
				return
			}
			summaries[i] = summary
		}(i, source)
	}
	wg.Wait()

	completed := make([]models.RunSummary, 0, len(g.sources))
	for i := range summaries {
		if errs[i] != nil {
			g.logger.Error().Err(errs[i]).Str("source", g.sources[i].Name()).Msg("Source run failed")
			continue
		}
		g.logger.Info().
			Str("source", summaries[i].Source).
			Int("candidates", summaries[i].Candidates).
			Int("ipv4_groups", summaries[i].IPv4Groups).
			Int("ipv6_groups", summaries[i].IPv6Groups).
			Dur("duration", summaries[i].RunDuration).
			Msg("Source run completed")
		completed = append(completed, summaries[i])
	}

	return completed, errors.Join(errs...)
}

// writeTargetFile logs how the file changed since the previous run and then
// replaces it whole.
func writeTargetFile(logger zerolog.Logger, groupDiffer *differ.GroupDiffer, path string, groups []sdfile.TargetGroup, format sdfile.Format) (models.FileSummary, error) {
	previous, err := os.ReadFile(path)
	if err != nil {
		previous = nil
	}

	stats := groupDiffer.CompareGroups(previous, groups)
	logger.Info().
		Str("path", path).
		Int("groups", len(groups)).
		Int("added", stats.Added).
		Int("removed", stats.Removed).
		Int("kept", stats.Kept).
		Msg("Writing target file")

	if err := sdfile.WriteFile(path, groups, format); err != nil {
		return models.FileSummary{}, err
	}

	return models.FileSummary{Path: path, Groups: len(groups)}, nil
}
