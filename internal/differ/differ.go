// Package differ reports how a generated target file changed relative to the
// previous run, both at group granularity and as raw payload segments. The
// results feed run diagnostics only; writes never depend on them.
package differ

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/ragujp/prometheus-sample-configs/internal/sdfile"
)

// ChangeStats summarizes group membership changes between two runs.
type ChangeStats struct {
	Previous int
	Current  int
	Added    int
	Removed  int
	Kept     int
}

// Identical reports whether the group sets are equal.
func (cs ChangeStats) Identical() bool {
	return cs.Added == 0 && cs.Removed == 0
}

// GroupDiffer compares target-file payloads across runs.
type GroupDiffer struct {
	processor *DiffProcessor
	logger    zerolog.Logger
}

// NewGroupDiffer creates a new GroupDiffer
func NewGroupDiffer(logger zerolog.Logger) *GroupDiffer {
	return &GroupDiffer{
		processor: NewDiffProcessor(DefaultDiffConfig()),
		logger:    logger.With().Str("component", "GroupDiffer").Logger(),
	}
}

// CompareGroups reports membership changes between the previous payload and
// the next group set. A previous payload that is empty or fails to decode is
// treated as an empty group set.
func (d *GroupDiffer) CompareGroups(previous []byte, next []sdfile.TargetGroup) ChangeStats {
	previousGroups := d.decodeGroups(previous)

	previousKeys := make(map[string]struct{}, len(previousGroups))
	for _, group := range previousGroups {
		previousKeys[group.Key()] = struct{}{}
	}

	stats := ChangeStats{
		Previous: len(previousGroups),
		Current:  len(next),
	}

	nextKeys := make(map[string]struct{}, len(next))
	for _, group := range next {
		key := group.Key()
		nextKeys[key] = struct{}{}
		if _, ok := previousKeys[key]; ok {
			stats.Kept++
		} else {
			stats.Added++
		}
	}

	for key := range previousKeys {
		if _, ok := nextKeys[key]; !ok {
			stats.Removed++
		}
	}

	return stats
}

// ComparePayloads reports segment-level statistics between two serialized
// payloads.
func (d *GroupDiffer) ComparePayloads(previous, next []byte) DiffStatistics {
	diffs := d.processor.ProcessDiff(string(previous), string(next))
	return CalculateStats(diffs)
}

func (d *GroupDiffer) decodeGroups(payload []byte) []sdfile.TargetGroup {
	if len(payload) == 0 {
		return nil
	}

	var groups []sdfile.TargetGroup
	if err := json.Unmarshal(payload, &groups); err != nil {
		d.logger.Warn().Err(err).Msg("Previous payload is not a target group array, treating as empty")
		return nil
	}

	return groups
}
