package differ

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffProcessor handles the core diffing logic
type DiffProcessor struct {
	dmp    *diffmatchpatch.DiffMatchPatch
	config DiffConfig
}

// NewDiffProcessor creates a new diff processor
func NewDiffProcessor(config DiffConfig) *DiffProcessor {
	return &DiffProcessor{
		dmp:    diffmatchpatch.New(),
		config: config,
	}
}

// ProcessDiff generates diff segments between two payload texts
func (dp *DiffProcessor) ProcessDiff(text1, text2 string) []diffmatchpatch.Diff {
	diffs := dp.dmp.DiffMain(text1, text2, dp.config.EnableLineBasedDiff)

	if dp.config.EnableSemanticCleanup {
		diffs = dp.dmp.DiffCleanupSemantic(diffs)
	}

	return diffs
}

// DiffStatistics holds diff calculation results
type DiffStatistics struct {
	SegmentsAdded   int
	SegmentsDeleted int
	IsIdentical     bool
}

// CalculateStats computes statistics from diff segments
func CalculateStats(diffs []diffmatchpatch.Diff) DiffStatistics {
	stats := DiffStatistics{IsIdentical: true}

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			stats.SegmentsAdded++
			stats.IsIdentical = false
		case diffmatchpatch.DiffDelete:
			stats.SegmentsDeleted++
			stats.IsIdentical = false
		}
	}

	return stats
}
