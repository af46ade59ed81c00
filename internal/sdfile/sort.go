package sdfile

import (
	"sort"
	"strings"
)

// SortColumn identifies one comparison column of a group ordering.
type SortColumn struct {
	// Label compared when Targets is false
	Label string
	// Compare the targets list instead of a label
	Targets bool
	// With Targets, compare only the first address
	FirstOnly bool
}

// LabelColumn orders by the named label value, missing values sorting first.
func LabelColumn(name string) SortColumn {
	return SortColumn{Label: name}
}

// TargetsColumn orders by the whole targets list, element-wise with shorter
// lists sorting first on a shared prefix.
func TargetsColumn() SortColumn {
	return SortColumn{Targets: true}
}

// FirstTargetColumn orders by the first address only.
func FirstTargetColumn() SortColumn {
	return SortColumn{Targets: true, FirstOnly: true}
}

// SortGroups stably sorts groups in place under the given column priorities.
// All comparisons are case-sensitive string comparisons, so the resulting
// order is a pure function of group content.
func SortGroups(groups []TargetGroup, columns []SortColumn) {
	sort.SliceStable(groups, func(i, j int) bool {
		return compareGroups(groups[i], groups[j], columns) < 0
	})
}

// compareGroups compares two groups column by column.
func compareGroups(a, b TargetGroup, columns []SortColumn) int {
	for _, col := range columns {
		var c int
		switch {
		case col.Targets && col.FirstOnly:
			c = strings.Compare(firstTarget(a), firstTarget(b))
		case col.Targets:
			c = compareTargets(a.Targets, b.Targets)
		default:
			c = strings.Compare(a.Label(col.Label), b.Label(col.Label))
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// compareTargets compares two address lists element-wise; on a shared prefix
// the shorter list sorts first.
func compareTargets(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func firstTarget(g TargetGroup) string {
	if len(g.Targets) == 0 {
		return ""
	}
	return g.Targets[0]
}
