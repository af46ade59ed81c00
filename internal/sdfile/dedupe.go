package sdfile

import "sort"

// Dedupe returns the first occurrence of each distinct group, preserving the
// input order of survivors. Equality is exact on the canonical group key.
func Dedupe(groups []TargetGroup) []TargetGroup {
	seen := make(map[string]struct{}, len(groups))
	unique := make([]TargetGroup, 0, len(groups))

	for _, g := range groups {
		key := g.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, g)
	}

	return unique
}

// sortedLabelNames returns the label names in lexicographic order.
func sortedLabelNames(labels map[string]string) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
