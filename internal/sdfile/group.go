// Package sdfile defines the Prometheus HTTP service discovery file format:
// the canonical target group schema, group identity, deterministic ordering,
// and serialization of target files.
package sdfile

import "strings"

// TargetGroup is one element of a service discovery target file.
type TargetGroup struct {
	Targets []string          `json:"targets"`
	Labels  map[string]string `json:"labels"`
}

// Label returns the value for name, or the empty string when absent.
func (tg TargetGroup) Label(name string) string {
	if tg.Labels == nil {
		return ""
	}
	return tg.Labels[name]
}

// Key returns the canonical identity of the group: the ordered targets list
// together with the labels reduced to sorted key/value pairs. Two groups are
// duplicates exactly when their keys are equal.
func (tg TargetGroup) Key() string {
	var sb strings.Builder

	for _, t := range tg.Targets {
		sb.WriteString(t)
		sb.WriteByte('\x1f')
	}
	sb.WriteByte('\x1e')

	for _, name := range sortedLabelNames(tg.Labels) {
		sb.WriteString(name)
		sb.WriteByte('\x1f')
		sb.WriteString(tg.Labels[name])
		sb.WriteByte('\x1f')
	}

	return sb.String()
}
