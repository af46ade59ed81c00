package sdfile

import (
	"encoding/json"
	"io"
	"strings"
)

// Format selects the serialization layout of a target file.
type Format int

const (
	FormatPretty Format = iota
	FormatCompact
)

// String returns string representation of Format
func (f Format) String() string {
	switch f {
	case FormatCompact:
		return "compact"
	case FormatPretty:
		return "pretty"
	default:
		return "pretty"
	}
}

// ParseFormat parses a string format to Format, defaulting to pretty
func ParseFormat(formatStr string) Format {
	switch strings.ToLower(formatStr) {
	case "compact":
		return FormatCompact
	default:
		return FormatPretty
	}
}

// Encode serializes groups as one JSON array in the given format, with a
// trailing newline. An empty input encodes as an empty array, never null.
// Label keys serialize in sorted order, so equal group sets produce
// byte-identical output.
func Encode(w io.Writer, groups []TargetGroup, format Format) error {
	if groups == nil {
		groups = []TargetGroup{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if format == FormatPretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(groups)
}
