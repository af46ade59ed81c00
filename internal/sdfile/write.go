package sdfile

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/ragujp/prometheus-sample-configs/internal/errorwrapper"
)

// WriteFile serializes groups to path as a whole-file replacement, creating
// parent directories when absent.
func WriteFile(path string, groups []TargetGroup, format Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errorwrapper.WrapError(err, "failed to create output directory")
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, groups, format); err != nil {
		return errorwrapper.WrapError(err, "failed to encode target groups")
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errorwrapper.WrapError(err, "failed to write target file")
	}

	return nil
}
