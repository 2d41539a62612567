package compression

import (
	"os"

	"github.com/xShinnRyuu/amazon-neptune-tools/entity"
)

// ApplyRetention decides what happens to the source file after a successful
// compression. A failed deletion is reported, not escalated: the compressed
// artifact already exists and is valid. Only the exact source path is ever
// touched.
func ApplyRetention(sourcePath string, removeOriginal bool) entity.RetentionDecision {
	if !removeOriginal {
		return entity.Retained
	}
	if err := os.Remove(sourcePath); err != nil {
		return entity.RetentionFailed
	}
	return entity.Deleted
}
