package compression

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/xShinnRyuu/amazon-neptune-tools/entity"
)

// Reporter is the narration sink shared by every task in a batch. Writes are
// serialized so concurrent tasks never interleave partial lines. It only
// appends human-readable lines; it never fails the caller.
type Reporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewReporter wraps w; a nil writer defaults to stderr.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	return &Reporter{w: w}
}

func (r *Reporter) printf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, format+"\n", args...)
}

// BatchStart -.
func (r *Reporter) BatchStart() {
	r.printf("Compressing .csv to .gzip...")
}

// NoCandidates -.
func (r *Reporter) NoCandidates(dir string) {
	r.printf("No CSV files found in directory: %s", dir)
}

// SweepStart -.
func (r *Reporter) SweepStart(count int) {
	r.printf("Starting concurrent compression of %d CSV files...", count)
}

// FileStart -.
func (r *Reporter) FileStart(name string, size int64) {
	r.printf("Compressing: %s (%s)", name, FormatFileSize(size))
}

// FileCompressed -.
func (r *Reporter) FileCompressed(o entity.CompressionOutcome) {
	r.printf("✓ Compressed: %s -> %s (%s, %.1f%% of original, %.1fs)",
		filepath.Base(o.SourcePath),
		filepath.Base(o.OutputPath),
		FormatFileSize(o.OutputSize),
		o.Ratio()*100,
		o.Elapsed.Seconds(),
	)
}

// FileFailed -.
func (r *Reporter) FileFailed(name string, err error) {
	r.printf("Failed to compress %s: %v", name, err)
}

// Retention -.
func (r *Reporter) Retention(name string, d entity.RetentionDecision) {
	switch d {
	case entity.Deleted:
		r.printf("Removed original file: %s", name)
	case entity.RetentionFailed:
		r.printf("Warning: Could not remove original file: %s", name)
	default:
		r.printf("Original file retained: %s", name)
	}
}

// FailureTally -.
func (r *Reporter) FailureTally(failed int) {
	r.printf("Warning: %d file(s) failed to compress", failed)
}

// Summary -.
func (r *Reporter) Summary(s entity.BatchSummary) {
	r.printf("Compression completed: %d/%d files successfully compressed", s.Succeeded, s.Attempted)
}

// FormatFileSize returns a human-readable size (B, KB, MB, ...).
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
