// Package compression implements the concurrent gzip sweep that runs at the
// tail of a Neptune CSV export: every CSV file in the export directory is
// compressed independently, outcomes are tallied, and originals are
// optionally removed.
package compression

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xShinnRyuu/amazon-neptune-tools/entity"
	"github.com/xShinnRyuu/amazon-neptune-tools/internal/telemetry/metric"
)

const sourceSuffix = ".csv"

// Run compresses every CSV file directly inside dir, one goroutine per file.
// The candidate set is a one-time snapshot of the listing; files appearing
// afterwards are not observed. A failing file never cancels or blocks its
// siblings: each task produces exactly one outcome and the join collects
// them all. Only the directory validation error is returned — every
// per-file condition ends up in the summary and the narration stream.
func Run(ctx context.Context, dir string, removeOriginals bool, rep *Reporter) (entity.BatchSummary, error) {
	ctx, span := otel.Tracer(traceName).Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("batch.id", uuid.New().String()),
		attribute.String("directory", dir),
	)

	var summary entity.BatchSummary

	rep.BatchStart()

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return summary, errors.Errorf("directory does not exist: %s", dir)
	}

	candidates, err := discover(dir)
	if err != nil {
		return summary, errors.Wrapf(err, "listing directory %s", dir)
	}

	if len(candidates) == 0 {
		rep.NoCandidates(dir)
		return summary, nil
	}

	rep.SweepStart(len(candidates))

	results := make(chan entity.CompressionOutcome, len(candidates))
	for _, path := range candidates {
		go func(path string) {
			results <- compressOne(ctx, path, removeOriginals, rep)
		}(path)
	}

	summary.Attempted = len(candidates)
	for range candidates {
		outcome := <-results
		if outcome.Failed() {
			summary.Failed++
			metric.FilesFailed.Inc()
			continue
		}
		summary.Succeeded++
		metric.FilesCompressed.Inc()
		metric.CompressionSeconds.Observe(outcome.Elapsed.Seconds())
	}

	if summary.Failed > 0 {
		rep.FailureTally(summary.Failed)
	}
	rep.Summary(summary)

	return summary, nil
}

// discover snapshots the entries directly inside dir whose name ends with
// .csv, case-insensitively. Directories are not filtered out: a directory
// masquerading as a CSV becomes a per-file failure at open time, not a
// discovery error.
func discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, e := range entries {
		if strings.HasSuffix(strings.ToLower(e.Name()), sourceSuffix) {
			candidates = append(candidates, filepath.Join(dir, e.Name()))
		}
	}
	return candidates, nil
}

// compressOne runs one task end to end: size the buffer, compress, apply
// retention on success, narrate every step.
func compressOne(ctx context.Context, path string, removeOriginal bool, rep *Reporter) entity.CompressionOutcome {
	name := filepath.Base(path)

	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	rep.FileStart(name, size)

	outcome := Compress(ctx, path, BufferSizeFor(size))
	if outcome.Failed() {
		rep.FileFailed(name, outcome.Err)
		return outcome
	}

	rep.FileCompressed(outcome)

	decision := ApplyRetention(path, removeOriginal)
	rep.Retention(name, decision)
	if decision == entity.Deleted {
		metric.OriginalsRemoved.Inc()
	}

	return outcome
}
