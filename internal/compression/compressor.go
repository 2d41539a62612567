package compression

import (
	"bufio"
	"compress/gzip"
	"context"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xShinnRyuu/amazon-neptune-tools/entity"
)

const traceName = "csv-compression"

// GzipSuffix is appended to the source path to form the output path.
const GzipSuffix = ".gz"

// Compress gzips one source file into a sibling <source>.gz. The same buffer
// size is used for the read path, the copy buffer, and the compressed write
// path. The returned outcome is terminal for the file: every I/O error is
// captured in it, never propagated, and a partially written output is
// removed before the failure is returned. The source is never modified.
func Compress(ctx context.Context, sourcePath string, bufferSize int) entity.CompressionOutcome {
	_, span := otel.Tracer(traceName).Start(ctx, "Compress")
	defer span.End()
	span.SetAttributes(attribute.String("source", sourcePath))

	outcome := entity.CompressionOutcome{SourcePath: sourcePath}

	src, err := os.Open(sourcePath)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.SourceSize = info.Size()

	// Truncate semantics: the suffix convention means this path can only
	// name the product of a previous run.
	outputPath := sourcePath + GzipSuffix
	dst, err := os.Create(outputPath)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	start := time.Now()

	br := bufio.NewReaderSize(src, bufferSize)
	bw := bufio.NewWriterSize(dst, bufferSize)
	gw := gzip.NewWriter(bw)

	fail := func(err error) entity.CompressionOutcome {
		dst.Close()
		os.Remove(outputPath)
		outcome.Err = err
		return outcome
	}

	buf := make([]byte, bufferSize)
	if _, err := io.CopyBuffer(gw, br, buf); err != nil {
		return fail(err)
	}
	if err := gw.Close(); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(outputPath)
		outcome.Err = err
		return outcome
	}

	outInfo, err := os.Stat(outputPath)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.OutputPath = outputPath
	outcome.OutputSize = outInfo.Size()
	outcome.Elapsed = time.Since(start)
	return outcome
}
