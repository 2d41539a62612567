package compression

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xShinnRyuu/amazon-neptune-tools/entity"
)

func runBatch(t *testing.T, dir string, removeOriginals bool) (entity.BatchSummary, string, error) {
	t.Helper()
	var buf bytes.Buffer
	summary, err := Run(context.Background(), dir, removeOriginals, NewReporter(&buf))
	return summary, buf.String(), err
}

func TestRunCompressesAllFilesAndRemovesOriginals(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "test1.csv", sampleCSV)
	writeCSV(t, dir, "test2.csv", "name\ncarol\n")

	summary, out, err := runBatch(t, dir, true)

	require.NoError(t, err)
	assert.Equal(t, entity.BatchSummary{Attempted: 2, Succeeded: 2, Failed: 0}, summary)

	assert.Equal(t, sampleCSV, gunzip(t, filepath.Join(dir, "test1.csv.gz")))
	assert.Equal(t, "name\ncarol\n", gunzip(t, filepath.Join(dir, "test2.csv.gz")))

	_, statErr := os.Stat(filepath.Join(dir, "test1.csv"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(dir, "test2.csv"))
	assert.True(t, os.IsNotExist(statErr))

	assert.Contains(t, out, "Compressing .csv to .gzip...")
	assert.Contains(t, out, "Starting concurrent compression of 2 CSV files...")
	assert.Contains(t, out, "Removed original file: test1.csv")
	assert.Contains(t, out, "Removed original file: test2.csv")
	assert.Contains(t, out, "Compression completed: 2/2 files successfully compressed")
}

func TestRunRetainsOriginals(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "test1.csv", sampleCSV)
	writeCSV(t, dir, "test2.csv", sampleCSV)

	summary, out, err := runBatch(t, dir, false)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Succeeded)

	for _, name := range []string{"test1.csv", "test2.csv"} {
		_, statErr := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, statErr, "original should be retained")
		_, statErr = os.Stat(filepath.Join(dir, name+".gz"))
		assert.NoError(t, statErr)
		assert.Contains(t, out, "Original file retained: "+name)
	}
}

func TestRunMissingDirectory(t *testing.T) {
	summary, _, err := runBatch(t, "/path/that/does/not/exist", true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory does not exist: /path/that/does/not/exist")
	assert.Zero(t, summary.Attempted)
}

func TestRunFileInsteadOfDirectory(t *testing.T) {
	dir := t.TempDir()
	notADir := writeCSV(t, dir, "notadirectory.txt", "x")

	_, _, err := runBatch(t, notADir, true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory does not exist")
}

func TestRunEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	summary, out, err := runBatch(t, dir, true)

	require.NoError(t, err)
	assert.Zero(t, summary.Attempted)
	assert.Contains(t, out, "No CSV files found in directory: "+dir)
}

func TestRunIgnoresNonCSVFiles(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "data.csv", sampleCSV)
	writeCSV(t, dir, "readme.txt", "notes")
	writeCSV(t, dir, "config.json", "{}")

	summary, out, err := runBatch(t, dir, true)

	require.NoError(t, err)
	assert.Equal(t, entity.BatchSummary{Attempted: 1, Succeeded: 1, Failed: 0}, summary)
	assert.Contains(t, out, "Starting concurrent compression of 1 CSV files...")

	// Other file types are left alone.
	_, err = os.Stat(filepath.Join(dir, "readme.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "config.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "readme.txt.gz"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunPreviousOutputsAreNotCandidates(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "done.csv.gz", "pretend gzip bytes")

	summary, out, err := runBatch(t, dir, true)

	require.NoError(t, err)
	assert.Zero(t, summary.Attempted)
	assert.Contains(t, out, "No CSV files found in directory:")
}

func TestRunCaseInsensitiveExtensions(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "data.CSV", sampleCSV)
	writeCSV(t, dir, "info.Csv", "name\ntest\n")
	writeCSV(t, dir, "report.cSv", "id\n7\n")

	summary, _, err := runBatch(t, dir, true)

	require.NoError(t, err)
	assert.Equal(t, entity.BatchSummary{Attempted: 3, Succeeded: 3, Failed: 0}, summary)

	// The output keeps the original casing.
	for _, name := range []string{"data.CSV.gz", "info.Csv.gz", "report.cSv.gz"} {
		_, statErr := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, statErr, name)
	}
}

func TestRunPartialFailure(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "valid.csv", sampleCSV)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "invalid.csv"), 0o755))

	summary, out, err := runBatch(t, dir, true)

	require.NoError(t, err)
	assert.Equal(t, entity.BatchSummary{Attempted: 2, Succeeded: 1, Failed: 1}, summary)

	assert.Equal(t, sampleCSV, gunzip(t, filepath.Join(dir, "valid.csv.gz")))
	_, statErr := os.Stat(filepath.Join(dir, "invalid.csv.gz"))
	assert.True(t, os.IsNotExist(statErr))

	assert.Contains(t, out, "Starting concurrent compression of 2 CSV files...")
	assert.Contains(t, out, "Failed to compress invalid.csv")
	assert.Contains(t, out, "Warning: 1 file(s) failed to compress")
	assert.Contains(t, out, "Compression completed: 1/2 files successfully compressed")
}

func TestRunCountsAlwaysReconcile(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "a.csv", sampleCSV)
	writeCSV(t, dir, "b.csv", sampleCSV)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c.csv"), 0o755))

	summary, _, err := runBatch(t, dir, false)

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Attempted)
	assert.Equal(t, summary.Attempted, summary.Succeeded+summary.Failed)
}
