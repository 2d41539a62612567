package compression

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xShinnRyuu/amazon-neptune-tools/entity"
)

func TestApplyRetentionRetained(t *testing.T) {
	dir := t.TempDir()
	src := writeCSV(t, dir, "keep.csv", sampleCSV)

	decision := ApplyRetention(src, false)

	assert.Equal(t, entity.Retained, decision)
	_, err := os.Stat(src)
	require.NoError(t, err, "source must be left untouched")
}

func TestApplyRetentionDeleted(t *testing.T) {
	dir := t.TempDir()
	src := writeCSV(t, dir, "drop.csv", sampleCSV)

	decision := ApplyRetention(src, true)

	assert.Equal(t, entity.Deleted, decision)
	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}

func TestApplyRetentionFailed(t *testing.T) {
	dir := t.TempDir()

	decision := ApplyRetention(filepath.Join(dir, "never-existed.csv"), true)

	assert.Equal(t, entity.RetentionFailed, decision)
}
