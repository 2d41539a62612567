package compression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferSizeFor(t *testing.T) {
	assert.Equal(t, smallBufferSize, BufferSizeFor(0))
	assert.Equal(t, smallBufferSize, BufferSizeFor(1))
	assert.Equal(t, smallBufferSize, BufferSizeFor(largeFileThreshold-1))
	assert.Equal(t, largeBufferSize, BufferSizeFor(largeFileThreshold))
	assert.Equal(t, largeBufferSize, BufferSizeFor(largeFileThreshold+1))
}
