package compression

// Buffer size tiers for the per-file I/O paths. Large exports get bigger
// reads to amortize syscall overhead; everything else stays at 64 KiB.
const (
	largeFileThreshold = 1 << 30 // 1 GiB
	smallBufferSize    = 64 << 10
	largeBufferSize    = 256 << 10
)

// BufferSizeFor returns the I/O buffer size for a source of the given length.
func BufferSizeFor(sourceSize int64) int {
	if sourceSize >= largeFileThreshold {
		return largeBufferSize
	}
	return smallBufferSize
}
