package entity

import "time"

// CompressionOutcome is the terminal result of one file's compression task.
// Either Err is set, or the output fields are.
type CompressionOutcome struct {
	SourcePath string
	SourceSize int64
	OutputPath string
	OutputSize int64
	Elapsed    time.Duration
	Err        error
}

// Failed reports whether the task ended in failure.
func (o CompressionOutcome) Failed() bool {
	return o.Err != nil
}

// Ratio returns output size over source size, for reporting.
func (o CompressionOutcome) Ratio() float64 {
	if o.SourceSize == 0 {
		return 0
	}
	return float64(o.OutputSize) / float64(o.SourceSize)
}

// RetentionDecision records what happened to the source file after a
// successful compression.
type RetentionDecision int

const (
	Retained RetentionDecision = iota
	Deleted
	RetentionFailed
)

// BatchSummary aggregates the outcomes of one batch run.
type BatchSummary struct {
	Attempted int
	Succeeded int
	Failed    int
}

// CompressRequest asks the worker to compress every CSV file in a directory.
type CompressRequest struct {
	Directory       string `json:"directory"`
	RemoveOriginals bool   `json:"remove_originals"`
}

// CompressResponse reports the batch tally back to the requester.
type CompressResponse struct {
	Directory string `json:"directory"`
	Attempted int    `json:"attempted"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Err       string `json:"error,omitempty"`
}
