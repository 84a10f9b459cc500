package probe

import "time"

// workerChannelMultiplier sizes the job channel relative to the worker count.
const workerChannelMultiplier = 2

// Config holds configuration for a probe run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Iterations  int           // Number of /random-entries calls
	Workers     int           // Concurrent /random-entries callers
	Timeout     time.Duration // HTTP request timeout
	DatasetPath string        // Optional dataset for membership checks
	SampleSize  int           // Maximum entries per sample
	Verbose     bool          // Log every check
}

// Report summarizes a probe run.
type Report struct {
	RunID      string
	Requests   int
	Samples    int
	Violations []string
	StartTime  time.Time
	Duration   time.Duration
}

// OK reports whether no check failed.
func (r *Report) OK() bool { return len(r.Violations) == 0 }
