package worker

import "time"

// DefaultJobTimeout bounds a single job's context
const DefaultJobTimeout = 30 * time.Second

const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgWorkerQueueFull   = "Worker queue full, job dropped"
)
