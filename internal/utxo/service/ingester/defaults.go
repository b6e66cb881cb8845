package ingester

import "time"

const (
	defaultSyncInterval   = 10 * time.Second
	defaultSampleInterval = time.Minute
	defaultFetchWorkers   = 4
	defaultUnhealthyAfter = 3
)

// Cycle outcomes.
const (
	OutcomeSuccess = "success"
	OutcomePartial = "partial"
	OutcomeError   = "error"
)

// Sample actions.
const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionSkip   = "skip"
	ActionError  = "error"
)
