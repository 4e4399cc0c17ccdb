package recorder

import (
	"time"

	"StockScope/internal/model"
)

// Outcome classifies a provider call.
type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeEmpty Outcome = "empty"
	OutcomeError Outcome = "error"
)

// FetchEvent holds data for one provider call.
type FetchEvent struct {
	Symbol   string
	Provider string
	Interval model.Interval
	Outcome  Outcome
	Rows     int
	Duration time.Duration
}

// RejectionEvent records a request suppressed by policy before reaching the provider.
type RejectionEvent struct {
	Symbol string
	Reason string
}

// Recorder observes fetch activity.
type Recorder interface {
	RecordFetch(evt *FetchEvent) error
	RecordRejection(evt *RejectionEvent) error
}
