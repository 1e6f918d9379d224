package recorder

import "time"

// CycleRecord holds the outcome of one price comparison fetch cycle.
type CycleRecord struct {
	CoinA    string
	CoinB    string
	Outcome  string // "COMMITTED", "FAILED", "STALE"
	PointsA  int
	PointsB  int
	Duration time.Duration
	Error    string
}

// SearchFailure records a non-fatal search provider failure.
type SearchFailure struct {
	Slot  string
	Query string
	Error string
}

// Recorder persists diagnostic events for analysis. Rows are write-only;
// nothing in the application reads them back.
type Recorder interface {
	RecordCycle(rec *CycleRecord) error
	RecordSearchFailure(evt *SearchFailure) error
	Close() error
}
