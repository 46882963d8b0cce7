package recorder

import "time"

// PublishRun describes one completed publisher run.
type PublishRun struct {
	Date       string // calendar date the snapshot was published for
	Source     string // listing provider name
	StockCount int
	Duration   time.Duration
}

// Recorder persists publish history for later analysis.
type Recorder interface {
	RecordPublish(run *PublishRun) error
	Close() error
}
