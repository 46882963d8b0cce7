package recorder

// NoopRecorder discards all records. Used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (*NoopRecorder) RecordPublish(*PublishRun) error { return nil }

func (*NoopRecorder) Close() error { return nil }
