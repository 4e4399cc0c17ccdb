package recorder

// NoopRecorder is a no-op implementation used when metrics are disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordFetch(_ *FetchEvent) error         { return nil }
func (n *NoopRecorder) RecordRejection(_ *RejectionEvent) error { return nil }
