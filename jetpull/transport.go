package jetpull

import (
	"context"
	"time"
)

// PullRequest asks the server for at most Batch messages for a
// consumer. ID correlates the request with deliveries routed back
// through the originating Context.
type PullRequest struct {
	ID       uint32
	Stream   string
	Consumer string
	Batch    int
	Expires  time.Duration
}

// Transport carries pull requests to the server. Implementations
// demultiplex inbound messages by request ID and hand them back through
// DeliverMsg, CompletePull and FailPull on the Context the request
// originated from, delivering at most Batch messages plus one terminal
// event per request.
type Transport interface {
	Pull(ctx context.Context, req PullRequest) error
}

// ConsumerManager is the administrative API surface this core depends
// on. DeleteConsumer is idempotent; teardown discards its outcome.
type ConsumerManager interface {
	CreateConsumer(ctx context.Context, stream string, cfg ConsumerConfig) (ConsumerInfo, error)
	ConsumerInfo(ctx context.Context, stream, consumer string) (ConsumerInfo, error)
	DeleteConsumer(ctx context.Context, stream, consumer string) error
}
