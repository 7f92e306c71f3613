// Package jetpulltest provides in-process stand-ins for the transport
// and administrative collaborators, for tests and examples.
package jetpulltest

import (
	"context"
	"sync"

	"github.com/jetpull-io/jetpull-go/jetpull"
)

// Transport serves pull requests from per-consumer message queues and
// routes deliveries through the bound context. Short deliveries leave
// the request open so the expiry path behaves like a quiet stream; a
// full batch is completed immediately.
type Transport struct {
	mu      sync.Mutex
	js      *jetpull.Context
	queues  map[string][]jetpull.Msg
	pulls   []jetpull.PullRequest
	reject  error
	failure error
}

func NewTransport() *Transport {
	return &Transport{
		queues: make(map[string][]jetpull.Msg),
	}
}

// Bind attaches the context whose router receives deliveries. Call it
// once, right after NewContext.
func (t *Transport) Bind(js *jetpull.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.js = js
}

// Queue appends pending messages for a consumer.
func (t *Transport) Queue(stream, consumer string, msgs ...jetpull.Msg) {
	t.mu.Lock()
	defer t.mu.Unlock()

	k := key(stream, consumer)
	t.queues[k] = append(t.queues[k], msgs...)
}

// Reject makes every Pull call return err synchronously, before any
// request is recorded.
func (t *Transport) Reject(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reject = err
}

// FailNext delivers err through the failure path for the next pull
// request instead of serving it.
func (t *Transport) FailNext(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.failure = err
}

// Requests returns a copy of the pull requests seen so far.
func (t *Transport) Requests() []jetpull.PullRequest {
	t.mu.Lock()
	defer t.mu.Unlock()

	reqs := make([]jetpull.PullRequest, len(t.pulls))
	copy(reqs, t.pulls)
	return reqs
}

// Pending reports how many messages remain queued for a consumer.
func (t *Transport) Pending(stream, consumer string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.queues[key(stream, consumer)])
}

func (t *Transport) Pull(ctx context.Context, req jetpull.PullRequest) error {
	t.mu.Lock()
	if t.reject != nil {
		err := t.reject
		t.mu.Unlock()
		return err
	}

	t.pulls = append(t.pulls, req)

	if t.failure != nil {
		err := t.failure
		t.failure = nil
		js := t.js
		t.mu.Unlock()
		js.FailPull(req.ID, err)
		return nil
	}

	k := key(req.Stream, req.Consumer)
	n := min(req.Batch, len(t.queues[k]))
	batch := t.queues[k][:n]
	t.queues[k] = t.queues[k][n:]
	js := t.js
	t.mu.Unlock()

	for _, m := range batch {
		js.DeliverMsg(req.ID, m)
	}
	if n == req.Batch {
		js.CompletePull(req.ID)
	}

	return nil
}

func key(stream, consumer string) string {
	return stream + "/" + consumer
}
