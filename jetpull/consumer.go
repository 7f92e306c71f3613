package jetpull

import (
	"context"
	"sync/atomic"
)

// AckPolicy is the consumer's contract on whether delivered messages
// must be acknowledged.
type AckPolicy int

const (
	AckNone AckPolicy = iota
	AckAll
	AckExplicit
)

func (p AckPolicy) String() string {
	switch p {
	case AckNone:
		return "none"
	case AckAll:
		return "all"
	case AckExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// ConsumerOwnership reports whether a handle is responsible for
// deleting its consumer on teardown. Ephemeral consumers created for a
// single subscription are Owned; pre-existing durables are Borrowed.
type ConsumerOwnership int

const (
	ConsumerBorrowed ConsumerOwnership = iota
	ConsumerOwned
)

// ConsumerConfig is the subset of consumer configuration this core
// carries through the administrative API.
type ConsumerConfig struct {
	Name      string
	AckPolicy AckPolicy
}

// ConsumerInfo describes a resolved consumer, as returned by the
// administrative API.
type ConsumerInfo struct {
	Stream string
	Name   string
	Config ConsumerConfig
}

// consumerHandle is the shared state behind every clone of a
// PullSubscription. The only mutation is the transition to torn down,
// which the refcount guarantees happens exactly once.
type consumerHandle struct {
	stream    string
	consumer  string
	ackPolicy AckPolicy
	ownership ConsumerOwnership
	js        *Context

	refs    atomic.Int32
	onClose []func()
}

func newConsumerHandle(info ConsumerInfo, ownership ConsumerOwnership, js *Context) *consumerHandle {
	h := &consumerHandle{
		stream:    info.Stream,
		consumer:  info.Name,
		ackPolicy: info.Config.AckPolicy,
		ownership: ownership,
		js:        js,
	}
	h.refs.Store(1)
	return h
}

// retain adds a reference. Callers must hold a live reference already.
func (h *consumerHandle) retain() *consumerHandle {
	h.refs.Add(1)
	return h
}

// release drops one reference. The last release tears the handle down:
// an owned consumer is deleted best-effort and the outcome discarded,
// then registered close hooks run. release never reports a failure.
func (h *consumerHandle) release() {
	if h.refs.Add(-1) != 0 {
		return
	}

	if h.ownership == ConsumerOwned {
		ctx, cancel := context.WithTimeout(context.Background(), h.js.timeout)
		if err := h.js.mgr.DeleteConsumer(ctx, h.stream, h.consumer); err != nil {
			h.js.l.Debug("delete consumer", "stream", h.stream, "consumer", h.consumer, "err", err)
		}
		cancel()
	}

	for _, f := range h.onClose {
		f()
	}
}
