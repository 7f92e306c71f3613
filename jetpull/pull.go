package jetpull

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

// PullSubscription retrieves batches of messages for a bound consumer
// on demand. Clones share one consumer handle; the last clone to close
// tears the handle down.
type PullSubscription struct {
	handle *consumerHandle
	conf   SubscriptionConfig

	pool *ants.Pool

	closed atomic.Bool
}

func newPullSubscription(info ConsumerInfo, ownership ConsumerOwnership, js *Context, conf SubscriptionConfig) (*PullSubscription, error) {
	s := &PullSubscription{
		handle: newConsumerHandle(info, ownership, js),
		conf:   conf,
	}

	if conf.Async {
		pool, err := ants.NewPool(conf.Pool.Size, ants.WithPreAlloc(conf.Pool.PreAlloc))
		if err != nil {
			return nil, fmt.Errorf("new pool: %w", err)
		}
		s.pool = pool
		// The pool is shared by every clone; it shuts down with the handle.
		s.handle.onClose = append(s.handle.onClose, pool.Release)
	}

	return s, nil
}

// Clone returns an independent subscription over the same consumer.
func (s *PullSubscription) Clone() (*PullSubscription, error) {
	if s.closed.Load() {
		return nil, ErrSubClosed
	}

	return &PullSubscription{
		handle: s.handle.retain(),
		conf:   s.conf,
		pool:   s.pool,
	}, nil
}

func (s *PullSubscription) Stream() string {
	return s.handle.stream
}

func (s *PullSubscription) Consumer() string {
	return s.handle.consumer
}

func (s *PullSubscription) AckPolicy() AckPolicy {
	return s.handle.ackPolicy
}

// Fetch issues one pull request for up to batch pending messages and
// collects replies until the batch is full, the request expiry elapses,
// or the caller's ctx is done. An elapsed expiry is not an error: the
// messages received so far, possibly none, are returned. A transport
// failure before any message arrived returns ErrTransport; after a
// partial delivery the partial batch is returned instead. Cancellation
// retains messages already received. Ordering across concurrent Fetch
// calls is unspecified.
func (s *PullSubscription) Fetch(ctx context.Context, batch int) ([]Msg, error) {
	if batch <= 0 {
		return nil, ErrInvalidBatch
	}
	if s.closed.Load() {
		return nil, ErrSubClosed
	}

	js := s.handle.js

	// One slot per message plus the terminal event, so the router never
	// blocks on a fetch that already returned.
	ch := make(chan pullEvent, batch+2)
	id := js.pulls.Next(ch)
	defer js.pulls.Delete(id)

	req := PullRequest{
		ID:       id,
		Stream:   s.handle.stream,
		Consumer: s.handle.consumer,
		Batch:    batch,
		Expires:  js.timeout,
	}
	if err := js.tr.Pull(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	msgs := make([]Msg, 0, batch)
	expiry := time.NewTimer(js.timeout)
	defer expiry.Stop()

	for len(msgs) < batch {
		select {
		case ev := <-ch:
			switch {
			case ev.err != nil:
				if len(msgs) == 0 {
					return nil, fmt.Errorf("%w: %v", ErrTransport, ev.err)
				}
				return msgs, nil
			case ev.done:
				return msgs, nil
			default:
				ev.msg.ackPolicy = s.handle.ackPolicy
				msgs = append(msgs, ev.msg)
			}
		case <-expiry.C:
			return s.drain(ch, msgs, batch), nil
		case <-ctx.Done():
			msgs = s.drain(ch, msgs, batch)
			if len(msgs) == 0 {
				return nil, ctx.Err()
			}
			return msgs, nil
		}
	}

	return msgs, nil
}

// drain collects deliveries already buffered when the wait ended, so an
// expired or canceled fetch never discards received messages.
func (s *PullSubscription) drain(ch chan pullEvent, msgs []Msg, batch int) []Msg {
	for len(msgs) < batch {
		select {
		case ev := <-ch:
			if ev.err != nil || ev.done {
				return msgs
			}
			ev.msg.ackPolicy = s.handle.ackPolicy
			msgs = append(msgs, ev.msg)
		default:
			return msgs
		}
	}
	return msgs
}

// Process fetches a batch and hands each message to handler, on the
// subscription's worker pool when async dispatch is configured. It
// reports how many messages were dispatched.
func (s *PullSubscription) Process(ctx context.Context, batch int, handler func(Msg)) (int, error) {
	msgs, err := s.Fetch(ctx, batch)
	if err != nil {
		return 0, err
	}

	for _, m := range msgs {
		if s.pool != nil {
			_ = s.pool.Submit(func() { handler(m) })
			continue
		}
		handler(m)
	}

	return len(msgs), nil
}

// Close releases this clone's reference. The last close across all
// clones deletes an owned consumer best-effort; failures never surface
// here. Closing twice is a no-op.
func (s *PullSubscription) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	s.handle.release()
	return nil
}
