package jetpull

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nuid"

	"github.com/jetpull-io/jetpull-go/correlator"
)

// DefaultTimeout bounds pull requests and administrative calls unless
// overridden with WithTimeout.
const DefaultTimeout = 5 * time.Second

// pullEvent is one transport-side event for an in-flight pull request.
type pullEvent struct {
	msg  Msg
	err  error
	done bool
}

// Context binds the transport and administrative collaborators together
// with the request-expiry policy shared by every subscription built
// from it.
type Context struct {
	tr  Transport
	mgr ConsumerManager

	timeout time.Duration
	pulls   *correlator.Correlator[pullEvent]

	l *slog.Logger
}

func NewContext(tr Transport, mgr ConsumerManager, opts ...Option) *Context {
	js := &Context{
		tr:      tr,
		mgr:     mgr,
		timeout: DefaultTimeout,
		pulls:   correlator.New[pullEvent](),
		l:       slog.Default(),
	}
	for _, opt := range opts {
		opt(js)
	}
	return js
}

// PullSubscribe binds a pull subscription to a consumer on stream. An
// empty durable name creates an ephemeral consumer owned by the
// subscription and deleted when its last clone closes. A durable name
// attaches to the existing consumer, creating it first when the server
// does not know it yet; durables outlive the subscription.
func (js *Context) PullSubscribe(ctx context.Context, stream, durable string, opts ...SubOption) (*PullSubscription, error) {
	conf := SubscriptionConfig{AckPolicy: AckExplicit}
	for _, opt := range opts {
		opt(&conf)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	info, ownership, err := js.resolveConsumer(ctx, stream, durable, conf)
	if err != nil {
		return nil, err
	}

	return newPullSubscription(info, ownership, js, conf)
}

func (js *Context) resolveConsumer(ctx context.Context, stream, durable string, conf SubscriptionConfig) (ConsumerInfo, ConsumerOwnership, error) {
	if durable == "" {
		cfg := ConsumerConfig{Name: nuid.Next(), AckPolicy: conf.AckPolicy}
		info, err := js.mgr.CreateConsumer(ctx, stream, cfg)
		if err != nil {
			return ConsumerInfo{}, ConsumerBorrowed, fmt.Errorf("create consumer: %w", err)
		}
		return info, ConsumerOwned, nil
	}

	info, err := js.mgr.ConsumerInfo(ctx, stream, durable)
	if errors.Is(err, ErrConsumerNotFound) {
		cfg := ConsumerConfig{Name: durable, AckPolicy: conf.AckPolicy}
		info, err = js.mgr.CreateConsumer(ctx, stream, cfg)
	}
	if err != nil {
		return ConsumerInfo{}, ConsumerBorrowed, fmt.Errorf("resolve consumer: %w", err)
	}
	return info, ConsumerBorrowed, nil
}

// DeliverMsg routes one message to the pull request it belongs to.
// Deliveries for finished or abandoned requests are dropped.
func (js *Context) DeliverMsg(id uint32, m Msg) {
	js.pulls.Send(id, pullEvent{msg: m})
}

// CompletePull signals that the server finished the request, either by
// exhausting the batch or by letting the expiry lapse.
func (js *Context) CompletePull(id uint32) {
	js.pulls.Resolve(id, pullEvent{done: true})
}

// FailPull reports that the request could not be serviced.
func (js *Context) FailPull(id uint32, err error) {
	js.pulls.Resolve(id, pullEvent{err: err})
}
