package jetpull

import (
	"log/slog"
	"time"
)

type Option func(js *Context)

func WithLogger(l *slog.Logger) Option {
	return func(js *Context) {
		js.l = l
	}
}

// WithTimeout sets the request-expiry budget for pull requests and the
// deadline for administrative calls.
func WithTimeout(timeout time.Duration) Option {
	return func(js *Context) {
		js.timeout = timeout
	}
}

type SubOption func(c *SubscriptionConfig)

// WithAckPolicy sets the ack policy used when the subscription has to
// create its consumer.
func WithAckPolicy(p AckPolicy) SubOption {
	return func(c *SubscriptionConfig) {
		c.AckPolicy = p
	}
}

func WithAsync(flag bool) SubOption {
	return func(c *SubscriptionConfig) {
		c.Async = flag
	}
}

func WithPoolConfig(pool PoolConfig) SubOption {
	return func(c *SubscriptionConfig) {
		c.Pool = pool
	}
}
