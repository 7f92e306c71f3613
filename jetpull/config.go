package jetpull

// PoolConfig sizes the worker pool used for asynchronous dispatch.
type PoolConfig struct {
	Size     int
	PreAlloc bool
}

// SubscriptionConfig carries the per-subscription settings applied by
// SubOption values.
type SubscriptionConfig struct {
	AckPolicy AckPolicy
	Async     bool
	Pool      PoolConfig
}

func (c *SubscriptionConfig) Validate() error {
	if c.Async && c.Pool.Size <= 0 {
		return ErrEmptyPoolSize
	}

	return nil
}
