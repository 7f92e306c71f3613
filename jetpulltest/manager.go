package jetpulltest

import (
	"context"
	"sync"

	"github.com/jetpull-io/jetpull-go/jetpull"
)

// Manager is an in-memory ConsumerManager recording administrative
// calls, with failure injection for teardown tests.
type Manager struct {
	mu        sync.Mutex
	consumers map[string]jetpull.ConsumerInfo
	deletes   []string
	deleteErr error
}

func NewManager() *Manager {
	return &Manager{
		consumers: make(map[string]jetpull.ConsumerInfo),
	}
}

func (m *Manager) CreateConsumer(ctx context.Context, stream string, cfg jetpull.ConsumerConfig) (jetpull.ConsumerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info := jetpull.ConsumerInfo{
		Stream: stream,
		Name:   cfg.Name,
		Config: cfg,
	}
	m.consumers[key(stream, cfg.Name)] = info
	return info, nil
}

func (m *Manager) ConsumerInfo(ctx context.Context, stream, consumer string) (jetpull.ConsumerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, ok := m.consumers[key(stream, consumer)]
	if !ok {
		return jetpull.ConsumerInfo{}, jetpull.ErrConsumerNotFound
	}
	return info, nil
}

func (m *Manager) DeleteConsumer(ctx context.Context, stream, consumer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletes = append(m.deletes, key(stream, consumer))
	delete(m.consumers, key(stream, consumer))
	if m.deleteErr != nil {
		return m.deleteErr
	}
	return nil
}

// FailDeletes makes every DeleteConsumer call return err after
// recording it.
func (m *Manager) FailDeletes(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleteErr = err
}

// Deletes returns a copy of the recorded delete calls, keyed
// stream/consumer.
func (m *Manager) Deletes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	dels := make([]string, len(m.deletes))
	copy(dels, m.deletes)
	return dels
}

// Exists reports whether the consumer is currently known.
func (m *Manager) Exists(stream, consumer string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.consumers[key(stream, consumer)]
	return ok
}
