package sequencemock

import (
	"context"
	"sync"

	domain "microfin-backoffice/internal/domain/sequence"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository. With no
// NextFn it behaves as an in-memory counter, which most tests want anyway.
type Repo struct {
	NextFn func(ctx context.Context, name string) (uint64, error)

	mu     sync.Mutex
	values map[string]uint64
}

func (m *Repo) Next(ctx context.Context, name string) (uint64, error) {
	if m.NextFn != nil {
		return m.NextFn(ctx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]uint64)
	}
	m.values[name]++
	return m.values[name], nil
}
