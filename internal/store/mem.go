// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package store

import (
	"context"
	"sync"
	"time"
)

// MemStore is an in-memory [Store].
type MemStore struct {
	ttl time.Duration
	now func() time.Time // for tests

	mu   sync.Mutex
	data map[string]entry
}

// NewMemStore returns a MemStore with the given TTL. Expired entries are
// dropped periodically until ctx is canceled.
func NewMemStore(ctx context.Context, ttl time.Duration) *MemStore {
	s := &MemStore{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[string]entry),
	}
	go s.cleanup(ctx)
	return s
}

func (s *MemStore) cleanup(ctx context.Context) {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			prune(s.data, s.now(), s.ttl)
			s.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// Get implements [Store].
func (s *MemStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	now := s.now()
	if e.expired(now, s.ttl) {
		delete(s.data, key)
		return nil, nil
	}
	e.LastAccessed = now
	s.data[key] = e

	return append([]byte(nil), e.Value...), nil
}

// Set implements [Store].
func (s *MemStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		Value:        append([]byte(nil), value...),
		LastAccessed: s.now(),
	}
	return nil
}

// Close implements [Store]. It's a no-op.
func (s *MemStore) Close() error { return nil }
