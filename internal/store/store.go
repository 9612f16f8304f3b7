// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package store implements caches for fetched sources, kept in memory or in a
// JSON file on disk.
//
// Entries expire when they were not read for longer than the store's TTL.
package store

import (
	"context"
	"time"
)

// Store is a key-value store. Keys are source names, values their text.
type Store interface {
	// Get returns the value for key. It returns (nil, nil) if the key is not
	// found or has expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value for key.
	Set(ctx context.Context, key string, value []byte) error
	// Close releases the resources held by the store.
	Close() error
}

type entry struct {
	Value        []byte    `json:"value"`
	LastAccessed time.Time `json:"last_accessed"`
}

func (e entry) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.LastAccessed) > ttl
}

// prune drops expired entries from data.
func prune(data map[string]entry, now time.Time, ttl time.Duration) (pruned bool) {
	for key, e := range data {
		if e.expired(now, ttl) {
			delete(data, key)
			pruned = true
		}
	}
	return pruned
}
