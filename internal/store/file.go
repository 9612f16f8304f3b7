// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"crawshaw.dev/jsonfile"

	"go.astrophena.name/tagdoc/internal/filelock"
)

// ErrLocked is returned by [OpenFile] when another process uses the file.
var ErrLocked = errors.New("cache file is used by another process")

// FileStore is a [Store] kept in a JSON file. Only one process can have the
// file open at a time; it is locked through a sibling file with the .lock
// suffix.
type FileStore struct {
	f    *jsonfile.JSONFile[fileContents]
	ttl  time.Duration
	now  func() time.Time // for tests
	lock *filelock.Lock
}

type fileContents struct {
	Data map[string]entry `json:"data"`
}

// OpenFile opens the FileStore at path, creating the file if it does not
// exist. Expired entries are dropped on open.
func OpenFile(path string, ttl time.Duration) (*FileStore, error) {
	lock, err := filelock.Acquire(path+".lock", strconv.Itoa(os.Getpid())+"\n")
	if errors.Is(err, filelock.ErrAlreadyLocked) {
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}
	if err != nil {
		return nil, err
	}

	f, err := jsonfile.Load[fileContents](path)
	if errors.Is(err, fs.ErrNotExist) {
		f, err = jsonfile.New[fileContents](path)
	}
	if err != nil {
		lock.Release()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s := &FileStore{
		f:    f,
		ttl:  ttl,
		now:  time.Now,
		lock: lock,
	}
	if err := s.f.Write(func(fc *fileContents) error {
		if fc.Data == nil {
			fc.Data = make(map[string]entry)
		}
		prune(fc.Data, s.now(), s.ttl)
		return nil
	}); err != nil {
		lock.Release()
		return nil, err
	}
	return s, nil
}

// Get implements [Store]. A hit refreshes the access time on disk.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	var found bool
	s.f.Read(func(fc *fileContents) {
		_, found = fc.Data[key]
	})
	if !found {
		return nil, nil
	}

	var val []byte
	err := s.f.Write(func(fc *fileContents) error {
		e, ok := fc.Data[key]
		if !ok {
			return nil
		}
		now := s.now()
		if e.expired(now, s.ttl) {
			delete(fc.Data, key)
			return nil
		}
		e.LastAccessed = now
		fc.Data[key] = e
		val = append([]byte(nil), e.Value...)
		return nil
	})
	return val, err
}

// Set implements [Store]. Every call rewrites the file.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	return s.f.Write(func(fc *fileContents) error {
		fc.Data[key] = entry{
			Value:        append([]byte(nil), value...),
			LastAccessed: s.now(),
		}
		return nil
	})
}

// Close releases the lock. Changes are already on disk.
func (s *FileStore) Close() error {
	return s.lock.Release()
}
