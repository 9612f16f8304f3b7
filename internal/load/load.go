// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package load retrieves the text of documented source files.
package load

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"go.astrophena.name/tagdoc/internal/request"
	"go.astrophena.name/tagdoc/internal/util/syncx"
)

// Loader returns the full text of a named source.
type Loader interface {
	Load(ctx context.Context, name string) (string, error)
}

// LoaderFunc adapts a function to a [Loader].
type LoaderFunc func(ctx context.Context, name string) (string, error)

// Load implements [Loader].
func (f LoaderFunc) Load(ctx context.Context, name string) (string, error) { return f(ctx, name) }

// OS returns a Loader that reads files from the local file system.
func OS() Loader {
	return LoaderFunc(func(ctx context.Context, name string) (string, error) {
		b, err := os.ReadFile(name)
		if err != nil {
			return "", err
		}
		return string(b), nil
	})
}

// FS returns a Loader that reads files from fsys.
func FS(fsys fs.FS) Loader {
	return LoaderFunc(func(ctx context.Context, name string) (string, error) {
		b, err := fs.ReadFile(fsys, path.Clean(strings.TrimPrefix(name, "/")))
		if err != nil {
			return "", err
		}
		return string(b), nil
	})
}

// HTTP returns a Loader that fetches sources over HTTP. A nil client means
// [request.DefaultClient].
func HTTP(client *http.Client) Loader {
	return LoaderFunc(func(ctx context.Context, name string) (string, error) {
		b, err := request.Fetch(ctx, request.Params{
			URL:        name,
			HTTPClient: client,
		})
		if err != nil {
			return "", err
		}
		return string(b), nil
	})
}

// IsRemote reports whether name is an HTTP or HTTPS URL.
func IsRemote(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

// Auto returns a Loader that sends URLs to remote and everything else to
// local.
func Auto(local, remote Loader) Loader {
	return LoaderFunc(func(ctx context.Context, name string) (string, error) {
		if IsRemote(name) {
			return remote.Load(ctx, name)
		}
		return local.Load(ctx, name)
	})
}

// ErrNoSources is returned by All when there is nothing to load.
var ErrNoSources = errors.New("no sources to load")

// Result is the outcome of loading one source.
type Result struct {
	Name string
	Text string
	Err  error
}

// All loads every named source with at most jobs loads in flight and waits
// for all of them. Results are in the order of names, whatever order the
// loads finish in. A failed load is recorded in its Result and doesn't stop
// the others.
func All(ctx context.Context, l Loader, names []string, jobs int) ([]Result, error) {
	if len(names) == 0 {
		return nil, ErrNoSources
	}

	results := make([]Result, len(names))
	lwg := syncx.NewLimitedWaitGroup(jobs)
	for i, name := range names {
		lwg.Add(1)
		go func() {
			defer lwg.Done()
			results[i] = Result{Name: name}
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}
			results[i].Text, results[i].Err = l.Load(ctx, name)
		}()
	}
	lwg.Wait()

	return results, ctx.Err()
}
