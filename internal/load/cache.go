// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package load

import (
	"context"

	"go.astrophena.name/tagdoc/internal/logger"
	"go.astrophena.name/tagdoc/internal/store"
)

// Cached returns a Loader that keeps the text of successfully loaded sources
// in s and serves later loads of the same name from it. A failing store is
// logged to logf and otherwise ignored.
func Cached(l Loader, s store.Store, logf logger.Logf) Loader {
	logf = logf.OrDiscard()
	return LoaderFunc(func(ctx context.Context, name string) (string, error) {
		b, err := s.Get(ctx, name)
		if err != nil {
			logf("Cache lookup for %s failed: %v", name, err)
		}
		if b != nil {
			return string(b), nil
		}

		text, err := l.Load(ctx, name)
		if err != nil {
			return "", err
		}
		if err := s.Set(ctx, name, []byte(text)); err != nil {
			logf("Caching %s failed: %v", name, err)
		}
		return text, nil
	})
}
