// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package httplogger provides a http.RoundTripper middleware that logs
// outgoing HTTP requests and their outcome.
package httplogger

import (
	"net/http"
	"time"

	"go.astrophena.name/tagdoc/internal/logger"
)

// New returns a http.RoundTripper that logs every request made through t to
// logf. A nil t means [http.DefaultTransport].
func New(t http.RoundTripper, logf logger.Logf) http.RoundTripper {
	if t == nil {
		t = http.DefaultTransport
	}
	return &loggingTransport{
		transport: t,
		logf:      logf.OrDiscard(),
		now:       time.Now,
	}
}

type loggingTransport struct {
	transport http.RoundTripper
	logf      logger.Logf
	now       func() time.Time // for tests
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := t.now()
	resp, err := t.transport.RoundTrip(r)
	took := t.now().Sub(start).Seconds()

	switch {
	case err != nil:
		t.logf("HTTP: %s %s: error: %v (%.3fs)", r.Method, r.URL.Redacted(), err, took)
	default:
		t.logf("HTTP: %s %s: %s (%.3fs)", r.Method, r.URL.Redacted(), resp.Status, took)
	}
	return resp, err
}
