// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package request provides utilities for making HTTP requests.
package request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.astrophena.name/tagdoc/internal/version"
)

// DefaultClient is a [http.Client] with nice defaults.
var DefaultClient = &http.Client{
	Timeout: 10 * time.Second,
}

// MaxBodySize is the largest response body Fetch accepts.
const MaxBodySize = 16 << 20

// Params defines the parameters needed for making an HTTP request.
type Params struct {
	// Method is the HTTP method. Empty means GET.
	Method string
	// URL is the target URL of the request.
	URL string
	// Headers is a map of key-value pairs for additional request headers.
	Headers map[string]string
	// HTTPClient is an optional custom HTTP client object to use for the request.
	// If not provided, DefaultClient will be used.
	HTTPClient *http.Client
	// Scrubber is an optional strings.Replacer that scrubs unwanted data from
	// error messages.
	Scrubber *strings.Replacer
}

type scrubbedError struct {
	err      error
	scrubber *strings.Replacer
}

func (se *scrubbedError) Error() string {
	if se.scrubber != nil {
		return se.scrubber.Replace(se.err.Error())
	}
	return se.err.Error()
}

func (se *scrubbedError) Unwrap() error { return se.err }

func scrubErr(err error, scrubber *strings.Replacer) error {
	return &scrubbedError{err: err, scrubber: scrubber}
}

// StatusError is returned by Fetch when the server responds with anything
// other than 200 OK.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %q: want 200, got %d", e.Method, e.URL, e.Code)
}

// Fetch makes an HTTP request with the provided parameters and returns the
// response body.
func Fetch(ctx context.Context, p Params) ([]byte, error) {
	method := p.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, p.URL, nil)
	if err != nil {
		return nil, scrubErr(err, p.Scrubber)
	}

	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", UserAgent())

	httpc := DefaultClient
	if p.HTTPClient != nil {
		httpc = p.HTTPClient
	}

	res, err := httpc.Do(req)
	if err != nil {
		return nil, scrubErr(err, p.Scrubber)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, scrubErr(&StatusError{Method: method, URL: p.URL, Code: res.StatusCode}, p.Scrubber)
	}

	b, err := io.ReadAll(io.LimitReader(res.Body, MaxBodySize+1))
	if err != nil {
		return nil, scrubErr(err, p.Scrubber)
	}
	if len(b) > MaxBodySize {
		return nil, scrubErr(fmt.Errorf("%s %q: response body exceeds %d bytes", method, p.URL, MaxBodySize), p.Scrubber)
	}

	return b, nil
}

// UserAgent returns a user agent string built from the version information.
func UserAgent() string {
	i := version.Version()
	ver := i.Version
	if i.Version == "devel" && i.Commit != "" {
		ver = i.Commit
	}
	return i.Name + "/" + ver
}
