// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package web

import (
	"net/http"
	"net/url"
	"sync"
)

// Health returns the [HealthHandler] registered on mux at /health, creating it
// if necessary.
func Health(mux *http.ServeMux) *HealthHandler {
	h, pat := mux.Handler(&http.Request{URL: &url.URL{Path: "/health"}})
	if hh, ok := h.(*HealthHandler); ok && pat == "/health" {
		return hh
	}
	ret := &HealthHandler{checks: make(map[string]HealthFunc)}
	mux.Handle("/health", ret)
	return ret
}

// HealthHandler reports the state of the documentation server as JSON. It
// responds with 500 if any registered check fails.
type HealthHandler struct {
	mu     sync.RWMutex
	checks map[string]HealthFunc
}

// HealthFunc reports the state of a particular part of the server. It must be
// safe for concurrent use.
type HealthFunc func() (status string, ok bool)

// RegisterFunc registers a check by name. It panics if a check with this name
// already exists.
func (h *HealthHandler) RegisterFunc(name string, f HealthFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, dup := h.checks[name]; dup {
		panic("health: check " + name + " is already registered")
	}
	h.checks[name] = f
}

// Status is a check whose state is set by whoever observes the checked thing,
// for example after each documentation rebuild. The zero Status is ok.
type Status struct {
	mu     sync.Mutex
	status string
	failed bool
}

// Set records the latest state.
func (s *Status) Set(status string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status, s.failed = status, !ok
}

// Check implements [HealthFunc].
func (s *Status) Check() (status string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, !s.failed
}

// HealthResponse is the body of a /health response.
type HealthResponse struct {
	OK     bool                     `json:"ok"`
	Checks map[string]CheckResponse `json:"checks"`
}

// CheckResponse is the result of a single check.
type CheckResponse struct {
	Status string `json:"status"`
	OK     bool   `json:"ok"`
}

// ServeHTTP implements the [http.Handler] interface.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hr := &HealthResponse{
		OK:     true,
		Checks: make(map[string]CheckResponse),
	}

	h.mu.RLock()
	for name, f := range h.checks {
		status, ok := f()
		hr.OK = hr.OK && ok
		hr.Checks[name] = CheckResponse{Status: status, OK: ok}
	}
	h.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if !hr.OK {
		w.WriteHeader(http.StatusInternalServerError)
	}
	RespondJSON(w, hr)
}
