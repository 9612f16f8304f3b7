// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package web

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.astrophena.name/tagdoc/internal/testutil"
)

func TestHealthHandler(t *testing.T) {
	cases := map[string]struct {
		checks     map[string]HealthFunc
		want       *HealthResponse
		wantStatus int
	}{
		"no checks": {
			checks:     map[string]HealthFunc{},
			want:       &HealthResponse{OK: true, Checks: map[string]CheckResponse{}},
			wantStatus: http.StatusOK,
		},
		"all sources loaded": {
			checks: map[string]HealthFunc{
				"sources": func() (string, bool) { return "3 sources, 0 failed", true },
			},
			want: &HealthResponse{
				OK: true,
				Checks: map[string]CheckResponse{
					"sources": {OK: true, Status: "3 sources, 0 failed"},
				},
			},
			wantStatus: http.StatusOK,
		},
		"one failing check fails everything": {
			checks: map[string]HealthFunc{
				"sources": func() (string, bool) { return "3 sources, 1 failed", false },
				"config":  func() (string, bool) { return "loaded", true },
			},
			want: &HealthResponse{
				OK: false,
				Checks: map[string]CheckResponse{
					"sources": {OK: false, Status: "3 sources, 1 failed"},
					"config":  {OK: true, Status: "loaded"},
				},
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			mux := http.NewServeMux()
			h := Health(mux)
			for name, f := range tc.checks {
				h.RegisterFunc(name, f)
			}

			got := new(HealthResponse)
			if err := json.Unmarshal([]byte(send(t, mux, http.MethodGet, "/health", tc.wantStatus)), got); err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestHealthStatus(t *testing.T) {
	mux := http.NewServeMux()
	var s Status
	Health(mux).RegisterFunc("sources", s.Check)

	// Before the first update.
	send(t, mux, http.MethodGet, "/health", http.StatusOK)

	s.Set("2 sources, 1 failed", false)
	testutil.AssertContains(t, send(t, mux, http.MethodGet, "/health", http.StatusInternalServerError), `"status": "2 sources, 1 failed"`)

	s.Set("2 sources, 0 failed", true)
	send(t, mux, http.MethodGet, "/health", http.StatusOK)
}

func TestHealthReuse(t *testing.T) {
	mux := http.NewServeMux()
	h := Health(mux)
	if Health(mux) != h {
		t.Fatal("Health must return the already registered handler")
	}
	h.RegisterFunc("b", func() (string, bool) { return "", true })
	h.RegisterFunc("a", func() (string, bool) { return "", true })
	body := send(t, mux, http.MethodGet, "/health", http.StatusOK)
	testutil.AssertContains(t, body, `"a": {`)
	testutil.AssertContains(t, body, `"b": {`)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("RegisterFunc did not panic on a duplicate name")
		}
	}()
	h.RegisterFunc("a", func() (string, bool) { return "", true })
}
