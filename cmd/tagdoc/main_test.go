// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"

	"go.astrophena.name/tagdoc/internal/cli"
	"go.astrophena.name/tagdoc/internal/cli/clitest"
	"go.astrophena.name/tagdoc/internal/load"
	"go.astrophena.name/tagdoc/internal/render"
	"go.astrophena.name/tagdoc/internal/testutil"
)

func noEnv(string) string { return "" }

func TestRun(t *testing.T) {
	clitest.Run(t, func(t *testing.T) *app {
		return &app{getenv: noEnv}
	}, map[string]clitest.Case[*app]{
		"version": {
			Args:    []string{"-version"},
			WantErr: cli.ErrExitVersion,
		},
		"help": {
			Args:    []string{"-h"},
			WantErr: flag.ErrHelp,
		},
		"no sources": {
			Args:    []string{},
			WantErr: cli.ErrInvalidArgs,
		},
		"unknown format": {
			Args:    []string{"-format", "pdf", "testdata/widgets.js"},
			WantErr: render.ErrUnknownRenderer,
		},
		"html": {
			Args:         []string{"testdata/widgets.js"},
			WantInStdout: `<a href="#class-Button">Button</a>`,
			WantInStderr: "Documented 1 sources: 0 pages, 1 classes, 1 functions, 0 errors.",
		},
		"text": {
			Args:         []string{"-format", "text", "testdata/widgets.js"},
			WantInStdout: "    press() → bool\n",
		},
		"json": {
			Args:         []string{"-format", "json", "testdata/widgets.js"},
			WantInStdout: `"name": "Button"`,
		},
		"title": {
			Args:         []string{"-format", "text", "-title", "Widgets", "testdata/widgets.js"},
			WantInStdout: "Widgets\n=======\n",
		},
		"no source url": {
			Args:         []string{"-format", "json", "-no-source-url", "testdata/widgets.js"},
			WantInStdout: `"kind": "class"`,
		},
		"several sources": {
			Args:         []string{"-format", "text", "testdata/widgets.js", "testdata/broken.js"},
			WantInStdout: "testdata/broken.js:3: class \"Broken\" cannot have a @return",
			WantInStderr: "Documented 2 sources: 0 pages, 1 classes, 2 functions, 2 errors.",
		},
		"missing source": {
			Args:         []string{"-format", "text", "testdata/missing.js"},
			WantInStdout: "testdata/missing.js: cannot load: open testdata/missing.js: no such file or directory",
			WantInStderr: "Failed to load testdata/missing.js",
		},
		"strict": {
			Args:         []string{"-strict", "testdata/broken.js"},
			WantErr:      errDocErrors,
			WantInStderr: "testdata/broken.js:8: unparsed lines in comment block:",
		},
		"without errors and todos": {
			Args:            []string{"-format", "text", "-no-errors", "-no-todos", "testdata/widgets.js", "testdata/broken.js"},
			WantInStdout:    "class Button",
			WantNotInStdout: "cannot have a @return",
		},
		"todos": {
			Args:         []string{"-format", "text", "testdata/widgets.js"},
			WantInStdout: "- support icons (Button)",
		},
		"no todos": {
			Args:            []string{"-format", "text", "-no-todos", "testdata/widgets.js"},
			WantNotInStdout: "support icons",
		},
		"strict without errors": {
			Args: []string{"-strict", "-format", "json", "testdata/widgets.js"},
		},
		"config file": {
			Args:         []string{"-config", "testdata/config.star"},
			WantInStdout: "Source: https://example.com/testdata/widgets.js#L8\n",
		},
		"config file with flags": {
			Args:         []string{"-config", "testdata/config.star", "-format", "html", "-title", "Other", "testdata/broken.js"},
			WantInStdout: "<title>Other</title>",
		},
		"config file prints": {
			Args:         []string{"-config", "testdata/print.star"},
			WantInStdout: "Source: https://example.com/testdata/widgets.js#L8\n",
			WantInStderr: "testdata/print.star: documenting 1 sources\n",
		},
		"config file prints from format_source_url": {
			Args:         []string{"-config", "testdata/print.star"},
			WantInStderr: "format_source_url: linking testdata/widgets.js:8\n",
		},
		"missing config file": {
			Args:    []string{"-config", "testdata/missing.star"},
			WantErr: os.ErrNotExist,
		},
		"txtar loader": {
			Args:         []string{"-config", "testdata/bundle.star"},
			WantInStdout: `"name": "Beta"`,
		},
		"txtar loader with sources": {
			Args:         []string{"-config", "testdata/bundle.star", "-format", "text", "b.js"},
			WantInStdout: "Inherits: Beta → Alpha",
		},
	})
}

func TestRunConfigFromEnv(t *testing.T) {
	clitest.Run(t, func(t *testing.T) *app {
		return &app{getenv: func(name string) string {
			if name == "TAGDOC_CONFIG" {
				return "testdata/config.star"
			}
			return ""
		}}
	}, map[string]clitest.Case[*app]{
		"from env": {
			Args:         []string{},
			WantInStdout: "Widgets reference\n=================\n",
		},
		"flag wins": {
			Args:         []string{"-config", "testdata/bundle.star"},
			WantInStdout: `"name": "Alpha"`,
		},
	})
}

func TestRunOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "index.html")
	clitest.Run(t, func(t *testing.T) *app {
		return &app{getenv: noEnv}
	}, map[string]clitest.Case[*app]{
		"output file": {
			Args: []string{"-o", out, "testdata/widgets.js"},
			CheckFunc: func(t *testing.T, _ *app) {
				b, err := os.ReadFile(out)
				if err != nil {
					t.Fatal(err)
				}
				testutil.AssertContains(t, string(b), "<title>Documentation</title>")
			},
		},
	})
}

func TestLoader(t *testing.T) {
	a := &app{}

	if _, _, err := a.loader("ftp", nil, nil); !errors.Is(err, errUnknownLoader) {
		t.Errorf("want errUnknownLoader, got %v", err)
	}

	_, sources, err := a.loader("txtar:testdata/bundle.txtar", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, sources, []string{"a.js", "b.js"})

	_, sources, err = a.loader("auto", []string{"x.js"}, load.HTTP(nil))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, sources, []string{"x.js"})
}

func TestRemoteCache(t *testing.T) {
	widgets, err := os.ReadFile("testdata/widgets.js")
	if err != nil {
		t.Fatal(err)
	}
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(widgets)
	}))
	defer srv.Close()

	cacheFile := filepath.Join(t.TempDir(), "cache.json")
	run := func() (stdout, stderr string) {
		t.Helper()
		var outBuf, errBuf bytes.Buffer
		env := &cli.Env{
			Args:   []string{"-v", "-cache", cacheFile, "-format", "text", srv.URL + "/widgets.js"},
			Getenv: noEnv,
			Stdin:  strings.NewReader(""),
			Stdout: &outBuf,
			Stderr: &errBuf,
		}
		a := &app{getenv: noEnv, httpc: srv.Client()}
		if err := cli.Run(cli.WithEnv(context.Background(), env), a); err != nil {
			t.Fatalf("run failed: %v\nstderr:\n%s", err, errBuf.String())
		}
		return outBuf.String(), errBuf.String()
	}

	out, logs := run()
	testutil.AssertContains(t, out, "class Button")
	testutil.AssertContains(t, logs, "HTTP: GET "+srv.URL+"/widgets.js: 200 OK")

	out, logs = run()
	testutil.AssertContains(t, out, "class Button")
	if strings.Contains(logs, "HTTP: GET") {
		t.Errorf("second run must be served from the cache, got logs:\n%s", logs)
	}
	testutil.AssertEqual(t, hits.Load(), int32(1))
}

func TestServe(t *testing.T) {
	port, err := getFreePort()
	if err != nil {
		t.Fatalf("Failed to find a free port: %v", err)
	}
	addr := fmt.Sprintf("localhost:%d", port)

	ready := make(chan struct{})
	a := &app{getenv: noEnv, ready: func() { close(ready) }}

	var stderr bytes.Buffer
	env := &cli.Env{
		Args:   []string{"-serve", addr, "testdata/widgets.js"},
		Getenv: noEnv,
		Stdout: io.Discard,
		Stderr: &stderr,
	}
	ctx, cancel := context.WithCancel(cli.WithEnv(context.Background(), env))
	errCh := make(chan error, 1)
	go func() { errCh <- cli.Run(ctx, a) }()

	select {
	case err := <-errCh:
		t.Fatalf("server exited before it was ready: %v", err)
	case <-ready:
	}

	get := func(path string, wantStatus int) string {
		t.Helper()
		res, err := http.Get("http://" + addr + path)
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		b, err := io.ReadAll(res.Body)
		if err != nil {
			t.Fatal(err)
		}
		if res.StatusCode != wantStatus {
			t.Fatalf("GET %s: want status code %d, got %d", path, wantStatus, res.StatusCode)
		}
		return string(b)
	}

	page := get("/", http.StatusOK)
	testutil.AssertContains(t, page, `<a href="#class-Button">Button</a>`)
	m := regexp.MustCompile(`<link rel="stylesheet" href="([^"]+)">`).FindStringSubmatch(page)
	if m == nil {
		t.Fatalf("page links no stylesheet:\n%s", page)
	}
	testutil.AssertContains(t, get(m[1], http.StatusOK), "font-family")
	testutil.AssertContains(t, get("/health", http.StatusOK), `"status": "1 sources, 0 failed to load"`)
	get("/nope", http.StatusNotFound)

	res, err := http.Post("http://"+addr+"/", "text/plain", nil)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	testutil.AssertEqual(t, res.StatusCode, http.StatusMethodNotAllowed)

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("server failed: %v", err)
	}
}

// getFreePort asks the kernel for a free open port that is ready to use.
func getFreePort() (port int, err error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
