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
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.astrophena.name/tagdoc/internal/atomicio"
	"go.astrophena.name/tagdoc/internal/cli"
	"go.astrophena.name/tagdoc/internal/cli/envflag"
	"go.astrophena.name/tagdoc/internal/config"
	"go.astrophena.name/tagdoc/internal/doc"
	"go.astrophena.name/tagdoc/internal/httplogger"
	"go.astrophena.name/tagdoc/internal/load"
	"go.astrophena.name/tagdoc/internal/render"
	"go.astrophena.name/tagdoc/internal/request"
	"go.astrophena.name/tagdoc/internal/restrict"
	"go.astrophena.name/tagdoc/internal/store"
	"go.astrophena.name/tagdoc/internal/web"

	"github.com/benbjohnson/hashfs"
	"github.com/landlock-lsm/go-landlock/landlock"
)

func main() { cli.Main(&app{getenv: os.Getenv}) }

type app struct {
	// flags
	configFile  *string
	title       string
	output      string
	format      string
	serve       string
	strict      bool
	jobs        int
	noErrors    bool
	noTodos     bool
	noSourceURL bool
	cacheFile   string
	cacheTTL    time.Duration
	verbose     bool

	// for tests
	getenv func(string) string
	httpc  *http.Client
	ready  func()
}

func (a *app) Flags(fs *flag.FlagSet) {
	getenv := a.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	a.configFile = envflag.Value("config", "TAGDOC_CONFIG", "", "Read configuration from Starlark `file`.", fs, getenv)
	fs.StringVar(&a.title, "title", "", "Override the document `title`.")
	fs.StringVar(&a.output, "o", "", "Write output to `file` instead of stdout.")
	fs.StringVar(&a.format, "format", "", "Output `format`: html, text or json.")
	fs.StringVar(&a.serve, "serve", "", "Serve documentation on `host:port`, rebuilding it on every request.")
	fs.BoolVar(&a.strict, "strict", false, "Fail if the documented sources have any errors.")
	fs.IntVar(&a.jobs, "jobs", 8, "Load at most `n` sources at once.")
	fs.BoolVar(&a.noErrors, "no-errors", false, "Don't list errors found in the sources.")
	fs.BoolVar(&a.noTodos, "no-todos", false, "Don't list todo notes.")
	fs.BoolVar(&a.noSourceURL, "no-source-url", false, "Don't link entities to their source.")
	fs.StringVar(&a.cacheFile, "cache", "", "Cache remote sources in JSON `file`.")
	fs.DurationVar(&a.cacheTTL, "cache-ttl", time.Hour, "Drop cached sources unused for `duration`.")
	fs.BoolVar(&a.verbose, "v", false, "Log every remote source fetch.")
}

var (
	errDocErrors     = errors.New("documented sources have errors")
	errNoSources     = errors.New("no sources to document")
	errUnknownLoader = errors.New("unknown loader")
)

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	cfg, err := a.config(ctx)
	if err != nil {
		return err
	}

	cache, err := a.cache(ctx)
	if err != nil {
		return err
	}
	if cache != nil {
		defer func() {
			if err := cache.Close(); err != nil {
				env.Logf("Closing cache: %v", err)
			}
		}()
	}

	sources := env.Args
	if len(sources) == 0 {
		sources = cfg.Sources
	}
	loader, sources, err := a.loader(cfg.Loader, sources, a.remote(env, cache))
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("%w: %w", cli.ErrInvalidArgs, errNoSources)
	}

	if a.serve != "" {
		return a.doServe(ctx, cfg, loader, sources)
	}

	r, err := render.New(cfg.Renderer, render.OptionsFrom(cfg))
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrInvalidArgs, err)
	}

	if !strings.HasPrefix(cfg.Loader, "txtar:") && !anyRemote(sources) {
		restrict.DoUnlessTesting(ctx, a.sandboxRules(sources)...)
	}

	d, _, err := a.build(ctx, loader, sources)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	if err := a.write(env.Stdout, buf.Bytes()); err != nil {
		return err
	}

	env.Logf("Documented %d sources: %d pages, %d classes, %d functions, %d errors.",
		len(sources), len(d.Pages()), len(d.Classes()), len(d.Functions()), len(d.Errors))

	if a.strict && len(d.Errors) > 0 {
		for _, e := range d.Errors {
			env.Logf("%v", e)
		}
		return fmt.Errorf("%w: %d found", errDocErrors, len(d.Errors))
	}
	return nil
}

// config reads the configuration file, if any, and applies flags on top of
// it.
func (a *app) config(ctx context.Context) (*config.Config, error) {
	cfg := config.Default()
	if a.configFile != nil && *a.configFile != "" {
		var err error
		cfg, err = config.Load(*a.configFile, nil, cli.GetEnv(ctx).Logf)
		if err != nil {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}
	}

	if a.title != "" {
		cfg.Title = a.title
	}
	if a.format != "" {
		cfg.Renderer = a.format
	}
	if a.noErrors {
		cfg.ShowErrors = false
	}
	if a.noTodos {
		cfg.ShowTodos = false
	}
	if a.noSourceURL {
		cfg.ShowSourceURL = false
	}
	return cfg, nil
}

// cache opens the cache for remote sources. Without -cache only the server
// keeps one, in memory.
func (a *app) cache(ctx context.Context) (store.Store, error) {
	if a.cacheFile != "" {
		s, err := store.OpenFile(a.cacheFile, a.cacheTTL)
		if err != nil {
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		return s, nil
	}
	if a.serve != "" {
		return store.NewMemStore(ctx, a.cacheTTL), nil
	}
	return nil, nil
}

// remote returns the loader for sources given by URL.
func (a *app) remote(env *cli.Env, cache store.Store) load.Loader {
	httpc := a.httpc
	if a.verbose {
		base := request.DefaultClient
		if httpc != nil {
			base = httpc
		}
		httpc = &http.Client{
			Timeout:   base.Timeout,
			Transport: httplogger.New(base.Transport, env.Logf),
		}
	}
	l := load.HTTP(httpc)
	if cache != nil {
		l = load.Cached(l, cache, env.Logf)
	}
	return l
}

// loader returns the loader named by the configuration. A txtar loader
// documents every file of its archive when no sources are given.
func (a *app) loader(name string, sources []string, remote load.Loader) (load.Loader, []string, error) {
	switch {
	case name == "" || name == "auto":
		return load.Auto(load.OS(), remote), sources, nil
	case strings.HasPrefix(name, "txtar:"):
		l, names, err := load.TxtarFile(strings.TrimPrefix(name, "txtar:"))
		if err != nil {
			return nil, nil, fmt.Errorf("loading archive: %w", err)
		}
		if len(sources) == 0 {
			sources = names
		}
		return l, sources, nil
	}
	return nil, nil, fmt.Errorf("%w: %w %q", cli.ErrInvalidArgs, errUnknownLoader, name)
}

func anyRemote(sources []string) bool {
	for _, s := range sources {
		if load.IsRemote(s) {
			return true
		}
	}
	return false
}

// sandboxRules allow reading the sources and writing the output and cache.
func (a *app) sandboxRules(sources []string) []landlock.Rule {
	rules := []landlock.Rule{landlock.ROFiles(sources...)}
	if a.output != "" {
		rules = append(rules, landlock.RWDirs(filepath.Dir(a.output)))
	}
	if a.cacheFile != "" {
		rules = append(rules, landlock.RWDirs(filepath.Dir(a.cacheFile)))
	}
	return rules
}

// build loads every source and assembles the documentation. Sources that
// fail to load are logged and become errors of the documentation; build
// returns how many of them there were.
func (a *app) build(ctx context.Context, l load.Loader, sources []string) (d *doc.Documentation, failed int, err error) {
	results, err := load.All(ctx, l, sources, a.jobs)
	if err != nil {
		return nil, 0, err
	}

	logf := cli.GetEnv(ctx).Logf
	srcs := make([]doc.Source, len(results))
	for i, res := range results {
		if res.Err != nil {
			logf("Failed to load %s: %v", res.Name, res.Err)
			failed++
		}
		srcs[i] = doc.Source{Name: res.Name, Text: res.Text, Err: res.Err}
	}
	return doc.Build(srcs), failed, nil
}

func (a *app) write(stdout io.Writer, b []byte) error {
	if a.output == "" {
		_, err := stdout.Write(b)
		return err
	}
	return atomicio.WriteFile(a.output, b, 0o644)
}

func (a *app) doServe(ctx context.Context, cfg *config.Config, l load.Loader, sources []string) error {
	static := hashfs.NewFS(render.StaticFS)

	opts := render.OptionsFrom(cfg)
	opts.Stylesheet = "/" + static.HashName(render.StylesheetPath)
	r, err := render.New(cfg.Renderer, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrInvalidArgs, err)
	}

	mux := http.NewServeMux()
	var status web.Status
	web.Health(mux).RegisterFunc("sources", status.Check)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, req *http.Request) {
		d, failed, err := a.build(req.Context(), l, sources)
		if err != nil {
			web.RespondError(w, req, err)
			return
		}
		status.Set(fmt.Sprintf("%d sources, %d failed to load", len(sources), failed), failed == 0)
		var buf bytes.Buffer
		if err := r.Render(&buf, d); err != nil {
			web.RespondError(w, req, err)
			return
		}
		w.Header().Set("Content-Type", r.ContentType())
		buf.WriteTo(w)
	})

	return web.ListenAndServe(ctx, &web.ListenAndServeConfig{
		Addr:   a.serve,
		Mux:    mux,
		Logf:   cli.GetEnv(ctx).Logf,
		Static: static,
		Ready:  a.ready,
		Getenv: cli.GetEnv(ctx).Getenv,
	})
}
