// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config holds tagdoc options and reads them from Starlark
// configuration files.
//
// A configuration file is a Starlark script. Its top-level globals set the
// options:
//
//	title = "Widgets"
//	description = "A toolkit for widgets."
//	sources = ["src/widgets.js", "https://example.com/extra.js"]
//	renderer = "html"
//	show_todos = False
//
//	def format_source_url(filename, line):
//	    return "https://example.com/src/%s#L%d" % (filename, line)
//
// Unknown globals are ignored.
package config

import (
	"errors"
	"fmt"
	"strconv"

	"go.astrophena.name/tagdoc/internal/logger"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

// Config holds the options of a documentation run.
type Config struct {
	// Title is the display title.
	Title string
	// Description is the display subtitle.
	Description string
	// ShowSourceURL enables links to the source of every entity.
	ShowSourceURL bool
	// FormatSourceURL turns a location into a link. Nil means the filename
	// itself.
	FormatSourceURL func(filename string, line int) string
	// Renderer names the output format: "html", "text" or "json".
	Renderer string
	// Loader selects how sources are read: "auto" or "txtar:<archive>".
	Loader string
	// ShowErrors enables the list of errors found in the sources.
	ShowErrors bool
	// ShowTodos enables the list of todo notes.
	ShowTodos bool
	// Sources are the sources to document when none are given on the
	// command line.
	Sources []string
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Title:         "Documentation",
		ShowSourceURL: true,
		Renderer:      "html",
		Loader:        "auto",
		ShowErrors:    true,
		ShowTodos:     true,
	}
}

// SourceURL returns the link for a source location.
func (c *Config) SourceURL(filename string, line int) string {
	if c.FormatSourceURL == nil {
		return filename
	}
	return c.FormatSourceURL(filename, line)
}

// Load evaluates the configuration file filename and applies it on top of
// [Default]. If src is not nil, it's used as the file contents, as in
// [starlark.ExecFileOptions]. Output of print and failed format_source_url
// calls go to logf.
func Load(filename string, src any, logf logger.Logf) (*Config, error) {
	logf = logf.OrDiscard()

	thread := &starlark.Thread{
		Name:  filename,
		Print: func(_ *starlark.Thread, msg string) { logf("%s: %s", filename, msg) },
	}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, filename, src, predeclared())
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return nil, fmt.Errorf("%s: %s", filename, evalErr.Backtrace())
		}
		return nil, err
	}

	c := Default()
	var prefix string
	for _, opt := range []struct {
		key string
		dst any
	}{
		{"title", &c.Title},
		{"description", &c.Description},
		{"show_source_url", &c.ShowSourceURL},
		{"renderer", &c.Renderer},
		{"loader", &c.Loader},
		{"show_errors", &c.ShowErrors},
		{"show_todos", &c.ShowTodos},
		{"sources", &c.Sources},
		{"source_url_prefix", &prefix},
	} {
		v, ok := globals[opt.key]
		if !ok {
			continue
		}
		if err := unpack(v, opt.dst); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", filename, opt.key, err)
		}
	}

	if prefix != "" {
		c.FormatSourceURL = func(filename string, line int) string {
			return prefix + filename + "#L" + strconv.Itoa(line)
		}
	}
	if v, ok := globals["format_source_url"]; ok {
		fn, ok := v.(starlark.Callable)
		if !ok {
			return nil, fmt.Errorf("%s: format_source_url: got %s, want callable", filename, v.Type())
		}
		c.FormatSourceURL = sourceURLFunc(fn, logf)
	}

	return c, nil
}

func predeclared() starlark.StringDict {
	return starlark.StringDict{
		"module": starlark.NewBuiltin("module", starlarkstruct.MakeModule),
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
	}
}

// sourceURLFunc wraps a Starlark callable. Each call gets its own thread, so
// the result is safe for concurrent use. A failing call logs and falls back to
// the filename.
func sourceURLFunc(fn starlark.Callable, logf logger.Logf) func(string, int) string {
	return func(filename string, line int) string {
		thread := &starlark.Thread{
			Name:  "format_source_url",
			Print: func(_ *starlark.Thread, msg string) { logf("format_source_url: %s", msg) },
		}
		v, err := starlark.Call(thread, fn, starlark.Tuple{starlark.String(filename), starlark.MakeInt(line)}, nil)
		if err != nil {
			logf("format_source_url(%q, %d): %v", filename, line, err)
			return filename
		}
		s, ok := starlark.AsString(v)
		if !ok {
			logf("format_source_url(%q, %d): got %s, want string", filename, line, v.Type())
			return filename
		}
		return s
	}
}

func unpack(v starlark.Value, dst any) error {
	switch dst := dst.(type) {
	case *string:
		s, ok := starlark.AsString(v)
		if !ok {
			return fmt.Errorf("got %s, want string", v.Type())
		}
		*dst = s
	case *bool:
		b, ok := v.(starlark.Bool)
		if !ok {
			return fmt.Errorf("got %s, want bool", v.Type())
		}
		*dst = bool(b)
	case *[]string:
		iter, ok := v.(starlark.Iterable)
		if !ok {
			return fmt.Errorf("got %s, want list of strings", v.Type())
		}
		it := iter.Iterate()
		defer it.Done()
		var (
			s    []string
			elem starlark.Value
		)
		for it.Next(&elem) {
			str, ok := starlark.AsString(elem)
			if !ok {
				return fmt.Errorf("got %s in list, want string", elem.Type())
			}
			s = append(s, str)
		}
		*dst = s
	default:
		panic(fmt.Sprintf("config: unsupported destination %T", dst))
	}
	return nil
}
