// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package render turns assembled documentation into HTML, plain text or
// JSON.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.astrophena.name/tagdoc/internal/config"
	"go.astrophena.name/tagdoc/internal/doc"
)

// Renderer writes documentation in some output format.
type Renderer interface {
	Render(w io.Writer, d *doc.Documentation) error
	// ContentType is the media type of the output.
	ContentType() string
}

// ErrUnknownRenderer is returned by [New] for renderer names it doesn't know.
var ErrUnknownRenderer = errors.New("unknown renderer")

// Options control what renderers emit.
type Options struct {
	Title         string
	Description   string
	ShowSourceURL bool
	ShowErrors    bool
	ShowTodos     bool
	// FormatSourceURL turns a location into a link. Nil means the filename.
	FormatSourceURL func(filename string, line int) string
	// Stylesheet is the URL of the stylesheet linked from HTML output. If
	// empty, the built-in stylesheet is inlined.
	Stylesheet string
	// Width is the line width of plain text output. Zero means 80.
	Width int
}

// OptionsFrom returns the options set by c.
func OptionsFrom(c *config.Config) Options {
	return Options{
		Title:           c.Title,
		Description:     c.Description,
		ShowSourceURL:   c.ShowSourceURL,
		ShowErrors:      c.ShowErrors,
		ShowTodos:       c.ShowTodos,
		FormatSourceURL: c.FormatSourceURL,
	}
}

// sourceURL returns the link to loc, or "" when source links are off.
func (o Options) sourceURL(loc doc.Location) string {
	if !o.ShowSourceURL || loc.Filename == "" {
		return ""
	}
	if o.FormatSourceURL == nil {
		return loc.Filename
	}
	return o.FormatSourceURL(loc.Filename, loc.Line)
}

// New returns the renderer with the given name. An empty name means "html".
func New(name string, opts Options) (Renderer, error) {
	switch name {
	case "", "html":
		return NewHTML(opts), nil
	case "text":
		return NewText(opts), nil
	case "json":
		return NewJSON(opts), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownRenderer, name)
}

// Signature formats a call signature like "name(type a, type b)".
func Signature(name string, params []doc.Param) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Type)
		sb.WriteByte(' ')
		sb.WriteString(p.Name)
	}
	sb.WriteByte(')')
	return sb.String()
}

// Anchor returns the HTML fragment identifier of an entity.
func Anchor(parts ...string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '-'
	}, strings.Join(parts, "-"))
}

// ref returns the fragment link of the documented entity named name, or "".
func ref(d *doc.Documentation, name string) string {
	e, ok := d.Lookup(name)
	if !ok {
		return ""
	}
	return "#" + Anchor(string(e.Metadata().Kind), name)
}
