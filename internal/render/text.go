// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.astrophena.name/tagdoc/internal/doc"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// Text renders plain text, wrapped to a fixed width.
type Text struct {
	opts Options
}

// NewText returns a plain text renderer.
func NewText(opts Options) *Text {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	return &Text{opts: opts}
}

// ContentType implements [Renderer].
func (t *Text) ContentType() string { return "text/plain; charset=utf-8" }

// Render implements [Renderer].
func (t *Text) Render(w io.Writer, d *doc.Documentation) error {
	tw := &textWriter{w: bufio.NewWriter(w), width: t.opts.Width}

	tw.heading(t.opts.Title, "=")
	tw.para(0, t.opts.Description)
	if l := d.Library; l != nil {
		name := l.Name
		if l.Version != "" {
			name += " " + l.Version
		}
		tw.para(0, name)
		if len(l.Authors) > 0 {
			tw.para(0, "By "+strings.Join(l.Authors, ", "))
		}
		tw.para(0, l.Brief)
		tw.para(0, l.Description)
	}

	if pages := d.Pages(); len(pages) > 0 {
		tw.heading("Pages", "-")
		for _, p := range pages {
			tw.para(0, p.Name)
			tw.para(4, p.Content)
		}
	}

	if funcs := d.Functions(); len(funcs) > 0 {
		tw.heading("Functions", "-")
		for _, f := range funcs {
			sig := Signature(f.Name, f.Params)
			if f.Return != nil {
				sig += " → " + f.Return.Type
			}
			tw.para(0, sig)
			tw.para(4, f.Brief)
			tw.para(4, f.Description)
			t.params(tw, f.Params)
			if f.Return != nil && f.Return.Description != "" {
				tw.para(4, "Returns "+f.Return.Description)
			}
			t.examples(tw, f.Examples)
			t.see(tw, f.See)
			t.source(tw, f.Location)
		}
	}

	if classes := d.Classes(); len(classes) > 0 {
		tw.heading("Classes", "-")
		for _, c := range classes {
			tw.para(0, "class "+c.Name)
			if chain := d.InheritanceList(c); len(chain) > 1 {
				tw.para(4, "Inherits: "+strings.Join(chain, " → "))
			}
			tw.para(4, "new "+Signature(c.Name, c.Params))
			tw.para(4, c.Brief)
			tw.para(4, c.Description)
			t.params(tw, c.Params)
			for _, p := range c.Properties {
				line := p.Name + " " + p.Type
				if desc := strings.TrimSpace(p.Brief + " " + p.Description); desc != "" {
					line += ": " + desc
				}
				tw.para(4, line)
			}
			for _, m := range c.Methods {
				line := Signature(m.Name, m.Params)
				if m.Return != nil {
					line += " → " + m.Return.Type
				}
				if m.Brief != "" {
					line += ": " + m.Brief
				}
				tw.para(4, line)
			}
			for _, e := range c.Events {
				line := "event " + e.Name
				if e.Description != "" {
					line += ": " + e.Description
				}
				tw.para(4, line)
			}
			t.examples(tw, c.Examples)
			t.see(tw, c.See)
			t.source(tw, c.Location)
		}
	}

	if t.opts.ShowTodos && len(d.Todos) > 0 {
		tw.heading("Todo", "-")
		for _, todo := range d.Todos {
			line := "- " + todo.Content
			if name := doc.Name(todo.Entity); name != "" {
				line += " (" + name + ")"
			}
			tw.para(0, line)
		}
	}

	if t.opts.ShowErrors && len(d.Errors) > 0 {
		tw.heading("Errors", "-")
		for _, e := range d.Errors {
			tw.verbatim(0, e.Error())
		}
	}

	return tw.flush()
}

func (t *Text) params(tw *textWriter, params []doc.Param) {
	for _, p := range params {
		line := p.Type + " " + p.Name
		if p.Description != "" {
			line += ": " + p.Description
		}
		tw.para(4, line)
	}
}

func (t *Text) examples(tw *textWriter, examples []string) {
	for _, ex := range examples {
		tw.verbatim(8, ex)
	}
}

func (t *Text) see(tw *textWriter, see []string) {
	if len(see) > 0 {
		tw.para(4, "See "+strings.Join(see, ", "))
	}
}

func (t *Text) source(tw *textWriter, loc doc.Location) {
	if u := t.opts.sourceURL(loc); u != "" {
		tw.para(4, "Source: "+u)
	}
}

// textWriter remembers the first write error and drops everything after it.
type textWriter struct {
	w     *bufio.Writer
	width int
	err   error
}

func (tw *textWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

func (tw *textWriter) heading(s, underline string) {
	if s == "" {
		return
	}
	tw.printf("%s\n%s\n\n", s, strings.Repeat(underline, len([]rune(s))))
}

// para writes s wrapped to the line width and indented by n spaces.
func (tw *textWriter) para(n int, s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	wrapped := wordwrap.String(s, max(tw.width-n, 20))
	tw.printf("%s\n\n", indent.String(wrapped, uint(n)))
}

// verbatim writes s indented by n spaces without wrapping.
func (tw *textWriter) verbatim(n int, s string) {
	if s == "" {
		return
	}
	tw.printf("%s\n\n", indent.String(s, uint(n)))
}

func (tw *textWriter) flush() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.w.Flush()
}
