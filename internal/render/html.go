// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"sync"

	"go.astrophena.name/tagdoc/internal/doc"

	"rsc.io/markdown"
)

// StaticFS contains the static resources used by HTML output.
//
//go:embed static
var StaticFS embed.FS

// StylesheetPath is the path of the built-in stylesheet inside [StaticFS].
const StylesheetPath = "static/css/main.css"

var (
	//go:embed templates/doc.html
	docTemplateStr string

	//go:embed static/css/main.css
	mainCSS string
)

var parser = sync.OnceValue(func() *markdown.Parser {
	return &markdown.Parser{
		HeadingID:     true,
		Strikethrough: true,
		AutoLinkText:  true,
		Table:         true,
	}
})

func markdownToHTML(s string) template.HTML {
	if s == "" {
		return ""
	}
	return template.HTML(markdown.ToHTML(parser().Parse(s)))
}

// HTML renders a single HTML page.
type HTML struct {
	opts Options
	tmpl *template.Template
}

// NewHTML returns an HTML renderer.
func NewHTML(opts Options) *HTML {
	return &HTML{
		opts: opts,
		tmpl: template.Must(template.New("doc").Funcs(template.FuncMap{
			"anchor":    Anchor,
			"md":        markdownToHTML,
			"name":      doc.Name,
			"signature": Signature,
			"source":    opts.sourceURL,
			// Replaced for every rendered Documentation.
			"chain": func(*doc.Class) []string { return nil },
			"ref":   func(string) string { return "" },
		}).Parse(docTemplateStr)),
	}
}

// ContentType implements [Renderer].
func (h *HTML) ContentType() string { return "text/html; charset=utf-8" }

// Render implements [Renderer].
func (h *HTML) Render(w io.Writer, d *doc.Documentation) error {
	tmpl, err := h.tmpl.Clone()
	if err != nil {
		return err
	}
	tmpl.Funcs(template.FuncMap{
		"chain": d.InheritanceList,
		"ref":   func(name string) string { return ref(d, name) },
	})

	data := struct {
		Options
		CSS template.CSS
		Doc *doc.Documentation
	}{
		Options: h.opts,
		CSS:     template.CSS(mainCSS),
		Doc:     d,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}
