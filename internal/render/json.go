// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package render

import (
	"encoding/json"
	"io"

	"go.astrophena.name/tagdoc/internal/doc"
)

// JSON renders the documentation as a single JSON object.
type JSON struct {
	opts Options
}

// NewJSON returns a JSON renderer.
func NewJSON(opts Options) *JSON { return &JSON{opts: opts} }

// ContentType implements [Renderer].
func (j *JSON) ContentType() string { return "application/json" }

type jsonDoc struct {
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Library     *doc.Library       `json:"library,omitempty"`
	Pages       []*doc.Page        `json:"pages"`
	Functions   []jsonFunction     `json:"functions"`
	Classes     []jsonClass        `json:"classes"`
	Todos       []jsonTodo         `json:"todos,omitempty"`
	Errors      []*doc.ErrorReport `json:"errors,omitempty"`
}

type jsonFunction struct {
	*doc.Function
	SourceURL string `json:"source_url,omitempty"`
}

type jsonClass struct {
	*doc.Class
	Inheritance []string `json:"inheritance"`
	SourceURL   string   `json:"source_url,omitempty"`
}

type jsonTodo struct {
	*doc.Todo
	Entity string `json:"entity,omitempty"`
}

// Render implements [Renderer].
func (j *JSON) Render(w io.Writer, d *doc.Documentation) error {
	out := jsonDoc{
		Title:       j.opts.Title,
		Description: j.opts.Description,
		Library:     d.Library,
		Pages:       d.Pages(),
		Functions:   []jsonFunction{},
		Classes:     []jsonClass{},
	}
	if out.Pages == nil {
		out.Pages = []*doc.Page{}
	}
	for _, f := range d.Functions() {
		out.Functions = append(out.Functions, jsonFunction{
			Function:  f,
			SourceURL: j.opts.sourceURL(f.Location),
		})
	}
	for _, c := range d.Classes() {
		out.Classes = append(out.Classes, jsonClass{
			Class:       c,
			Inheritance: d.InheritanceList(c),
			SourceURL:   j.opts.sourceURL(c.Location),
		})
	}
	if j.opts.ShowTodos {
		for _, t := range d.Todos {
			out.Todos = append(out.Todos, jsonTodo{Todo: t, Entity: doc.Name(t.Entity)})
		}
	}
	if j.opts.ShowErrors {
		out.Errors = d.Errors
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
