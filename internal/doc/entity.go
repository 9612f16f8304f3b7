// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package doc

import (
	"fmt"

	"go.astrophena.name/tagdoc/internal/comment"
)

// Kind names an entity kind.
type Kind string

// Entity kinds.
const (
	KindLibrary  Kind = "library"
	KindFunction Kind = "function"
	KindClass    Kind = "class"
	KindMethod   Kind = "method"
	KindProperty Kind = "property"
	KindPage     Kind = "page"
	KindTodo     Kind = "todo"
	KindError    Kind = "error"
)

// Entity is a documented thing assembled from the commands of one block.
type Entity interface {
	Metadata() Meta
}

// Meta identifies an entity within a run. Seq counts entities of the same
// kind, GlobalSeq counts all entities.
type Meta struct {
	Kind      Kind `json:"kind"`
	Seq       int  `json:"seq"`
	GlobalSeq int  `json:"global_seq"`
}

// Metadata implements [Entity].
func (m Meta) Metadata() Meta { return m }

// Location is where an entity is declared.
type Location struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
}

// Param is a parameter of a function, method or class constructor.
type Param struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Return is the result of a function or method.
type Return struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Event is an event a class emits.
type Event struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Library describes the documented library as a whole.
type Library struct {
	Meta
	Location
	Name        string   `json:"name"`
	Version     string   `json:"version,omitempty"`
	Brief       string   `json:"brief,omitempty"`
	Description string   `json:"description,omitempty"`
	Authors     []string `json:"authors,omitempty"`
}

// Function is a documented free function.
type Function struct {
	Meta
	Location
	Name        string   `json:"name"`
	Params      []Param  `json:"params,omitempty"`
	Return      *Return  `json:"return,omitempty"`
	Brief       string   `json:"brief,omitempty"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	See         []string `json:"see,omitempty"`
}

// Class is a documented class. Params are the constructor parameters.
// Methods and Properties are filled in after all blocks are assembled.
type Class struct {
	Meta
	Location
	Name        string      `json:"name"`
	Params      []Param     `json:"params,omitempty"`
	Extends     string      `json:"extends,omitempty"`
	Brief       string      `json:"brief,omitempty"`
	Description string      `json:"description,omitempty"`
	Examples    []string    `json:"examples,omitempty"`
	See         []string    `json:"see,omitempty"`
	Events      []Event     `json:"events,omitempty"`
	Methods     []*Method   `json:"methods,omitempty"`
	Properties  []*Property `json:"properties,omitempty"`
}

// Method is a documented method. ClassName comes from its @memberof, or else
// from the class documented last before it.
type Method struct {
	Meta
	Location
	Name      string   `json:"name"`
	ClassName string   `json:"class"`
	Params    []Param  `json:"params,omitempty"`
	Brief     string   `json:"brief,omitempty"`
	Return    *Return  `json:"return,omitempty"`
	See       []string `json:"see,omitempty"`
}

// Property is a documented class member with a type.
type Property struct {
	Meta
	Location
	Name        string `json:"name"`
	ClassName   string `json:"class"`
	Type        string `json:"type"`
	Brief       string `json:"brief,omitempty"`
	Description string `json:"description,omitempty"`
}

// Page is a free-form page. Content is the block text after the @page tag.
type Page struct {
	Meta
	Location
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Todo is a @todo note. Entity is the primary entity of the block the note
// was found in, or nil.
type Todo struct {
	Meta
	Location
	Content string         `json:"content"`
	Block   *comment.Block `json:"-"`
	Entity  Entity         `json:"-"`
}

// ErrorReport describes a problem found in documented source. Line is 0 when
// the problem concerns a whole file.
type ErrorReport struct {
	Meta
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
}

// Error implements the error interface.
func (e *ErrorReport) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Filename, e.Message)
	}
	return fmt.Sprintf("%s:%d: %s", e.Filename, e.Line, e.Message)
}

// Name returns the name of a named entity, or "" for todos and errors.
func Name(e Entity) string {
	switch e := e.(type) {
	case *Library:
		return e.Name
	case *Function:
		return e.Name
	case *Class:
		return e.Name
	case *Method:
		return e.Name
	case *Property:
		return e.Name
	case *Page:
		return e.Name
	}
	return ""
}
