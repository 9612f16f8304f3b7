// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package doc

import (
	"fmt"
	"strings"

	"go.astrophena.name/tagdoc/internal/comment"
)

// blockKind is the primary kind of a block.
type blockKind int

const (
	blockNone blockKind = iota
	blockPage
	blockClass
	blockFile
	blockLibrary
	blockFunction
	blockMethod
	blockProperty
)

// classify returns the primary kind of b. The first matching tag wins, in
// this order: page, class, file, library, function, method, property.
func classify(b *comment.Block) blockKind {
	switch {
	case len(b.Pages) > 0:
		return blockPage
	case len(b.Classes) > 0:
		return blockClass
	case len(b.Files) > 0:
		return blockFile
	case len(b.Libraries) > 0:
		return blockLibrary
	case len(b.Functions) > 0:
		return blockFunction
	case len(b.Methods) > 0:
		return blockMethod
	case len(b.Properties) > 0:
		return blockProperty
	}
	return blockNone
}

// Build assembles every block added so far into a Documentation. Blocks are
// assembled once: later calls return the same Documentation, and sources
// added after the first call are ignored.
func (b *Builder) Build() *Documentation {
	if b.doc != nil {
		return b.doc
	}
	d := new(Documentation)
	b.doc = d

	// lastClass is the most recently assembled class, used by methods and
	// properties that don't name their class.
	var lastClass *Class
	for _, blk := range b.blocks {
		lastClass = b.assemble(d, blk, lastClass)
	}

	d.Rebuild()
	b.attachMembers(d)

	d.Errors = append([]*ErrorReport(nil), b.errors...)
	return d
}

func (b *Builder) assemble(d *Documentation, blk *comment.Block, lastClass *Class) *Class {
	var primary Entity

	switch classify(blk) {
	case blockPage:
		primary = b.page(d, blk)
	case blockClass:
		if c := b.class(d, blk); c != nil {
			primary, lastClass = c, c
		}
	case blockFile:
		// File blocks describe the file itself and produce nothing.
	case blockLibrary:
		primary = b.library(d, blk)
	case blockFunction:
		primary = b.function(d, blk)
	case blockMethod:
		if m := b.method(d, blk, lastClass); m != nil {
			primary = m
		}
	case blockProperty:
		if p := b.property(d, blk, lastClass); p != nil {
			primary = p
		}
	}

	for _, cmd := range blk.Todos {
		t := &Todo{
			Meta:     b.meta(KindTodo),
			Location: location(cmd),
			Content:  cmd.Text,
			Block:    blk,
		}
		t.Entity = primary
		d.Todos = append(d.Todos, t)
	}

	b.checkUnparsed(blk)
	return lastClass
}

func location(cmd comment.Command) Location {
	blk := cmd.Block()
	return Location{Filename: blk.Filename, Line: blk.GlobalLine(cmd.Line())}
}

func (b *Builder) page(d *Documentation, blk *comment.Block) *Page {
	cmd := blk.Pages[0]
	p := &Page{
		Meta:     b.meta(KindPage),
		Location: location(cmd),
		Name:     cmd.Title,
		Content:  strings.Trim(blk.ConsumeRest(), "\n"),
	}
	d.pages = append(d.pages, p)
	return p
}

func (b *Builder) class(d *Documentation, blk *comment.Block) *Class {
	cmd := blk.Classes[0]
	if len(blk.Returns) > 0 {
		b.reportf(blk, blk.Returns[0].Line(), "class %q cannot have a @return", cmd.Name)
		return nil
	}
	var extends string
	if len(blk.Extends) > 0 {
		extends = blk.Extends[0].ClassName
		if extends == cmd.Name {
			b.reportf(blk, blk.Extends[0].Line(), "class %q cannot extend itself", cmd.Name)
			return nil
		}
	}
	if !b.classNames.Add(cmd.Name) {
		b.reportf(blk, cmd.Line(), "class %q is defined more than once, the last definition wins", cmd.Name)
	}

	c := &Class{
		Meta:        b.meta(KindClass),
		Location:    location(cmd),
		Name:        cmd.Name,
		Params:      params(blk),
		Extends:     extends,
		Brief:       brief(blk),
		Description: description(blk),
		Examples:    examples(blk),
		See:         sees(blk),
	}
	for _, e := range blk.Events {
		c.Events = append(c.Events, Event{Name: e.Name, Description: e.Text})
	}
	d.classes = append(d.classes, c)
	return c
}

func (b *Builder) library(d *Documentation, blk *comment.Block) *Library {
	cmd := blk.Libraries[0]
	if d.Library != nil {
		b.reportf(blk, cmd.Line(), "library %q replaces previously defined library %q", cmd.Name, d.Library.Name)
	}
	l := &Library{
		Meta:        b.meta(KindLibrary),
		Location:    location(cmd),
		Name:        cmd.Name,
		Brief:       brief(blk),
		Description: description(blk),
	}
	if len(blk.Versions) > 0 {
		l.Version = blk.Versions[0].Text
	}
	for _, a := range blk.Authors {
		l.Authors = append(l.Authors, a.Text)
	}
	d.Library = l
	return l
}

func (b *Builder) function(d *Documentation, blk *comment.Block) *Function {
	cmd := blk.Functions[0]
	f := &Function{
		Meta:        b.meta(KindFunction),
		Location:    location(cmd),
		Name:        cmd.Name,
		Params:      params(blk),
		Return:      ret(blk),
		Brief:       brief(blk),
		Description: description(blk),
		Examples:    examples(blk),
		See:         sees(blk),
	}
	if f.Description == "" {
		f.Description = cmd.Text
	}
	d.functions = append(d.functions, f)
	return f
}

// memberOf returns the class a method or property belongs to: the first
// @memberof of blk, or else lastClass.
func memberOf(blk *comment.Block, lastClass *Class) (name string, count int) {
	if len(blk.Memberofs) > 0 {
		return blk.Memberofs[0].ClassName, len(blk.Memberofs)
	}
	if lastClass != nil {
		return lastClass.Name, 1
	}
	return "", 0
}

func (b *Builder) method(d *Documentation, blk *comment.Block, lastClass *Class) *Method {
	cmd := blk.Methods[0]
	className, n := memberOf(blk, lastClass)
	if n == 0 {
		b.reportf(blk, cmd.Line(), "method %q has no @memberof and no class precedes it", cmd.Name)
		return nil
	}
	m := &Method{
		Meta:      b.meta(KindMethod),
		Location:  location(cmd),
		Name:      cmd.Name,
		ClassName: className,
		Params:    params(blk),
		Brief:     brief(blk),
		Return:    ret(blk),
		See:       sees(blk),
	}
	d.Methods = append(d.Methods, m)
	return m
}

func (b *Builder) property(d *Documentation, blk *comment.Block, lastClass *Class) *Property {
	cmd := blk.Properties[0]
	className, n := memberOf(blk, lastClass)
	if n != 1 {
		b.reportf(blk, cmd.Line(), "property %q: expected exactly 1 @memberof, got %d", cmd.Name, n)
		return nil
	}
	p := &Property{
		Meta:        b.meta(KindProperty),
		Location:    location(cmd),
		Name:        cmd.Name,
		ClassName:   className,
		Type:        cmd.Type,
		Brief:       brief(blk),
		Description: cmd.Text,
	}
	if p.Description == "" {
		p.Description = description(blk)
	}
	d.Properties = append(d.Properties, p)
	return p
}

// attachMembers adds methods and properties to their classes. It must run
// after the index is rebuilt.
func (b *Builder) attachMembers(d *Documentation) {
	for _, m := range d.Methods {
		c, ok := d.Class(m.ClassName)
		if !ok {
			b.Report(m.Filename, m.Line, fmt.Sprintf("class %q not found for method %q", m.ClassName, m.Name))
			continue
		}
		c.Methods = append(c.Methods, m)
	}
	for _, p := range d.Properties {
		c, ok := d.Class(p.ClassName)
		if !ok {
			b.Report(p.Filename, p.Line, fmt.Sprintf("class %q not found for property %q", p.ClassName, p.Name))
			continue
		}
		c.Properties = append(c.Properties, p)
	}
}

// checkUnparsed reports every line of blk that no parser claimed, as a single
// error located at the first such line.
func (b *Builder) checkUnparsed(blk *comment.Block) {
	lines := blk.Unparsed()
	if len(lines) == 0 {
		return
	}
	var sb strings.Builder
	sb.WriteString("unparsed lines in comment block:")
	for _, l := range lines {
		fmt.Fprintf(&sb, "\n%d: %s", l.Line, l.Text)
	}
	b.Report(blk.Filename, lines[0].Line, sb.String())
}

func params(blk *comment.Block) []Param {
	var ps []Param
	for _, p := range blk.Params {
		ps = append(ps, Param{Type: p.Type, Name: p.Name, Description: p.Text})
	}
	return ps
}

func ret(blk *comment.Block) *Return {
	if len(blk.Returns) == 0 {
		return nil
	}
	r := blk.Returns[0]
	return &Return{Type: r.Type, Description: r.Text}
}

func brief(blk *comment.Block) string {
	if len(blk.Briefs) == 0 {
		return ""
	}
	return blk.Briefs[0].Text
}

func description(blk *comment.Block) string {
	var parts []string
	for _, d := range blk.Descriptions {
		parts = append(parts, d.Text)
	}
	return strings.Join(parts, "\n\n")
}

func examples(blk *comment.Block) []string {
	var ex []string
	for _, e := range blk.Examples {
		ex = append(ex, e.Text)
	}
	return ex
}

func sees(blk *comment.Block) []string {
	var s []string
	for _, see := range blk.Sees {
		s = append(s, see.Text)
	}
	return s
}
