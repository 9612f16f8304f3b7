// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package doc

import (
	"fmt"

	"go.astrophena.name/tagdoc/internal/comment"
	"go.astrophena.name/tagdoc/internal/util/set"
)

// Builder collects the blocks of one documentation run and assembles them.
// It owns every sequence counter of the run, so separate runs never share
// state.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	extractor comment.Extractor
	blocks    []*comment.Block
	errors    []*ErrorReport

	global int
	seq    map[Kind]int

	classNames set.Set[string]
	doc        *Documentation
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		seq:        make(map[Kind]int),
		classNames: set.New[string](0),
	}
}

// AddSource extracts and parses the documentation comments of one file.
// Sources must be added in the order their blocks should be assembled.
func (b *Builder) AddSource(filename, text string) {
	for _, blk := range b.extractor.Extract(filename, text) {
		comment.Parse(blk, b)
		b.blocks = append(b.blocks, blk)
	}
}

// AddLoadError records that a source could not be retrieved.
func (b *Builder) AddLoadError(filename string, err error) {
	b.Report(filename, 0, "cannot load: "+err.Error())
}

// Report implements [comment.Reporter].
func (b *Builder) Report(filename string, line int, msg string) {
	b.errors = append(b.errors, &ErrorReport{
		Meta:     b.meta(KindError),
		Filename: filename,
		Line:     line,
		Message:  msg,
	})
}

func (b *Builder) reportf(blk *comment.Block, line int, format string, args ...any) {
	b.Report(blk.Filename, blk.GlobalLine(line), fmt.Sprintf(format, args...))
}

func (b *Builder) meta(k Kind) Meta {
	b.global++
	b.seq[k]++
	return Meta{Kind: k, Seq: b.seq[k], GlobalSeq: b.global}
}

// Source is the text of one loaded file, or the error that prevented
// loading it.
type Source struct {
	Name string
	Text string
	Err  error
}

// Build runs a whole documentation pass over sources, in order.
func Build(sources []Source) *Documentation {
	b := NewBuilder()
	for _, src := range sources {
		if src.Err != nil {
			b.AddLoadError(src.Name, src.Err)
			continue
		}
		b.AddSource(src.Name, src.Text)
	}
	return b.Build()
}
