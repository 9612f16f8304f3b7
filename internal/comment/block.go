// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package comment

import (
	"strings"

	"go.astrophena.name/tagdoc/internal/util/set"
)

// Block is one documentation comment extracted from a source file, together
// with the commands parsed out of it.
//
// Lines are addressed by their local index in the cleaned text. A line marked
// consumed by a tag parser stays consumed.
type Block struct {
	ID        int
	Filename  string
	Raw       string // matched text, delimiters included
	Text      string // delimiters and continuation markers stripped
	StartLine int    // 1-based line of the opening delimiter
	RawDiff   int    // newlines in Raw preceding the start of Text

	lines    []string
	consumed set.Set[int]
	reported set.Set[int]
	parsed   bool

	Authors      []*Author
	Briefs       []*Brief
	Classes      []*Class
	Descriptions []*Description
	Events       []*Event
	Examples     []*Example
	Extends      []*Extends
	Files        []*File
	Functions    []*Function
	Libraries    []*Library
	Memberofs    []*Memberof
	Methods      []*Method
	Pages        []*Page
	Params       []*Param
	Properties   []*Property
	Returns      []*Return
	Sees         []*See
	Todos        []*Todo
	Versions     []*Version
}

// NewBlock returns a Block for the cleaned text of a comment.
func NewBlock(id int, filename, raw, text string, startLine, rawDiff int) *Block {
	b := &Block{
		ID:        id,
		Filename:  filename,
		Raw:       raw,
		Text:      text,
		StartLine: startLine,
		RawDiff:   rawDiff,
		consumed:  set.New[int](0),
		reported:  set.New[int](0),
	}
	if text != "" {
		b.lines = strings.Split(text, "\n")
	}
	return b
}

// NumLines returns the number of lines in the cleaned text.
func (b *Block) NumLines() int { return len(b.lines) }

// Line returns the cleaned text of local line i.
func (b *Block) Line(i int) string { return b.lines[i] }

// GlobalLine converts a local line index into a 1-based line number in the
// file the block came from.
func (b *Block) GlobalLine(local int) int { return b.StartLine + b.RawDiff + local }

// Consume marks the given local lines as consumed.
func (b *Block) Consume(lines ...int) {
	for _, i := range lines {
		b.consumed.Add(i)
	}
}

// IsConsumed reports whether local line i was claimed by a parser.
func (b *Block) IsConsumed(i int) bool { return b.consumed.Has(i) }

// Unconsumed returns the local indices of lines nobody has claimed yet, in
// order.
func (b *Block) Unconsumed() []int {
	var idx []int
	for i := range b.lines {
		if !b.consumed.Has(i) {
			idx = append(idx, i)
		}
	}
	return idx
}

// ConsumeRest marks every remaining line as consumed and returns their text
// joined by newlines. Lines already reported as malformed tags are left out.
func (b *Block) ConsumeRest() string {
	var rest []string
	for _, i := range b.Unconsumed() {
		if b.reported.Has(i) {
			continue
		}
		rest = append(rest, b.lines[i])
		b.consumed.Add(i)
	}
	return strings.Join(rest, "\n")
}

// UnparsedLine is a line of a block that no tag parser claimed.
type UnparsedLine struct {
	Line int // 1-based line in the file
	Text string
}

// Unparsed returns lines that were neither consumed nor already reported as a
// malformed tag. Blank lines are never unparsed.
func (b *Block) Unparsed() []UnparsedLine {
	var out []UnparsedLine
	for i, line := range b.lines {
		if b.consumed.Has(i) || b.reported.Has(i) || strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, UnparsedLine{Line: b.GlobalLine(i), Text: line})
	}
	return out
}
