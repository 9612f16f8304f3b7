// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package comment

import (
	"fmt"
	"regexp"
	"strings"
)

// Reporter receives diagnostics about malformed tags.
type Reporter interface {
	Report(filename string, line int, msg string)
}

// A lineTag describes a tag whose command fits on a single line.
type lineTag struct {
	tag   Tag
	usage string
	has   *regexp.Regexp // the tag keyword is present
	full  *regexp.Regexp // the whole line is well-formed
}

// Argument patterns.
const (
	word     = `(\S+)`
	text     = `(.+)`
	optional = `(?:\s+(.+))?`
)

func newLineTag(tag Tag, usage string, spellings string, args ...string) *lineTag {
	return &lineTag{
		tag:   tag,
		usage: usage,
		has:   regexp.MustCompile(`^@(?:` + spellings + `)(?:\s|$)`),
		full:  regexp.MustCompile(`^@(?:` + spellings + `)` + argsPattern(args) + `$`),
	}
}

func argsPattern(args []string) string {
	var sb strings.Builder
	for _, a := range args {
		if a == optional {
			sb.WriteString(a)
			continue
		}
		sb.WriteString(`\s+` + a)
	}
	return sb.String()
}

var (
	authorTag   = newLineTag(TagAuthor, "@author text", "author", text)
	briefTag    = newLineTag(TagBrief, "@brief text", "brief", text)
	classTag    = newLineTag(TagClass, "@class Name", "class", word)
	eventTag    = newLineTag(TagEvent, "@event name [text]", "event", word, optional)
	extendsTag  = newLineTag(TagExtends, "@extends ClassName", "extends", word)
	fileTag     = newLineTag(TagFile, "@file name", "file", word)
	functionTag = newLineTag(TagFunction, "@function name [text]", "function|fn", word, optional)
	libraryTag  = newLineTag(TagLibrary, "@library name", "library", text)
	memberofTag = newLineTag(TagMemberof, "@memberof ClassName", "memberof|memberOf", word)
	methodTag   = newLineTag(TagMethod, "@method name", "method", word)
	pageTag     = newLineTag(TagPage, "@page title", "page", text)
	paramTag    = newLineTag(TagParam, "@param dataType paramName [description]", "param", word, word, optional)
	propertyTag = newLineTag(TagProperty, "@property dataType name [description]", "property", word, word, optional)
	returnTag   = newLineTag(TagReturn, "@return dataType [description]", "returns|return", word, optional)
	seeTag      = newLineTag(TagSee, "@see text", "see", text)
	todoTag     = newLineTag(TagTodo, "@todo text", "todo", text)
	versionTag  = newLineTag(TagVersion, "@version text", "version", text)
)

var (
	anyTagRE       = regexp.MustCompile(`^@\w+`)
	descriptionRE  = regexp.MustCompile(`^@(?:description|desc)(?:\s+(.*))?$`)
	exampleStartRE = regexp.MustCompile(`^@example(?:\s+(.*))?$`)
	exampleEndRE   = regexp.MustCompile(`@endexample\b`)
)

const (
	descriptionUsage = "@description text"
	exampleUsage     = "@example ... @endexample"
)

// Parse runs every tag parser over b once, filling its command collections.
// Problems with individual tags are sent to r. Calling Parse again on the same
// block does nothing.
//
// Examples are parsed first because their extent is explicitly delimited and
// their content is verbatim. Single-line tags come next, and descriptions,
// which extend until the next tag, come last. The first parser to claim a
// line owns it.
func Parse(b *Block, r Reporter) {
	if b.parsed {
		return
	}
	b.parsed = true

	b.Examples = parseExamples(b, r)

	b.Authors = scan(b, r, authorTag, func(b *Block, i int, m []string) *Author {
		return NewAuthor(b, i, m[0])
	})
	b.Briefs = scan(b, r, briefTag, func(b *Block, i int, m []string) *Brief {
		return NewBrief(b, i, m[0])
	})
	b.Classes = scan(b, r, classTag, func(b *Block, i int, m []string) *Class {
		return NewClass(b, i, m[0])
	})
	b.Events = scan(b, r, eventTag, func(b *Block, i int, m []string) *Event {
		return NewEvent(b, i, m[0], m[1])
	})
	b.Extends = scan(b, r, extendsTag, func(b *Block, i int, m []string) *Extends {
		return NewExtends(b, i, m[0])
	})
	b.Files = scan(b, r, fileTag, func(b *Block, i int, m []string) *File {
		return NewFile(b, i, m[0])
	})
	b.Functions = scan(b, r, functionTag, func(b *Block, i int, m []string) *Function {
		return NewFunction(b, i, m[0], m[1])
	})
	b.Libraries = scan(b, r, libraryTag, func(b *Block, i int, m []string) *Library {
		return NewLibrary(b, i, m[0])
	})
	b.Memberofs = scan(b, r, memberofTag, func(b *Block, i int, m []string) *Memberof {
		return NewMemberof(b, i, m[0])
	})
	b.Methods = scan(b, r, methodTag, func(b *Block, i int, m []string) *Method {
		return NewMethod(b, i, m[0])
	})
	b.Pages = scan(b, r, pageTag, func(b *Block, i int, m []string) *Page {
		return NewPage(b, i, m[0])
	})
	b.Params = scan(b, r, paramTag, func(b *Block, i int, m []string) *Param {
		return NewParam(b, i, m[0], m[1], m[2])
	})
	b.Properties = scan(b, r, propertyTag, func(b *Block, i int, m []string) *Property {
		return NewProperty(b, i, m[0], m[1], m[2])
	})
	b.Returns = scan(b, r, returnTag, func(b *Block, i int, m []string) *Return {
		return NewReturn(b, i, m[0], m[1])
	})
	b.Sees = scan(b, r, seeTag, func(b *Block, i int, m []string) *See {
		return NewSee(b, i, m[0])
	})
	b.Todos = scan(b, r, todoTag, func(b *Block, i int, m []string) *Todo {
		return NewTodo(b, i, m[0])
	})
	b.Versions = scan(b, r, versionTag, func(b *Block, i int, m []string) *Version {
		return NewVersion(b, i, m[0])
	})

	b.Descriptions = parseDescriptions(b, r)
}

// scan matches t against every unconsumed line of b. Submatches passed to
// build have surrounding whitespace removed; an absent optional group is "".
func scan[C Command](b *Block, r Reporter, t *lineTag, build func(*Block, int, []string) C) []C {
	var cmds []C
	for _, i := range b.Unconsumed() {
		line := strings.TrimSpace(b.lines[i])
		if !t.has.MatchString(line) {
			continue
		}
		m := t.full.FindStringSubmatch(line)
		if m == nil {
			b.malformed(r, i, string(t.tag), t.usage)
			continue
		}
		args := m[1:]
		for j := range args {
			args[j] = strings.TrimSpace(args[j])
		}
		cmds = append(cmds, build(b, i, args))
		b.Consume(i)
	}
	return cmds
}

// parseExamples finds examples running from @example to the next
// @endexample, which may follow code on the same line. Text before the end
// marker belongs to the example.
func parseExamples(b *Block, r Reporter) []*Example {
	var examples []*Example
	for i := 0; i < len(b.lines); i++ {
		if b.consumed.Has(i) {
			continue
		}
		m := exampleStartRE.FindStringSubmatch(strings.TrimSpace(b.lines[i]))
		if m == nil {
			continue
		}

		var content []string
		first, end := m[1], -1
		if loc := exampleEndRE.FindStringIndex(first); loc != nil {
			first, end = first[:loc[0]], i
		}
		if first = strings.TrimSpace(first); first != "" {
			content = append(content, first)
		}
		for j := i + 1; end < 0 && j < len(b.lines) && !b.consumed.Has(j); j++ {
			line := b.lines[j]
			if loc := exampleEndRE.FindStringIndex(line); loc != nil {
				if before := strings.TrimRight(line[:loc[0]], " \t"); strings.TrimSpace(before) != "" {
					content = append(content, before)
				}
				end = j
				break
			}
			content = append(content, line)
		}
		if end < 0 {
			b.malformed(r, i, string(TagExample), exampleUsage)
			continue
		}

		text := strings.Trim(strings.Join(content, "\n"), "\n")
		if strings.TrimSpace(text) == "" {
			b.malformed(r, i, string(TagExample), exampleUsage)
			b.reported.Add(end)
			i = end
			continue
		}

		examples = append(examples, NewExample(b, i, text))
		for j := i; j <= end; j++ {
			b.Consume(j)
		}
		i = end
	}
	return examples
}

func parseDescriptions(b *Block, r Reporter) []*Description {
	var descs []*Description
	for i := 0; i < len(b.lines); i++ {
		if b.consumed.Has(i) {
			continue
		}
		line := strings.TrimSpace(b.lines[i])
		if !anyTagRE.MatchString(line) {
			continue
		}
		m := descriptionRE.FindStringSubmatch(line)
		if m == nil {
			// Some other tag: either a malformed one already reported or an
			// unknown one left for the unparsed-line check.
			continue
		}

		var parts []string
		if m[1] != "" {
			parts = append(parts, m[1])
		}
		end := i + 1
		for ; end < len(b.lines) && !b.consumed.Has(end); end++ {
			if anyTagRE.MatchString(strings.TrimSpace(b.lines[end])) {
				break
			}
			parts = append(parts, b.lines[end])
		}

		text := strings.TrimSpace(strings.Join(parts, "\n"))
		if text == "" {
			b.malformed(r, i, string(TagDescription), descriptionUsage)
			continue
		}

		descs = append(descs, NewDescription(b, i, text))
		for j := i; j < end; j++ {
			b.Consume(j)
		}
		i = end - 1
	}
	return descs
}

// malformed reports line i as a malformed use of tag. The line is not
// consumed, but it is excluded from the unparsed-line check so it is not
// reported twice.
func (b *Block) malformed(r Reporter, i int, tag, usage string) {
	b.reported.Add(i)
	if r == nil {
		return
	}
	r.Report(b.Filename, b.GlobalLine(i), fmt.Sprintf("malformed @%s tag, expected %q: %s", tag, usage, strings.TrimSpace(b.lines[i])))
}
