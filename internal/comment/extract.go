// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package comment

import (
	"regexp"
	"strings"
)

var (
	// Either a /** ... */ block or a single /// line. "/**/" is an ordinary
	// empty comment and is skipped.
	blockRE = regexp.MustCompile(`(?s)/\*\*(?:[^/].*?)?\*/|///[^\n]*`)

	closeRE        = regexp.MustCompile(`\s*\*/$`)
	leadingSpaceRE = regexp.MustCompile(`^\s*`)
	continuationRE = regexp.MustCompile(`(?m)^[ \t]*\* ?`)
)

// Extractor finds documentation comments in source text. Block IDs keep
// increasing across calls, so one Extractor should be used per run.
//
// The zero value is ready to use.
type Extractor struct {
	nextID int
}

// Extract returns the blocks of text in file order. Text without any
// documentation comments yields no blocks.
func (e *Extractor) Extract(filename, text string) []*Block {
	var (
		blocks []*Block
		line   = 1
		last   int
	)
	for _, loc := range blockRE.FindAllStringIndex(text, -1) {
		line += strings.Count(text[last:loc[0]], "\n")
		last = loc[0]

		raw := text[loc[0]:loc[1]]
		cleaned, rawDiff := clean(raw)

		e.nextID++
		blocks = append(blocks, NewBlock(e.nextID, filename, raw, cleaned, line, rawDiff))
	}
	return blocks
}

func clean(raw string) (text string, rawDiff int) {
	var body string
	if strings.HasPrefix(raw, "///") {
		body = strings.TrimPrefix(raw, "///")
	} else {
		body = closeRE.ReplaceAllString(strings.TrimPrefix(raw, "/**"), "")
	}

	lead := leadingSpaceRE.FindString(body)
	rawDiff = strings.Count(lead, "\n")
	body = continuationRE.ReplaceAllString(body[len(lead):], "")

	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n"), rawDiff
}
