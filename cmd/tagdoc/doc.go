// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Tagdoc generates documentation from tagged comment blocks in source files.

# Usage

	$ tagdoc [flags...] [sources...]

Sources are file paths or http and https URLs. Every documentation comment
of a source, either a block opened with /** or a line starting with ///, is
parsed for tags:

	@author text                  @memberof ClassName
	@brief text                   @method name
	@class Name                   @page title
	@description text...          @param dataType name [description]
	@event name [text]            @property dataType name [description]
	@example ... @endexample      @return dataType [description]
	@extends ClassName            @see text
	@file name                    @todo text
	@function name [description]  @version text
	@library name

Tagged blocks become documented pages, classes, functions, methods and
properties. Lines of a comment that no tag accounts for are reported as
errors, together with malformed tags and broken relations between classes
and their members. Errors never stop the run; use -strict to fail on them.

The documentation is written to stdout, or to the file given by -o, as HTML,
plain text or JSON. With -serve, tagdoc serves the HTML documentation
instead and rebuilds it from the sources on every request. The server
reports its health on /health and notifies systemd when it's ready.

# Remote sources

Sources fetched over HTTP can be kept in a cache file given by -cache, so
later runs don't fetch them again. Entries not used for -cache-ttl are
dropped. The server always caches remote sources in memory. Pass -v to log
every fetch.

# Configuration

A configuration file, given by -config or the TAGDOC_CONFIG environment
variable, is a Starlark script that sets options as globals:

	title = "Widgets"
	description = "A toolkit for widgets."
	sources = ["src/widgets.js"]
	renderer = "html"         # or "text", "json"
	loader = "auto"           # or "txtar:sources.txtar"
	show_source_url = True
	show_errors = True
	show_todos = True

	def format_source_url(filename, line):
	    return "https://example.com/src/%s#L%d" % (filename, line)

Sources given on the command line replace the configured ones. Flags
override the configuration.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/tagdoc/internal/cli"
)

//go:embed doc.go
var docComment []byte

func init() { cli.SetDocComment(docComment) }
