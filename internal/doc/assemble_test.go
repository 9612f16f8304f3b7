// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package doc

import (
	"errors"
	"testing"

	"go.astrophena.name/tagdoc/internal/testutil"
)

func build(t *testing.T, src string) *Documentation {
	t.Helper()
	return Build([]Source{{Name: "a.js", Text: src}})
}

func errorStrings(d *Documentation) []string {
	var s []string
	for _, e := range d.Errors {
		s = append(s, e.Error())
	}
	return s
}

func TestEndToEnd(t *testing.T) {
	d := build(t, `/**
 * @library Foo
 * @version 1.0
 */

/**
 * @class Bar
 * @param string name
 */
function Bar(name) {}

/**
 * @method baz
 */
Bar.prototype.baz = function() {};
`)

	testutil.AssertEqual(t, errorStrings(d), []string(nil))
	testutil.AssertEqual(t, d.Library.Name, "Foo")
	testutil.AssertEqual(t, d.Library.Version, "1.0")
	testutil.AssertEqual(t, len(d.Classes()), 1)
	bar := d.Classes()[0]
	testutil.AssertEqual(t, bar.Params, []Param{{Type: "string", Name: "name"}})
	testutil.AssertEqual(t, len(bar.Methods), 1)
	testutil.AssertEqual(t, bar.Methods[0].Name, "baz")
	testutil.AssertEqual(t, bar.Methods[0].ClassName, "Bar")
	testutil.AssertEqual(t, bar.Location, Location{Filename: "a.js", Line: 7})
}

func TestStructuralErrors(t *testing.T) {
	cases := map[string]struct {
		src         string
		wantErrors  []string
		wantClasses int
	}{
		"class with return": {
			src:        "/**\n * @class Foo\n * @return string\n */",
			wantErrors: []string{`a.js:3: class "Foo" cannot have a @return`},
		},
		"class extends itself": {
			src:        "/**\n * @class Foo\n * @extends Foo\n */",
			wantErrors: []string{`a.js:3: class "Foo" cannot extend itself`},
		},
		"duplicate class": {
			src:         "/** @class Foo */\n/** @class Foo */",
			wantErrors:  []string{`a.js:2: class "Foo" is defined more than once, the last definition wins`},
			wantClasses: 2,
		},
		"duplicate library": {
			src:        "/** @library A */\n/** @library B */",
			wantErrors: []string{`a.js:2: library "B" replaces previously defined library "A"`},
		},
		"method without class": {
			src:        "/** @method run */",
			wantErrors: []string{`a.js:1: method "run" has no @memberof and no class precedes it`},
		},
		"method of unknown class": {
			src:        "/**\n * @method run\n * @memberof Nope\n */",
			wantErrors: []string{`a.js:2: class "Nope" not found for method "run"`},
		},
		"property without class": {
			src:        "/** @property string name */",
			wantErrors: []string{`a.js:1: property "name": expected exactly 1 @memberof, got 0`},
		},
		"property with two memberofs": {
			src:         "/** @class A */\n/**\n * @property string name\n * @memberof A\n * @memberof B\n */",
			wantErrors:  []string{`a.js:3: property "name": expected exactly 1 @memberof, got 2`},
			wantClasses: 1,
		},
		"property of unknown class": {
			src:        "/**\n * @property string name\n * @memberof Nope\n */",
			wantErrors: []string{`a.js:2: class "Nope" not found for property "name"`},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			d := build(t, tc.src)
			testutil.AssertEqual(t, errorStrings(d), tc.wantErrors)
			testutil.AssertEqual(t, len(d.classes), tc.wantClasses)
		})
	}
}

func TestDuplicateLibraryLastWins(t *testing.T) {
	d := build(t, "/** @library A */\n/** @library B */")
	testutil.AssertEqual(t, d.Library.Name, "B")
}

func TestDuplicateClassListedOnce(t *testing.T) {
	d := build(t, `/**
 * @class Foo
 * @brief First.
 */
/**
 * @class Foo
 * @brief Second.
 */
/** @method run */
`)
	classes := d.Classes()
	testutil.AssertEqual(t, len(classes), 1)
	testutil.AssertEqual(t, classes[0].Brief, "Second.")
	testutil.AssertEqual(t, len(classes[0].Methods), 1)
	c, ok := d.Class("Foo")
	if !ok || c != classes[0] {
		t.Fatal("Class must return the listed definition")
	}
}

func TestMemberFallback(t *testing.T) {
	d := build(t, `/** @class Baz */
/** @method first */
/**
 * @property number size
 * @brief How big it is.
 */
/** @class Qux */
/** @method second */
/**
 * @method third
 * @memberof Baz
 */
`)
	testutil.AssertEqual(t, errorStrings(d), []string(nil))

	baz, ok := d.Class("Baz")
	if !ok {
		t.Fatal("class Baz not found")
	}
	var methods []string
	for _, m := range baz.Methods {
		methods = append(methods, m.Name)
	}
	testutil.AssertEqual(t, methods, []string{"first", "third"})
	testutil.AssertEqual(t, len(baz.Properties), 1)
	testutil.AssertEqual(t, baz.Properties[0].Brief, "How big it is.")

	qux, _ := d.Class("Qux")
	testutil.AssertEqual(t, len(qux.Methods), 1)
	testutil.AssertEqual(t, qux.Methods[0].ClassName, "Qux")
}

func TestRejectedClassIsNotFallback(t *testing.T) {
	d := build(t, `/** @class Good */
/**
 * @class Bad
 * @extends Bad
 */
/** @method run */
`)
	good, _ := d.Class("Good")
	testutil.AssertEqual(t, len(good.Methods), 1)
	if _, ok := d.Class("Bad"); ok {
		t.Error("rejected class Bad must not be indexed")
	}
}

func TestFileBlockProducesNothing(t *testing.T) {
	d := build(t, "/**\n * @file widgets.js\n * @function helper\n */")
	testutil.AssertEqual(t, errorStrings(d), []string(nil))
	testutil.AssertEqual(t, len(d.Functions()), 0)
}

func TestPage(t *testing.T) {
	d := build(t, `/**
 * @page Getting started
 *
 * Install the library.
 *
 * Then use it.
 * @todo write more
 */`)
	testutil.AssertEqual(t, errorStrings(d), []string(nil))
	testutil.AssertEqual(t, len(d.Pages()), 1)
	p := d.Pages()[0]
	testutil.AssertEqual(t, p.Name, "Getting started")
	testutil.AssertEqual(t, p.Content, "Install the library.\n\nThen use it.")
	testutil.AssertEqual(t, len(d.Todos), 1)
	testutil.AssertEqual(t, d.Todos[0].Entity, Entity(p))
}

func TestPageSkipsMalformedTags(t *testing.T) {
	d := build(t, "/**\n * @page P\n * @param string\n * body\n */")
	testutil.AssertEqual(t, errorStrings(d), []string{
		`a.js:3: malformed @param tag, expected "@param dataType paramName [description]": @param string`,
	})
	testutil.AssertEqual(t, d.Pages()[0].Content, "body")
}

func TestFunction(t *testing.T) {
	d := build(t, `/**
 * @function add Adds numbers.
 * @param number a
 * @param number b the second one
 * @returns number the sum
 * @see subtract
 * @example
 * add(1, 2);
 * @endexample
 */`)
	testutil.AssertEqual(t, errorStrings(d), []string(nil))
	want := &Function{
		Meta:     Meta{Kind: KindFunction, Seq: 1, GlobalSeq: 1},
		Location: Location{Filename: "a.js", Line: 2},
		Name:     "add",
		Params: []Param{
			{Type: "number", Name: "a"},
			{Type: "number", Name: "b", Description: "the second one"},
		},
		Return:      &Return{Type: "number", Description: "the sum"},
		Description: "Adds numbers.",
		Examples:    []string{"add(1, 2);"},
		See:         []string{"subtract"},
	}
	testutil.AssertEqual(t, d.Functions(), []*Function{want})
}

func TestTodos(t *testing.T) {
	d := build(t, `/**
 * @function f
 * @todo one
 * @todo two
 */
/** @todo loose */`)
	testutil.AssertEqual(t, len(d.Todos), 3)
	f := d.Functions()[0]
	testutil.AssertEqual(t, d.Todos[0].Entity, Entity(f))
	testutil.AssertEqual(t, d.Todos[1].Content, "two")
	if d.Todos[2].Entity != nil {
		t.Errorf("todo in a block without a primary entity must not be linked, got %v", d.Todos[2].Entity)
	}
	testutil.AssertEqual(t, d.Todos[2].Location, Location{Filename: "a.js", Line: 6})
}

func TestUnparsedLinesReportedOnce(t *testing.T) {
	d := build(t, `/**
 * @function f
 * some stray prose
 * @param string
 *
 * more prose
 */`)
	testutil.AssertEqual(t, errorStrings(d), []string{
		`a.js:4: malformed @param tag, expected "@param dataType paramName [description]": @param string`,
		"a.js:3: unparsed lines in comment block:\n3: some stray prose\n6: more prose",
	})
}

func TestSequenceIDs(t *testing.T) {
	d := build(t, `/** @class A */
/** @class B */
/** @function f */
/** @todo t */`)
	var got []Meta
	for _, c := range d.classes {
		got = append(got, c.Meta)
	}
	got = append(got, d.functions[0].Meta, d.Todos[0].Meta)
	testutil.AssertEqual(t, got, []Meta{
		{Kind: KindClass, Seq: 1, GlobalSeq: 1},
		{Kind: KindClass, Seq: 2, GlobalSeq: 2},
		{Kind: KindFunction, Seq: 1, GlobalSeq: 3},
		{Kind: KindTodo, Seq: 1, GlobalSeq: 4},
	})

	// Runs don't share counters.
	d2 := build(t, "/** @class A */")
	testutil.AssertEqual(t, d2.classes[0].Meta, Meta{Kind: KindClass, Seq: 1, GlobalSeq: 1})
}

func TestLoadError(t *testing.T) {
	d := Build([]Source{
		{Name: "missing.js", Err: errors.New("404 Not Found")},
		{Name: "b.js", Text: "/** @function f */"},
	})
	testutil.AssertEqual(t, errorStrings(d), []string{"missing.js: cannot load: 404 Not Found"})
	testutil.AssertEqual(t, len(d.Functions()), 1)
}

func TestBuildTwice(t *testing.T) {
	b := NewBuilder()
	b.AddSource("a.js", "/**\n * @page P\n * body\n */\n/** @class A */")
	d1 := b.Build()
	d2 := b.Build()
	if d1 != d2 {
		t.Fatal("Build must return the same Documentation")
	}
	testutil.AssertEqual(t, d1.Pages()[0].Content, "body")
	testutil.AssertEqual(t, len(d1.Errors), 0)
}

func TestCrossFileFallback(t *testing.T) {
	d := Build([]Source{
		{Name: "a.js", Text: "/** @class A */"},
		{Name: "b.js", Text: "\n\n/** @method m */"},
	})
	a, _ := d.Class("A")
	testutil.AssertEqual(t, len(a.Methods), 1)
	testutil.AssertEqual(t, a.Methods[0].Location, Location{Filename: "b.js", Line: 3})
}
