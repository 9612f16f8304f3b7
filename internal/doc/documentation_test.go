// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package doc

import (
	"testing"

	"go.astrophena.name/tagdoc/internal/testutil"
)

func TestSortedViews(t *testing.T) {
	d := build(t, `/** @class beta */
/** @class Alpha */
/** @class alpha */
/** @function zed */
/** @function Zed */
/** @page b */
/** @page a */`)

	var classes, functions, pages []string
	for _, c := range d.Classes() {
		classes = append(classes, c.Name)
	}
	for _, f := range d.Functions() {
		functions = append(functions, f.Name)
	}
	for _, p := range d.Pages() {
		pages = append(pages, p.Name)
	}
	testutil.AssertEqual(t, classes, []string{"Alpha", "alpha", "beta"})
	testutil.AssertEqual(t, functions, []string{"Zed", "zed"})
	testutil.AssertEqual(t, pages, []string{"a", "b"})

	// Declaration order is kept internally.
	testutil.AssertEqual(t, d.classes[0].Name, "beta")
}

func TestLookup(t *testing.T) {
	d := build(t, `/** @function Widget */
/** @page Intro */
/** @class Widget */
/** @function helper */`)

	cases := map[string]struct {
		name     string
		wantKind Kind
		wantOK   bool
	}{
		"class wins over function": {name: "Widget", wantKind: KindClass, wantOK: true},
		"page":                     {name: "Intro", wantKind: KindPage, wantOK: true},
		"function":                 {name: "helper", wantKind: KindFunction, wantOK: true},
		"missing":                  {name: "nope"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e, ok := d.Lookup(tc.name)
			testutil.AssertEqual(t, ok, tc.wantOK)
			if !ok {
				return
			}
			testutil.AssertEqual(t, e.Metadata().Kind, tc.wantKind)
			testutil.AssertEqual(t, Name(e), tc.name)
		})
	}
}

func TestClassMiss(t *testing.T) {
	d := new(Documentation)
	c, ok := d.Class("Nope")
	if ok || c != nil {
		t.Errorf("Class(%q) = %v, %v; want nil, false", "Nope", c, ok)
	}
}

func TestRebuildIdempotent(t *testing.T) {
	d := build(t, "/** @class B */\n/** @class A */")
	first := d.Classes()
	d.Rebuild()
	d.Rebuild()
	testutil.AssertEqual(t, d.Classes(), first)
}

func TestInheritanceList(t *testing.T) {
	d := build(t, `/** @class A */
/**
 * @class B
 * @extends A
 */
/**
 * @class C
 * @extends B
 */
/**
 * @class Orphan
 * @extends Missing
 */
/**
 * @class X
 * @extends Y
 */
/**
 * @class Y
 * @extends X
 */`)

	cases := map[string]struct {
		class string
		want  []string
	}{
		"root":           {class: "A", want: []string{"A"}},
		"one level":      {class: "B", want: []string{"B", "A"}},
		"two levels":     {class: "C", want: []string{"C", "B", "A"}},
		"unknown parent": {class: "Orphan", want: []string{"Orphan", "Missing"}},
		"cycle":          {class: "X", want: []string{"X", "Y"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, ok := d.Class(tc.class)
			if !ok {
				t.Fatalf("class %q not found", tc.class)
			}
			got := d.InheritanceList(c)
			if len(got) > len(d.classes)+1 {
				t.Fatalf("inheritance list too long: %v", got)
			}
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}
