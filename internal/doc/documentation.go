// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package doc

import (
	"slices"
	"strings"
)

// Documentation is everything assembled from one run.
type Documentation struct {
	Library    *Library
	Methods    []*Method
	Properties []*Property
	Todos      []*Todo
	Errors     []*ErrorReport

	// Kept in declaration order; exposed sorted.
	pages     []*Page
	classes   []*Class
	functions []*Function

	sortedPages     []*Page
	sortedClasses   []*Class
	sortedFunctions []*Function

	classByName map[string]*Class
	byName      map[string]Entity
}

// Pages returns pages sorted by name.
func (d *Documentation) Pages() []*Page {
	d.ensureIndex()
	return d.sortedPages
}

// Classes returns classes sorted by name. A class defined more than once is
// listed once, with its last definition.
func (d *Documentation) Classes() []*Class {
	d.ensureIndex()
	return d.sortedClasses
}

// Functions returns functions sorted by name.
func (d *Documentation) Functions() []*Function {
	d.ensureIndex()
	return d.sortedFunctions
}

func (d *Documentation) ensureIndex() {
	if d.classByName == nil {
		d.Rebuild()
	}
}

// Rebuild recomputes the sorted views and the name indexes. It is safe to
// call any number of times.
func (d *Documentation) Rebuild() {
	d.classByName = make(map[string]*Class, len(d.classes))
	d.byName = make(map[string]Entity, len(d.pages)+len(d.functions)+len(d.classes))
	for _, p := range d.pages {
		d.byName[p.Name] = p
	}
	for _, f := range d.functions {
		d.byName[f.Name] = f
	}
	// Classes last, so they win name collisions. Later definitions replace
	// earlier ones.
	for _, c := range d.classes {
		d.classByName[c.Name] = c
		d.byName[c.Name] = c
	}

	d.sortedPages = sortByName(d.pages, func(p *Page) string { return p.Name })
	defined := slices.DeleteFunc(slices.Clone(d.classes), func(c *Class) bool {
		return d.classByName[c.Name] != c
	})
	d.sortedClasses = sortByName(defined, func(c *Class) string { return c.Name })
	d.sortedFunctions = sortByName(d.functions, func(f *Function) string { return f.Name })
}

func sortByName[T any](s []T, name func(T) string) []T {
	sorted := slices.Clone(s)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return strings.Compare(name(a), name(b))
	})
	return sorted
}

// Class returns the class with the given name.
func (d *Documentation) Class(name string) (*Class, bool) {
	d.ensureIndex()
	c, ok := d.classByName[name]
	return c, ok
}

// Lookup returns the page, function or class with the given name. When a
// class shares its name with a page or function, the class is returned.
func (d *Documentation) Lookup(name string) (Entity, bool) {
	d.ensureIndex()
	e, ok := d.byName[name]
	return e, ok
}

// InheritanceList returns the name of c followed by the names of its
// ancestors, nearest first. The last name may belong to a class that is not
// documented. The list stops before any name that already appears in it.
func (d *Documentation) InheritanceList(c *Class) []string {
	list := []string{c.Name}
	seen := map[string]bool{c.Name: true}
	for next := c.Extends; next != "" && !seen[next]; {
		list = append(list, next)
		seen[next] = true
		parent, ok := d.Class(next)
		if !ok {
			break
		}
		next = parent.Extends
	}
	return list
}
