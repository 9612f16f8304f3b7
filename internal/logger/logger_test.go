// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"fmt"
	"strings"
	"testing"

	"go.astrophena.name/tagdoc/internal/testutil"
)

func TestLogfWrite(t *testing.T) {
	var sb strings.Builder
	logf := Logf(func(format string, args ...any) {
		fmt.Fprintf(&sb, format, args...)
	})

	n, err := fmt.Fprint(logf, "hello")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, n, 5)
	testutil.AssertEqual(t, sb.String(), "hello")
}

func TestOrDiscard(t *testing.T) {
	var nilLogf Logf
	// Must not panic.
	nilLogf.OrDiscard()("dropped %d", 1)

	var called bool
	Logf(func(string, ...any) { called = true }).OrDiscard()("kept")
	if !called {
		t.Fatal("OrDiscard must return the original Logf when it is not nil")
	}
}
