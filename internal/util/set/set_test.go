// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package set

import (
	"testing"

	"go.astrophena.name/tagdoc/internal/testutil"
)

func TestSet(t *testing.T) {
	s := New[int](4)

	if !s.Add(3) {
		t.Fatal("Add(3) on empty set must report an addition")
	}
	if s.Add(3) {
		t.Fatal("second Add(3) must not report an addition")
	}
	s.Add(1)
	s.Add(2)

	if !s.Has(2) || s.Has(5) {
		t.Fatalf("unexpected membership in %v", s)
	}
	testutil.AssertEqual(t, len(s), 3)
}
