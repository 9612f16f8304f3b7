// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"testing"

	"go.astrophena.name/tagdoc/internal/testutil"
)

func TestRun(t *testing.T) {
	cases := map[string]struct {
		args     []string
		wantErr  error
		wantArgs []string
	}{
		"passes positional args": {
			args:     []string{"a.js", "b.js"},
			wantArgs: []string{"a.js", "b.js"},
		},
		"help": {
			args:    []string{"-h"},
			wantErr: flag.ErrHelp,
		},
		"version": {
			args:    []string{"-version"},
			wantErr: ErrExitVersion,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var stderr bytes.Buffer
			env := &Env{Args: tc.args, Stderr: &stderr}

			var gotArgs []string
			err := Run(WithEnv(context.Background(), env), AppFunc(func(ctx context.Context) error {
				gotArgs = GetEnv(ctx).Args
				return nil
			}))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil {
				testutil.AssertEqual(t, gotArgs, tc.wantArgs)
			}
		})
	}
}

func TestIsPrintableError(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"plain":          {errors.New("boom"), true},
		"invalid args":   {fmt.Errorf("%w: no files", ErrInvalidArgs), true},
		"help":           {flag.ErrHelp, false},
		"version exit":   {ErrExitVersion, false},
		"wrapped parser": {&unprintableError{errors.New("bad flag")}, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, isPrintableError(tc.err), tc.want)
		})
	}
}

func TestParseDocComment(t *testing.T) {
	docSrc = []byte("/*\nTagdoc renders docs.\n\n# Usage\n*/\npackage main\n")
	defer func() { docSrc = nil }()
	testutil.AssertEqual(t, parseDocComment(), "Tagdoc renders docs.\n\n# Usage\n")
}

func TestEnvLogf(t *testing.T) {
	var stderr bytes.Buffer
	env := &Env{Stderr: &stderr}
	env.Logf("loaded %d files", 3)
	testutil.AssertEqual(t, stderr.String(), "loaded 3 files\n")
}
