// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clitest runs table tests against command-line applications built
// with package cli.
package clitest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"go.astrophena.name/tagdoc/internal/cli"
)

// Case is a single run of an application.
type Case[App cli.App] struct {
	// Args are the command-line arguments.
	Args []string
	// Stdin is the standard input. It's empty when nil.
	Stdin io.Reader
	// Env holds the environment variables visible through the
	// environment's Getenv.
	Env map[string]string

	// WantErr is the error the run must fail with, checked with errors.Is.
	WantErr error
	// WantErrType is a value of the error type the run must fail with,
	// checked with errors.As.
	WantErrType error

	// WantNothingPrinted requires both stdout and stderr to stay empty.
	WantNothingPrinted bool
	// WantInStdout must be a substring of stdout.
	WantInStdout string
	// WantNotInStdout must not be a substring of stdout.
	WantNotInStdout string
	// WantInStderr must be a substring of stderr.
	WantInStderr string

	// CheckFunc, if set, runs after all other checks pass.
	CheckFunc func(*testing.T, App)
}

// Run runs every case in parallel, each on an application returned by setup.
func Run[App cli.App](t *testing.T, setup func(*testing.T) App, cases map[string]Case[App]) {
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			app := setup(t)

			stdin := tc.Stdin
			if stdin == nil {
				stdin = strings.NewReader("")
			}
			var stdout, stderr bytes.Buffer
			env := &cli.Env{
				Args:   tc.Args,
				Getenv: getenvFunc(tc.Env),
				Stdin:  stdin,
				Stdout: &stdout,
				Stderr: &stderr,
			}

			err := cli.Run(cli.WithEnv(context.Background(), env), app)
			checkErr(t, err, tc.WantErr, tc.WantErrType, stderr.String())

			out, errOut := stdout.String(), stderr.String()
			if tc.WantNothingPrinted && (out != "" || errOut != "") {
				t.Errorf("nothing must be printed, got stdout %q and stderr %q", out, errOut)
			}
			if tc.WantInStdout != "" && !strings.Contains(out, tc.WantInStdout) {
				t.Errorf("stdout must contain %q, got: %q", tc.WantInStdout, out)
			}
			if tc.WantNotInStdout != "" && strings.Contains(out, tc.WantNotInStdout) {
				t.Errorf("stdout must not contain %q, got: %q", tc.WantNotInStdout, out)
			}
			if tc.WantInStderr != "" && !strings.Contains(errOut, tc.WantInStderr) {
				t.Errorf("stderr must contain %q, got: %q", tc.WantInStderr, errOut)
			}

			if tc.CheckFunc != nil && !t.Failed() {
				tc.CheckFunc(t, app)
			}
		})
	}
}

func checkErr(t *testing.T, err, want, wantType error, stderr string) {
	t.Helper()

	if err == nil {
		switch {
		case want != nil:
			t.Fatalf("must fail with error: %v", want)
		case wantType != nil:
			t.Fatalf("must fail with error type %T", wantType)
		}
		return
	}
	if want == nil && wantType == nil {
		t.Fatalf("unexpected error: %v\nstderr:\n%s", err, stderr)
	}

	if want != nil && !errors.Is(err, want) {
		t.Fatalf("want error %v, got %v", want, err)
	}
	if wantType != nil {
		target := reflect.New(reflect.TypeOf(wantType))
		if !errors.As(err, target.Interface()) {
			t.Fatalf("want error type %T, got %T", wantType, err)
		}
	}
}

func getenvFunc(env map[string]string) func(string) string {
	return func(name string) string { return env[name] }
}
