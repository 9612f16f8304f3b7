// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package load

import (
	"fmt"

	"golang.org/x/tools/txtar"
)

// Txtar returns a Loader that serves the files of a txtar archive through
// [FS]. Names not in the archive fail with [fs.ErrNotExist]. It fails if a
// file name in the archive is not a valid path.
func Txtar(ar *txtar.Archive) (Loader, error) {
	fsys, err := txtar.FS(ar)
	if err != nil {
		return nil, err
	}
	return FS(fsys), nil
}

// TxtarFile parses the txtar archive at path and returns a Loader for it
// together with the names of its files, in archive order.
func TxtarFile(path string) (Loader, []string, error) {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	l, err := Txtar(ar)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	names := make([]string, 0, len(ar.Files))
	for _, f := range ar.Files {
		names = append(names, f.Name)
	}
	return l, names, nil
}
