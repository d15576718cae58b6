// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import "fmt"

// MissingFragmentError reports an inclusion directive whose fragment file
// does not exist on disk. Path is the resolved fragment path.
type MissingFragmentError struct {
	Path string
}

func (e *MissingFragmentError) Error() string {
	return fmt.Sprintf("missing fragment: %s", e.Path)
}

// ReadError reports an I/O failure while reading the master document or a
// fragment file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
