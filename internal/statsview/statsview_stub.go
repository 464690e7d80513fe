//go:build !statsview
// +build !statsview

package statsview

import (
	"errors"
	"io"
)

// DefaultAddress is used when Launch is given an empty address
const DefaultAddress = "localhost:12600"

// ErrUnavailable is returned by Launch in builds without the statsview tag
var ErrUnavailable = errors.New("statsview not compiled in; build with -tags statsview")

// Launch does nothing in builds without the statsview tag
func Launch(io.Writer, string) error {
	return ErrUnavailable
}

// Available reports whether the stats server was compiled in
func Available() bool {
	return false
}
