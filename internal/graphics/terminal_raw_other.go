//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package graphics

import (
	"errors"
	"os"
)

func makeRaw(*os.File) (func() error, error) {
	return nil, errors.New("raw terminal input is not supported on this platform")
}
