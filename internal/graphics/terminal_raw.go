//go:build linux || darwin || freebsd || netbsd || openbsd

package graphics

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// makeRaw switches the terminal behind in to raw mode and returns a
// function restoring the previous mode.
func makeRaw(in *os.File) (func() error, error) {
	var canonical unix.Termios
	if err := termios.Tcgetattr(in.Fd(), &canonical); err != nil {
		return nil, fmt.Errorf("not a terminal: %w", err)
	}

	raw := canonical
	termios.Cfmakeraw(&raw)
	if err := termios.Tcsetattr(in.Fd(), termios.TCIFLUSH, &raw); err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	return func() error {
		return termios.Tcsetattr(in.Fd(), termios.TCIFLUSH, &canonical)
	}, nil
}
