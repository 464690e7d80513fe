package rle

import (
	"fmt"
	"log"
)

// BlockWriter receives decoded bytes; the PPU implements it
type BlockWriter interface {
	WriteBlock(address uint16, data []byte)
}

// Loader decompresses backgrounds straight into a block writer
type Loader struct {
	display      BlockWriter
	base         uint16
	loads        int
	debugEnabled bool
}

// NewLoader creates a loader targeting the first nametable at $2000
func NewLoader(display BlockWriter) *Loader {
	return &Loader{display: display, base: 0x2000}
}

// EnableDebug enables or disables loader logging
func (l *Loader) EnableDebug(enabled bool) {
	l.debugEnabled = enabled
}

// LoadBackground decodes blob and writes it from the nametable base.
// Nothing is written when the blob is corrupt.
func (l *Loader) LoadBackground(blob []byte) error {
	data, err := Decode(blob)
	if err != nil {
		return fmt.Errorf("failed to decode background: %w", err)
	}

	l.display.WriteBlock(l.base, data)
	l.loads++

	if l.debugEnabled {
		log.Printf("[PPU] Background %d: %d bytes from %d compressed", l.loads, len(data), len(blob))
	}
	return nil
}

// Loads returns the number of backgrounds written
func (l *Loader) Loads() int {
	return l.loads
}
