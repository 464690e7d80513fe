//go:build headless
// +build headless

package audio

import "fmt"

// Player stub for headless builds
type Player struct {
	*Stream
}

// NewPlayer is not available in headless builds
func NewPlayer(sampleRate int, volume float64) (*Player, error) {
	return nil, fmt.Errorf("audio output not available in headless build")
}
