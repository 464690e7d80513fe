//go:build !headless
// +build !headless

package audio

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Player streams samples to the system audio device through ebiten
type Player struct {
	*Stream
	player *audio.Player
}

// NewPlayer opens the audio device at sampleRate and starts playback
func NewPlayer(sampleRate int, volume float64) (*Player, error) {
	context := audio.CurrentContext()
	if context == nil {
		context = audio.NewContext(sampleRate)
	}
	if context.SampleRate() != sampleRate {
		return nil, fmt.Errorf("audio context already running at %d Hz", context.SampleRate())
	}

	// A quarter second of slack between the game loop and the device
	stream := NewStream(sampleRate / 4)
	player, err := context.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player: %w", err)
	}
	player.SetVolume(volume)
	player.Play()

	return &Player{Stream: stream, player: player}, nil
}

// Close stops playback
func (p *Player) Close() error {
	p.Stream.Close()
	return p.player.Close()
}
