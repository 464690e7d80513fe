package audio

import (
	"math"

	"ringquest/internal/apu"
)

// Track identifies a music track
type Track uint8

const (
	TrackTitle Track = iota
	TrackLevel
	TrackCredits
)

// String returns the track name
func (t Track) String() string {
	switch t {
	case TrackTitle:
		return "title"
	case TrackLevel:
		return "level"
	case TrackCredits:
		return "credits"
	default:
		return "unknown"
	}
}

// Effect identifies a sound effect
type Effect uint8

const (
	EffectStart Effect = iota
	EffectRing
)

// String returns the effect name
func (e Effect) String() string {
	switch e {
	case EffectStart:
		return "start"
	case EffectRing:
		return "ring"
	default:
		return "unknown"
	}
}

// Channels a voice can play on
const (
	Pulse1   = apu.ChannelPulse1
	Pulse2   = apu.ChannelPulse2
	Triangle = apu.ChannelTriangle
	Noise    = apu.ChannelNoise

	channelCount = 4
)

// Rest is the pitch of a silent step
const Rest = 0

// Note is one sequencer step. Pitch is a MIDI note number on the tonal
// channels and a noise period index plus one on the noise channel.
type Note struct {
	Pitch  uint8
	Frames uint8
}

// Voice is the note list for one channel
type Voice struct {
	Channel int
	Duty    uint8 // pulse duty 0-3
	Volume  uint8 // 0-15, ignored by the triangle
	Notes   []Note
}

// Song is a set of voices played together. Effects are songs too.
type Song struct {
	Name   string
	Loop   bool
	Voices []Voice
}

// Frames returns the length of the longest voice in frames
func (s Song) Frames() int {
	longest := 0
	for _, v := range s.Voices {
		total := 0
		for _, n := range v.Notes {
			total += int(max(n.Frames, 1))
		}
		longest = max(longest, total)
	}
	return longest
}

// Library holds the tracks and effects an engine can play
type Library struct {
	Songs   map[Track]Song
	Effects map[Effect]Song
}

// PulsePeriod returns the 11-bit timer period for a MIDI note on a pulse
// channel.
func PulsePeriod(pitch uint8) uint16 {
	return timerPeriod(pitch, 16)
}

// TrianglePeriod returns the timer period for a MIDI note on the triangle,
// which sounds an octave below a pulse with the same period.
func TrianglePeriod(pitch uint8) uint16 {
	return timerPeriod(pitch, 32)
}

func timerPeriod(pitch uint8, divider float64) uint16 {
	frequency := 440.0 * math.Pow(2, (float64(pitch)-69)/12)
	period := math.Round(apu.CPUFrequency/(divider*frequency)) - 1
	return uint16(min(max(period, 8), 0x7FF))
}
