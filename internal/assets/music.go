package assets

import (
	"fmt"
	"strconv"
	"strings"

	"ringquest/internal/audio"
)

var semitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// ParseMelody reads a space separated list of "pitch/frames" steps.
// Pitches are note names with an optional # or b and an octave ("C#4"),
// "N<index>" for a noise period or "R" for a rest.
func ParseMelody(text string) ([]audio.Note, error) {
	var notes []audio.Note
	for _, step := range strings.Fields(text) {
		name, frames, ok := strings.Cut(step, "/")
		if !ok {
			return nil, fmt.Errorf("step %q: missing frame count", step)
		}
		n, err := strconv.ParseUint(frames, 10, 8)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("step %q: invalid frame count", step)
		}
		pitch, err := parsePitch(name)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step, err)
		}
		notes = append(notes, audio.Note{Pitch: pitch, Frames: uint8(n)})
	}
	return notes, nil
}

func parsePitch(name string) (uint8, error) {
	switch {
	case name == "R":
		return audio.Rest, nil
	case strings.HasPrefix(name, "N"):
		index, err := strconv.ParseUint(name[1:], 10, 8)
		if err != nil || index > 15 {
			return 0, fmt.Errorf("invalid noise period %q", name)
		}
		return uint8(index) + 1, nil
	case len(name) < 2:
		return 0, fmt.Errorf("invalid pitch %q", name)
	}

	semitone, ok := semitones[name[0]]
	if !ok {
		return 0, fmt.Errorf("invalid note %q", name)
	}
	rest := name[1:]
	switch rest[0] {
	case '#':
		semitone++
		rest = rest[1:]
	case 'b':
		semitone--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil || octave < 0 || octave > 8 {
		return 0, fmt.Errorf("invalid octave in %q", name)
	}
	return uint8(12*(octave+1) + semitone), nil
}

func mustMelody(text string) []audio.Note {
	notes, err := ParseMelody(text)
	if err != nil {
		panic("assets: " + err.Error())
	}
	return notes
}

// Here Comes the Bride
const titleMelody = `
	G4/24 C5/18 C5/6 C5/48
	G4/24 D5/18 B4/6 C5/48
	G4/24 C5/18 F5/6 F5/24 E5/18 D5/6 C5/24 B4/18 C5/6 D5/48`

const titleBass = `C3/96 G2/96 F2/96 C3/48 G2/48`

const levelMelody = `
	C5/12 E5/12 G5/12 E5/12 F5/12 A5/12 G5/24
	E5/12 C5/12 D5/12 B4/12 C5/48`

const levelBass = `C3/24 G2/24 F2/24 G2/24 C3/24 G2/24 C3/48`

const levelDrums = `N2/6 R/18 N2/6 R/18 N2/6 R/18 N2/6 R/18 N2/6 R/18 N2/6 R/18 N2/6 R/18 N2/6 R/18`

// Wedding March fanfare
const creditsMelody = `
	G4/8 G4/8 G4/8 G4/24
	G4/8 G4/8 G4/8 G4/24
	G4/8 G4/8 G4/8 C5/24 E5/24 G5/48
	E5/24 D5/12 C5/12 B4/24 A4/24 G4/48 C5/48`

const creditsBass = `C3/48 C3/48 C3/72 C3/48 F2/48 G2/48 C3/48 G2/48`

// Music returns the tracks and effects
func Music() audio.Library {
	return audio.Library{
		Songs: map[audio.Track]audio.Song{
			audio.TrackTitle: {
				Name: "title",
				Loop: true,
				Voices: []audio.Voice{
					{Channel: audio.Pulse1, Duty: 2, Volume: 8, Notes: mustMelody(titleMelody)},
					{Channel: audio.Triangle, Notes: mustMelody(titleBass)},
				},
			},
			audio.TrackLevel: {
				Name: "level",
				Loop: true,
				Voices: []audio.Voice{
					{Channel: audio.Pulse1, Duty: 1, Volume: 6, Notes: mustMelody(levelMelody)},
					{Channel: audio.Triangle, Notes: mustMelody(levelBass)},
					{Channel: audio.Noise, Volume: 3, Notes: mustMelody(levelDrums)},
				},
			},
			audio.TrackCredits: {
				Name: "credits",
				Loop: true,
				Voices: []audio.Voice{
					{Channel: audio.Pulse1, Duty: 2, Volume: 9, Notes: mustMelody(creditsMelody)},
					{Channel: audio.Triangle, Notes: mustMelody(creditsBass)},
				},
			},
		},
		Effects: map[audio.Effect]audio.Song{
			audio.EffectStart: {
				Name:   "start",
				Voices: []audio.Voice{{Channel: audio.Pulse2, Duty: 2, Volume: 12, Notes: mustMelody(`C5/3 E5/3 G5/3 C6/9`)}},
			},
			audio.EffectRing: {
				Name:   "ring",
				Voices: []audio.Voice{{Channel: audio.Pulse2, Duty: 1, Volume: 14, Notes: mustMelody(`E6/3 G6/3 B6/3 E7/3 B6/3 E7/9`)}},
			},
		},
	}
}
