// Package audio sequences music and sound effects onto the APU once per
// frame and hands the resulting samples to an output sink.
package audio

import (
	"log"

	"ringquest/internal/apu"
)

// voiceState walks one voice's notes a frame at a time
type voiceState struct {
	voice     Voice
	loop      bool
	pos       int
	remaining int
}

func newVoiceState(voice Voice, loop bool) *voiceState {
	return &voiceState{voice: voice, loop: loop, pos: -1}
}

// step advances one frame. It reports the note sounding this frame,
// whether it started on this frame and whether the voice is still active.
func (vs *voiceState) step() (note Note, started, active bool) {
	if vs == nil {
		return Note{}, false, false
	}

	if vs.remaining == 0 {
		vs.pos++
		if vs.pos >= len(vs.voice.Notes) {
			if !vs.loop || len(vs.voice.Notes) == 0 {
				return Note{}, false, false
			}
			vs.pos = 0
		}
		vs.remaining = int(max(vs.voice.Notes[vs.pos].Frames, 1))
		started = true
	}

	vs.remaining--
	return vs.voice.Notes[vs.pos], started, true
}

type owner uint8

const (
	ownerNone owner = iota
	ownerMusic
	ownerEffect
	ownerUnknown
)

// Engine is the per-frame audio driver. Effects take their channels over
// from the music while they play; the music keeps its place underneath.
type Engine struct {
	apu     *apu.APU
	sink    Sink
	library Library

	music   [channelCount]*voiceState
	effects [channelCount]*voiceState
	owners  [channelCount]owner

	track        Track
	musicPlaying bool

	cyclesPerFrame int
	volume         float32
	filter         highPass

	frames       uint64
	sinkFailed   bool
	debugEnabled bool
}

// NewEngine creates an engine for the given APU, sink and library.
// framesPerSecond selects how many CPU cycles each Tick runs.
func NewEngine(a *apu.APU, sink Sink, library Library, framesPerSecond int) *Engine {
	if sink == nil {
		sink = Discard{}
	}

	cycles := apu.CyclesPerFrame
	if framesPerSecond > 0 && framesPerSecond != 60 {
		cycles = int(apu.CPUFrequency) / framesPerSecond
	}

	e := &Engine{
		apu:            a,
		sink:           sink,
		library:        library,
		cyclesPerFrame: cycles,
		volume:         1.0,
		filter:         newHighPass(),
	}
	for i := range e.owners {
		e.owners[i] = ownerUnknown
	}

	a.WriteRegister(apu.Status, 0x0F)
	return e
}

// EnableDebug enables or disables audio logging
func (e *Engine) EnableDebug(enabled bool) {
	e.debugEnabled = enabled
}

// SetVolume sets the output gain, clamped to [0, 1]
func (e *Engine) SetVolume(volume float32) {
	e.volume = min(max(volume, 0), 1)
}

// PlayMusic starts a track from its beginning, replacing any music
func (e *Engine) PlayMusic(track Track) {
	song, ok := e.library.Songs[track]
	if !ok {
		log.Printf("[AUDIO] Unknown track %d", track)
		e.StopMusic()
		return
	}

	e.music = [channelCount]*voiceState{}
	for _, voice := range song.Voices {
		if voice.Channel >= 0 && voice.Channel < channelCount {
			e.music[voice.Channel] = newVoiceState(voice, song.Loop)
		}
	}
	e.track = track
	e.musicPlaying = true
	e.invalidate()

	if e.debugEnabled {
		log.Printf("[AUDIO] Music %s (%d voices)", track, len(song.Voices))
	}
}

// StopMusic silences the music; effects keep playing
func (e *Engine) StopMusic() {
	e.music = [channelCount]*voiceState{}
	e.musicPlaying = false
	e.invalidate()
}

// PlayEffect starts an effect on the channels it uses
func (e *Engine) PlayEffect(effect Effect) {
	song, ok := e.library.Effects[effect]
	if !ok {
		log.Printf("[AUDIO] Unknown effect %d", effect)
		return
	}

	for _, voice := range song.Voices {
		if voice.Channel >= 0 && voice.Channel < channelCount {
			e.effects[voice.Channel] = newVoiceState(voice, false)
			e.owners[voice.Channel] = ownerUnknown
		}
	}

	if e.debugEnabled {
		log.Printf("[AUDIO] Effect %s", effect)
	}
}

// Tick advances the sequencers one frame, runs the APU for a frame's
// worth of cycles and pushes the samples to the sink.
func (e *Engine) Tick() {
	e.frames++

	for ch := 0; ch < channelCount; ch++ {
		e.stepChannel(ch)
	}

	e.apu.RunCycles(e.cyclesPerFrame)
	samples := e.apu.GetSamples()
	for i, s := range samples {
		samples[i] = e.filter.apply(s) * e.volume
	}

	if err := e.sink.WriteSamples(samples); err != nil && !e.sinkFailed {
		e.sinkFailed = true
		log.Printf("[AUDIO] Output failed, continuing without sound: %v", err)
	}
}

// stepChannel picks the voice that owns a channel this frame and writes
// its note when the owner or the note changes.
func (e *Engine) stepChannel(ch int) {
	musicNote, musicStarted, musicActive := e.music[ch].step()
	effectNote, effectStarted, effectActive := e.effects[ch].step()

	if !effectActive {
		e.effects[ch] = nil
	}

	var (
		next    owner
		note    Note
		started bool
		voice   Voice
	)
	switch {
	case effectActive:
		next, note, started, voice = ownerEffect, effectNote, effectStarted, e.effects[ch].voice
	case musicActive:
		next, note, started, voice = ownerMusic, musicNote, musicStarted, e.music[ch].voice
	default:
		next = ownerNone
	}

	if next == e.owners[ch] && !started {
		return
	}
	e.owners[ch] = next

	if next == ownerNone {
		e.writeNote(ch, Voice{Channel: ch}, Note{})
		return
	}
	e.writeNote(ch, voice, note)
}

// Length load for note writes; channels run with the halt flag set so the
// longest entry keeps a note sounding until it is replaced.
var sustain = apu.LengthIndex(254) << 3

// writeNote programs one channel's registers for a note or a rest
func (e *Engine) writeNote(ch int, voice Voice, note Note) {
	a := e.apu

	switch ch {
	case Pulse1, Pulse2:
		base := apu.Pulse1Control + uint16(ch)*4
		if note.Pitch == Rest {
			a.WriteRegister(base, 0x30)
			return
		}
		period := PulsePeriod(note.Pitch)
		a.WriteRegister(base, (voice.Duty&0x03)<<6|0x30|voice.Volume&0x0F)
		a.WriteRegister(base+1, 0x08)
		a.WriteRegister(base+2, uint8(period))
		a.WriteRegister(base+3, uint8(period>>8)&0x07|sustain)

	case Triangle:
		if note.Pitch == Rest {
			a.WriteRegister(apu.TriangleLinear, 0x80)
			a.WriteRegister(apu.TriangleHi, sustain)
			return
		}
		period := TrianglePeriod(note.Pitch)
		a.WriteRegister(apu.TriangleLinear, 0xFF)
		a.WriteRegister(apu.TriangleLo, uint8(period))
		a.WriteRegister(apu.TriangleHi, uint8(period>>8)&0x07|sustain)

	case Noise:
		if note.Pitch == Rest {
			a.WriteRegister(apu.NoiseControl, 0x30)
			return
		}
		a.WriteRegister(apu.NoiseControl, 0x30|voice.Volume&0x0F)
		a.WriteRegister(apu.NoisePeriod, (note.Pitch-1)&0x0F)
		a.WriteRegister(apu.NoiseLength, sustain)
	}
}

func (e *Engine) invalidate() {
	for i := range e.owners {
		e.owners[i] = ownerUnknown
	}
}

// CurrentTrack returns the playing track, if any
func (e *Engine) CurrentTrack() (Track, bool) {
	return e.track, e.musicPlaying
}

// EffectPlaying reports whether any effect is still sounding
func (e *Engine) EffectPlaying() bool {
	for _, vs := range e.effects {
		if vs != nil {
			return true
		}
	}
	return false
}

// Frames returns the number of ticks run
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Close closes the sink
func (e *Engine) Close() error {
	return e.sink.Close()
}

// highPass removes the DC offset of the unipolar mixer output
type highPass struct {
	prevIn, prevOut float32
	alpha           float32
}

func newHighPass() highPass {
	return highPass{alpha: 0.996}
}

func (h *highPass) apply(x float32) float32 {
	y := x - h.prevIn + h.alpha*h.prevOut
	h.prevIn, h.prevOut = x, y
	return y
}
