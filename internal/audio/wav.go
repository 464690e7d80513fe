package audio

import (
	"fmt"
	"log"
	"os"

	"github.com/youpy/go-wav"
)

// WAVRecorder buffers every sample in memory and writes a 16-bit mono WAV
// file on Close.
type WAVRecorder struct {
	filename   string
	sampleRate int
	buffer     []wav.Sample
}

// NewWAVRecorder creates a recorder writing to filename
func NewWAVRecorder(filename string, sampleRate int) *WAVRecorder {
	return &WAVRecorder{
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]wav.Sample, 0, sampleRate),
	}
}

// WriteSamples implements Sink
func (wr *WAVRecorder) WriteSamples(samples []float32) error {
	for _, s := range samples {
		w := wav.Sample{}
		w.Values[0] = int(toPCM16(s))
		wr.buffer = append(wr.buffer, w)
	}
	return nil
}

// Len returns the number of recorded samples
func (wr *WAVRecorder) Len() int {
	return len(wr.buffer)
}

// Close writes the recording to disk
func (wr *WAVRecorder) Close() (rerr error) {
	f, err := os.Create(wr.filename)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("failed to close WAV file: %w", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(wr.buffer)), 1, uint32(wr.sampleRate), 16)
	if enc == nil {
		return fmt.Errorf("bad parameters for WAV encoding")
	}

	log.Printf("[AUDIO] Writing %d samples to %s", len(wr.buffer), wr.filename)
	if err := enc.WriteSamples(wr.buffer); err != nil {
		return fmt.Errorf("failed to write WAV samples: %w", err)
	}
	return nil
}
