package audio

import (
	"sync"
)

// Stream is an io.Reader of 16-bit little-endian stereo PCM fed from
// WriteSamples. Reads never block: when the game falls behind the reader
// gets silence, and when the reader falls behind the oldest audio is
// dropped so latency stays bounded.
type Stream struct {
	mutex    sync.Mutex
	buffer   []byte
	maxBytes int
	closed   bool
}

// NewStream creates a stream holding at most maxLatencySamples frames
func NewStream(maxLatencySamples int) *Stream {
	if maxLatencySamples <= 0 {
		maxLatencySamples = 4096
	}
	return &Stream{
		buffer:   make([]byte, 0, maxLatencySamples*4),
		maxBytes: maxLatencySamples * 4,
	}
}

// WriteSamples implements Sink
func (s *Stream) WriteSamples(samples []float32) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return nil
	}
	for _, sample := range samples {
		v := toPCM16(sample)
		s.buffer = append(s.buffer, byte(v), byte(v>>8), byte(v), byte(v>>8))
	}

	if over := len(s.buffer) - s.maxBytes; over > 0 {
		s.buffer = append(s.buffer[:0], s.buffer[over:]...)
	}
	return nil
}

// Read implements io.Reader
func (s *Stream) Read(p []byte) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	n := len(p) &^ 3
	copied := copy(p[:n], s.buffer)
	s.buffer = append(s.buffer[:0], s.buffer[copied:]...)

	for i := copied; i < n; i++ {
		p[i] = 0
	}
	return n, nil
}

// Buffered returns the number of buffered stereo frames
func (s *Stream) Buffered() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.buffer) / 4
}

// Close implements Sink
func (s *Stream) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = true
	s.buffer = s.buffer[:0]
	return nil
}
