package audio

// Sink receives mono samples in [-1, 1] once per frame
type Sink interface {
	WriteSamples(samples []float32) error
	Close() error
}

// Discard drops every sample
type Discard struct{}

// WriteSamples implements Sink
func (Discard) WriteSamples([]float32) error { return nil }

// Close implements Sink
func (Discard) Close() error { return nil }

// toPCM16 converts a sample to a clamped signed 16-bit value
func toPCM16(s float32) int16 {
	s = min(max(s, -1), 1)
	return int16(s * 32767)
}
