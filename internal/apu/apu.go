// Package apu implements the pulse, triangle and noise channels of a
// 2A03-style Audio Processing Unit.
package apu

// CPUFrequency is the NTSC CPU clock that drives the APU
const CPUFrequency = 1789773.0

// CyclesPerFrame is the number of CPU cycles in one NTSC frame
const CyclesPerFrame = 29781

// Register addresses
const (
	Pulse1Control  uint16 = 0x4000
	Pulse1Sweep    uint16 = 0x4001
	Pulse1TimerLo  uint16 = 0x4002
	Pulse1TimerHi  uint16 = 0x4003
	Pulse2Control  uint16 = 0x4004
	Pulse2Sweep    uint16 = 0x4005
	Pulse2TimerLo  uint16 = 0x4006
	Pulse2TimerHi  uint16 = 0x4007
	TriangleLinear uint16 = 0x4008
	TriangleLo     uint16 = 0x400A
	TriangleHi     uint16 = 0x400B
	NoiseControl   uint16 = 0x400C
	NoisePeriod    uint16 = 0x400E
	NoiseLength    uint16 = 0x400F
	Status         uint16 = 0x4015
	FrameCounter   uint16 = 0x4017
)

// Channel indexes
const (
	ChannelPulse1 = iota
	ChannelPulse2
	ChannelTriangle
	ChannelNoise
	channelCount
)

// APU represents the audio processing unit
type APU struct {
	pulse1   PulseChannel
	pulse2   PulseChannel
	triangle TriangleChannel
	noise    NoiseChannel

	// Frame counter
	frameCounter   uint16
	frameMode      bool // false = 4-step, true = 5-step
	frameIRQEnable bool
	frameIRQFlag   bool

	channelEnable [channelCount]bool

	// Audio generation
	sampleBuffer     []float32
	sampleRate       int
	cycleAccumulator float64

	cycles uint64
}

// New creates a new APU producing samples at 44.1kHz
func New() *APU {
	apu := &APU{
		sampleBuffer: make([]float32, 0, 4096),
		sampleRate:   44100,
	}
	apu.Reset()
	return apu
}

// Reset resets the APU to its initial state
func (apu *APU) Reset() {
	apu.pulse1 = PulseChannel{onesComplement: true}
	apu.pulse2 = PulseChannel{}
	apu.triangle = TriangleChannel{}
	apu.noise = NoiseChannel{shiftRegister: 1}

	apu.frameCounter = 0
	apu.frameMode = false
	apu.frameIRQEnable = true
	apu.frameIRQFlag = false

	for i := range apu.channelEnable {
		apu.channelEnable[i] = false
	}

	apu.cycles = 0
	apu.cycleAccumulator = 0
	apu.sampleBuffer = apu.sampleBuffer[:0]
}

// Step advances the APU by one CPU cycle
func (apu *APU) Step() {
	apu.cycles++
	apu.stepFrameCounter()

	// Triangle runs at CPU rate, the rest at half of it
	if apu.channelEnable[ChannelTriangle] {
		apu.triangle.stepTimer()
	}
	if apu.cycles&1 == 0 {
		if apu.channelEnable[ChannelPulse1] {
			apu.pulse1.stepTimer()
		}
		if apu.channelEnable[ChannelPulse2] {
			apu.pulse2.stepTimer()
		}
		if apu.channelEnable[ChannelNoise] {
			apu.noise.stepTimer()
		}
	}

	apu.generateSample()
}

// RunCycles steps the APU n CPU cycles
func (apu *APU) RunCycles(n int) {
	for i := 0; i < n; i++ {
		apu.Step()
	}
}

// stepFrameCounter clocks envelopes, length counters and sweeps at the
// quarter and half frame points.
func (apu *APU) stepFrameCounter() {
	apu.frameCounter++

	switch apu.frameCounter {
	case 7457, 22371:
		apu.clockQuarterFrame()
	case 14913:
		apu.clockQuarterFrame()
		apu.clockHalfFrame()
	case 29829:
		if !apu.frameMode {
			apu.clockQuarterFrame()
			apu.clockHalfFrame()
		}
	case 29830:
		if !apu.frameMode {
			if apu.frameIRQEnable {
				apu.frameIRQFlag = true
			}
			apu.frameCounter = 0
		}
	case 37281:
		apu.clockQuarterFrame()
		apu.clockHalfFrame()
		apu.frameCounter = 0
	}
}

func (apu *APU) clockQuarterFrame() {
	apu.pulse1.envelope.clock()
	apu.pulse2.envelope.clock()
	apu.noise.envelope.clock()
	apu.triangle.clockLinear()
}

func (apu *APU) clockHalfFrame() {
	apu.pulse1.clockLength()
	apu.pulse1.clockSweep()
	apu.pulse2.clockLength()
	apu.pulse2.clockSweep()
	apu.triangle.clockLength()
	apu.noise.clockLength()
}

// generateSample resamples the mixer output to the target rate
func (apu *APU) generateSample() {
	apu.cycleAccumulator += float64(apu.sampleRate) / CPUFrequency
	if apu.cycleAccumulator < 1.0 {
		return
	}
	apu.cycleAccumulator -= 1.0

	sample := mixChannels(
		apu.pulse1.output(),
		apu.pulse2.output(),
		apu.triangle.output(),
		apu.noise.output(),
	)
	apu.sampleBuffer = append(apu.sampleBuffer, sample)
}

// WriteRegister writes to an APU register
func (apu *APU) WriteRegister(address uint16, value uint8) {
	switch address {
	case Pulse1Control:
		apu.pulse1.writeControl(value)
	case Pulse1Sweep:
		apu.pulse1.writeSweep(value)
	case Pulse1TimerLo:
		apu.pulse1.writeTimerLow(value)
	case Pulse1TimerHi:
		apu.pulse1.writeTimerHigh(value, apu.channelEnable[ChannelPulse1])

	case Pulse2Control:
		apu.pulse2.writeControl(value)
	case Pulse2Sweep:
		apu.pulse2.writeSweep(value)
	case Pulse2TimerLo:
		apu.pulse2.writeTimerLow(value)
	case Pulse2TimerHi:
		apu.pulse2.writeTimerHigh(value, apu.channelEnable[ChannelPulse2])

	case TriangleLinear:
		apu.triangle.writeControl(value)
	case TriangleLo:
		apu.triangle.writeTimerLow(value)
	case TriangleHi:
		apu.triangle.writeTimerHigh(value, apu.channelEnable[ChannelTriangle])

	case NoiseControl:
		apu.noise.writeControl(value)
	case NoisePeriod:
		apu.noise.writePeriod(value)
	case NoiseLength:
		apu.noise.writeLength(value, apu.channelEnable[ChannelNoise])

	case Status:
		apu.writeChannelEnable(value)
	case FrameCounter:
		apu.writeFrameCounter(value)
	}
}

// GetSamples returns and drains the buffered samples
func (apu *APU) GetSamples() []float32 {
	samples := make([]float32, len(apu.sampleBuffer))
	copy(samples, apu.sampleBuffer)
	apu.sampleBuffer = apu.sampleBuffer[:0]
	return samples
}

// ReadStatus reads the status register ($4015)
func (apu *APU) ReadStatus() uint8 {
	status := uint8(0)

	if apu.pulse1.lengthCounter > 0 {
		status |= 0x01
	}
	if apu.pulse2.lengthCounter > 0 {
		status |= 0x02
	}
	if apu.triangle.lengthCounter > 0 {
		status |= 0x04
	}
	if apu.noise.lengthCounter > 0 {
		status |= 0x08
	}
	if apu.frameIRQFlag {
		status |= 0x40
	}

	// Reading $4015 clears the frame IRQ flag
	apu.frameIRQFlag = false

	return status
}

// writeChannelEnable writes to the channel enable register ($4015).
// Disabling a channel silences it at once.
func (apu *APU) writeChannelEnable(value uint8) {
	for i := range apu.channelEnable {
		apu.channelEnable[i] = value&(1<<i) != 0
	}

	if !apu.channelEnable[ChannelPulse1] {
		apu.pulse1.lengthCounter = 0
	}
	if !apu.channelEnable[ChannelPulse2] {
		apu.pulse2.lengthCounter = 0
	}
	if !apu.channelEnable[ChannelTriangle] {
		apu.triangle.lengthCounter = 0
	}
	if !apu.channelEnable[ChannelNoise] {
		apu.noise.lengthCounter = 0
	}
}

// writeFrameCounter writes to the frame counter register ($4017)
func (apu *APU) writeFrameCounter(value uint8) {
	apu.frameMode = (value & 0x80) != 0
	apu.frameIRQEnable = (value & 0x40) == 0
	if !apu.frameIRQEnable {
		apu.frameIRQFlag = false
	}

	apu.frameCounter = 0

	// 5-step mode clocks every unit immediately
	if apu.frameMode {
		apu.clockQuarterFrame()
		apu.clockHalfFrame()
	}
}

// mixChannels applies the non-linear NES mixer. Silence is 0 and full
// output approaches 1.
func mixChannels(pulse1, pulse2, triangle, noise uint8) float32 {
	pulseSum := float64(pulse1) + float64(pulse2)
	var pulseOut float64
	if pulseSum != 0 {
		pulseOut = 95.88 / ((8128.0 / pulseSum) + 100.0)
	}

	tndSum := (float64(triangle) / 8227.0) + (float64(noise) / 12241.0)
	var tndOut float64
	if tndSum != 0 {
		tndOut = 159.79 / ((1.0 / tndSum) + 100.0)
	}

	return float32(pulseOut + tndOut)
}

// GetFrameIRQ returns the frame counter IRQ flag
func (apu *APU) GetFrameIRQ() bool {
	return apu.frameIRQFlag
}

// SetSampleRate sets the target sample rate
func (apu *APU) SetSampleRate(rate int) {
	if rate <= 0 {
		return
	}
	apu.sampleRate = rate
	apu.cycleAccumulator = 0
}

// GetSampleRate returns the target sample rate
func (apu *APU) GetSampleRate() int {
	return apu.sampleRate
}

// GetChannelOutput returns the current output level of a channel
func (apu *APU) GetChannelOutput(channel int) uint8 {
	if !apu.IsChannelEnabled(channel) {
		return 0
	}

	switch channel {
	case ChannelPulse1:
		return apu.pulse1.output()
	case ChannelPulse2:
		return apu.pulse2.output()
	case ChannelTriangle:
		return apu.triangle.output()
	case ChannelNoise:
		return apu.noise.output()
	default:
		return 0
	}
}

// IsChannelEnabled returns whether a channel is enabled
func (apu *APU) IsChannelEnabled(channel int) bool {
	if channel < 0 || channel >= len(apu.channelEnable) {
		return false
	}
	return apu.channelEnable[channel]
}
