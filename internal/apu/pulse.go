package apu

// PulseChannel represents a pulse wave channel
type PulseChannel struct {
	dutyCycle uint8
	envelope  envelope

	// Sweep unit
	sweepEnable    bool
	sweepPeriod    uint8
	sweepNegate    bool
	sweepShift     uint8
	sweepReload    bool
	sweepCounter   uint8
	onesComplement bool // pulse 1 negates with one's complement

	timer        uint16 // 11-bit period
	timerCounter uint16

	lengthCounter uint8

	sequencerPos uint8
}

// writeControl writes $4000/$4004
func (p *PulseChannel) writeControl(value uint8) {
	p.dutyCycle = (value >> 6) & 0x03
	p.envelope.write(value)
}

// writeSweep writes $4001/$4005
func (p *PulseChannel) writeSweep(value uint8) {
	p.sweepEnable = (value & 0x80) != 0
	p.sweepPeriod = (value >> 4) & 0x07
	p.sweepNegate = (value & 0x08) != 0
	p.sweepShift = value & 0x07
	p.sweepReload = true
}

// writeTimerLow writes $4002/$4006
func (p *PulseChannel) writeTimerLow(value uint8) {
	p.timer = (p.timer & 0xFF00) | uint16(value)
}

// writeTimerHigh writes $4003/$4007, restarting the note
func (p *PulseChannel) writeTimerHigh(value uint8, enabled bool) {
	p.timer = (p.timer & 0x00FF) | (uint16(value&0x07) << 8)
	if enabled {
		p.lengthCounter = lengthTable[(value>>3)&0x1F]
	}
	p.envelope.start = true
	p.sequencerPos = 0
}

func (p *PulseChannel) stepTimer() {
	if p.timerCounter == 0 {
		p.timerCounter = p.timer
		p.sequencerPos = (p.sequencerPos + 1) & 0x07
	} else {
		p.timerCounter--
	}
}

func (p *PulseChannel) clockLength() {
	if !p.envelope.loop && p.lengthCounter > 0 {
		p.lengthCounter--
	}
}

func (p *PulseChannel) clockSweep() {
	if p.sweepCounter == 0 && p.sweepEnable && p.sweepShift > 0 && !p.sweepMuted() {
		p.timer = p.sweepTarget()
	}

	if p.sweepCounter == 0 || p.sweepReload {
		p.sweepCounter = p.sweepPeriod
		p.sweepReload = false
	} else {
		p.sweepCounter--
	}
}

func (p *PulseChannel) sweepTarget() uint16 {
	change := p.timer >> p.sweepShift
	if !p.sweepNegate {
		return p.timer + change
	}
	if p.onesComplement {
		change++
	}
	if change > p.timer {
		return 0
	}
	return p.timer - change
}

func (p *PulseChannel) sweepMuted() bool {
	return p.timer < 8 || p.sweepTarget() > 0x7FF
}

func (p *PulseChannel) output() uint8 {
	if p.lengthCounter == 0 || p.sweepMuted() {
		return 0
	}
	if dutyTable[p.dutyCycle][p.sequencerPos] == 0 {
		return 0
	}
	return p.envelope.level()
}
