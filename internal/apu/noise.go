package apu

// NoiseChannel represents the noise channel
type NoiseChannel struct {
	envelope envelope

	mode         bool // true = short 93-step sequence
	periodIndex  uint8
	timerCounter uint16

	lengthCounter uint8

	shiftRegister uint16 // 15-bit LFSR
}

// writeControl writes $400C
func (n *NoiseChannel) writeControl(value uint8) {
	n.envelope.write(value)
}

// writePeriod writes $400E
func (n *NoiseChannel) writePeriod(value uint8) {
	n.mode = (value & 0x80) != 0
	n.periodIndex = value & 0x0F
}

// writeLength writes $400F
func (n *NoiseChannel) writeLength(value uint8, enabled bool) {
	if enabled {
		n.lengthCounter = lengthTable[(value>>3)&0x1F]
	}
	n.envelope.start = true
}

func (n *NoiseChannel) stepTimer() {
	if n.timerCounter > 0 {
		n.timerCounter--
		return
	}
	n.timerCounter = noisePeriodTable[n.periodIndex]

	feedback := n.shiftRegister & 0x01
	if n.mode {
		feedback ^= (n.shiftRegister >> 6) & 0x01
	} else {
		feedback ^= (n.shiftRegister >> 1) & 0x01
	}
	n.shiftRegister = (n.shiftRegister >> 1) | (feedback << 14)
}

func (n *NoiseChannel) clockLength() {
	if !n.envelope.loop && n.lengthCounter > 0 {
		n.lengthCounter--
	}
}

func (n *NoiseChannel) output() uint8 {
	if n.lengthCounter == 0 || (n.shiftRegister&0x01) != 0 {
		return 0
	}
	return n.envelope.level()
}
