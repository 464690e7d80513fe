package apu

// TriangleChannel represents the triangle wave channel
type TriangleChannel struct {
	control           bool // halts the length counter and holds the linear reload
	linearCounterLoad uint8

	timer        uint16
	timerCounter uint16

	lengthCounter uint8

	linearCounter       uint8
	linearCounterReload bool

	sequencerPos uint8
}

// writeControl writes $4008
func (t *TriangleChannel) writeControl(value uint8) {
	t.control = (value & 0x80) != 0
	t.linearCounterLoad = value & 0x7F
}

// writeTimerLow writes $400A
func (t *TriangleChannel) writeTimerLow(value uint8) {
	t.timer = (t.timer & 0xFF00) | uint16(value)
}

// writeTimerHigh writes $400B
func (t *TriangleChannel) writeTimerHigh(value uint8, enabled bool) {
	t.timer = (t.timer & 0x00FF) | (uint16(value&0x07) << 8)
	if enabled {
		t.lengthCounter = lengthTable[(value>>3)&0x1F]
	}
	t.linearCounterReload = true
}

func (t *TriangleChannel) stepTimer() {
	if t.timerCounter == 0 {
		t.timerCounter = t.timer
		if t.lengthCounter > 0 && t.linearCounter > 0 {
			t.sequencerPos = (t.sequencerPos + 1) & 0x1F
		}
	} else {
		t.timerCounter--
	}
}

func (t *TriangleChannel) clockLinear() {
	if t.linearCounterReload {
		t.linearCounter = t.linearCounterLoad
	} else if t.linearCounter > 0 {
		t.linearCounter--
	}

	if !t.control {
		t.linearCounterReload = false
	}
}

func (t *TriangleChannel) clockLength() {
	if !t.control && t.lengthCounter > 0 {
		t.lengthCounter--
	}
}

// output mutes ultrasonic periods as well as silenced notes
func (t *TriangleChannel) output() uint8 {
	if t.lengthCounter == 0 || t.linearCounter == 0 || t.timer < 2 {
		return 0
	}
	return triangleTable[t.sequencerPos]
}
