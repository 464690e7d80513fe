package apu

// envelope is the volume envelope shared by the pulse and noise channels
type envelope struct {
	loop     bool // also halts the length counter
	constant bool
	volume   uint8 // constant volume or divider period

	start   bool
	decay   uint8
	divider uint8
}

func (e *envelope) write(value uint8) {
	e.loop = (value & 0x20) != 0
	e.constant = (value & 0x10) != 0
	e.volume = value & 0x0F
	e.start = true
}

// clock runs on every quarter frame
func (e *envelope) clock() {
	if e.start {
		e.start = false
		e.decay = 15
		e.divider = e.volume
		return
	}

	if e.divider > 0 {
		e.divider--
		return
	}

	e.divider = e.volume
	if e.decay > 0 {
		e.decay--
	} else if e.loop {
		e.decay = 15
	}
}

func (e *envelope) level() uint8 {
	if e.constant {
		return e.volume
	}
	return e.decay
}
