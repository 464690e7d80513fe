package input

import "log"

// Ports is the number of controller ports.
const Ports = 2

// Controller port registers
const (
	Port1Register uint16 = 0x4016
	Port2Register uint16 = 0x4017
)

// InputState represents both controller ports
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewInputState creates a new input state with two controllers
func NewInputState() *InputState {
	return &InputState{
		Controller1: New(),
		Controller2: New(),
	}
}

// Reset resets all input devices
func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

// EnableDebug enables debug logging for all controllers
func (is *InputState) EnableDebug(enable bool) {
	is.Controller1.EnableDebug(enable)
	is.Controller2.EnableDebug(enable)
}

// Controller returns the controller plugged into port (0 or 1).
func (is *InputState) Controller(port int) *Controller {
	if port == 1 {
		return is.Controller2
	}
	return is.Controller1
}

// Read reads from a controller port register
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case Port1Register:
		return is.Controller1.Read()
	case Port2Register:
		return is.Controller2.Read()
	default:
		return 0
	}
}

// Write writes to the strobe register. Both ports share the strobe line.
func (is *InputState) Write(address uint16, value uint8) {
	if address == Port1Register {
		is.Controller1.Write(value)
		is.Controller2.Write(value)
	}
}

// Sampler latches both ports once per frame and keeps the previous frame's
// masks so callers can detect button edges.
type Sampler struct {
	ports    *InputState
	current  [Ports]Button
	previous [Ports]Button

	debugEnabled bool
}

// NewSampler creates a sampler reading from ports
func NewSampler(ports *InputState) *Sampler {
	return &Sampler{ports: ports}
}

// Refresh strobes the controllers and shifts in a fresh mask for each
// port. The old masks become the previous-frame masks.
func (s *Sampler) Refresh() {
	s.previous = s.current

	s.ports.Write(Port1Register, 1)
	s.ports.Write(Port1Register, 0)

	registers := [Ports]uint16{Port1Register, Port2Register}
	for port, register := range registers {
		var mask Button
		for bit := 0; bit < 8; bit++ {
			mask |= Button(s.ports.Read(register)&1) << uint(bit)
		}
		s.current[port] = mask
	}

	if s.debugEnabled && s.current[0] != s.previous[0] {
		log.Printf("[INPUT] port 1: %s -> %s", s.previous[0], s.current[0])
	}
}

// Current returns the mask sampled this frame
func (s *Sampler) Current(port int) Button {
	if port < 0 || port >= Ports {
		return 0
	}
	return s.current[port]
}

// Previous returns the mask sampled the frame before
func (s *Sampler) Previous(port int) Button {
	if port < 0 || port >= Ports {
		return 0
	}
	return s.previous[port]
}

// Pressed reports a button that went from released to pressed this frame
func (s *Sampler) Pressed(port int, button Button) bool {
	return s.Current(port).Has(button) && !s.Previous(port).Has(button)
}

// EnableDebug enables logging of mask changes on port 1
func (s *Sampler) EnableDebug(enable bool) {
	s.debugEnabled = enable
}
