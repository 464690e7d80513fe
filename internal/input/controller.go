// Package input implements the controller ports and the per-frame input sampler.
package input

import (
	"log"
	"strings"
)

// Button represents controller buttons. A value may hold several buttons
// at once, in which case it is a button mask.
type Button uint8

// Bits are in serial read order: the first bit shifted out of the
// controller is A, the eighth is Right.
const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Convenience constants for shorter names
const (
	A      = ButtonA
	B      = ButtonB
	Select = ButtonSelect
	Start  = ButtonStart
	Up     = ButtonUp
	Down   = ButtonDown
	Left   = ButtonLeft
	Right  = ButtonRight
)

var buttonNames = [8]string{"A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}

// Has reports whether every button in other is set in b.
func (b Button) Has(other Button) bool {
	return other != 0 && b&other == other
}

// String returns the set buttons joined with '+', or "none".
func (b Button) String() string {
	if b == 0 {
		return "none"
	}
	var names []string
	for i, name := range buttonNames {
		if b&(1<<uint(i)) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "+")
}

// ParseButton parses a single button name, case-insensitively.
func ParseButton(name string) (Button, bool) {
	for i, n := range buttonNames {
		if strings.EqualFold(n, name) {
			return 1 << uint(i), true
		}
	}
	return 0, false
}

// Controller represents a standard controller with a strobe latch and an
// 8-bit shift register
type Controller struct {
	// Live button states, set by the host
	buttons Button

	// Shift register for serial reading
	shiftRegister uint8
	strobe        bool
	bitPosition   uint8

	readCount    uint64
	debugEnabled bool
}

// New creates a new Controller instance
func New() *Controller {
	return &Controller{}
}

// SetButton sets the state of a button
func (c *Controller) SetButton(button Button, pressed bool) {
	old := c.buttons
	if pressed {
		c.buttons |= button
	} else {
		c.buttons &^= button
	}

	if c.debugEnabled && old != c.buttons {
		log.Printf("[INPUT] SetButton: %s pressed=%t, 0x%02X -> 0x%02X", button, pressed, uint8(old), uint8(c.buttons))
	}
}

// SetButtons replaces all button states at once
func (c *Controller) SetButtons(mask Button) {
	c.buttons = mask
}

// IsPressed returns true if the button is currently pressed
func (c *Controller) IsPressed(button Button) bool {
	return c.buttons&button != 0
}

// Write handles a write to the strobe register
func (c *Controller) Write(value uint8) {
	wasStrobe := c.strobe
	c.strobe = value&1 != 0

	// Latch on both edges so a read sequence always starts from fresh state
	if c.strobe || wasStrobe {
		c.shiftRegister = uint8(c.buttons)
		c.bitPosition = 0
	}
}

// Read shifts out the next button bit. While strobe is held it keeps
// returning A; after eight reads it returns 1s like official pads.
func (c *Controller) Read() uint8 {
	c.readCount++

	if c.strobe {
		c.bitPosition = 0
		return uint8(c.buttons) & 1
	}

	if c.bitPosition >= 8 {
		c.bitPosition++
		return 1
	}

	bit := c.shiftRegister & 1
	c.shiftRegister >>= 1
	c.bitPosition++
	return bit
}

// Reset resets the controller state
func (c *Controller) Reset() {
	c.buttons = 0
	c.shiftRegister = 0
	c.strobe = false
	c.bitPosition = 0
	c.readCount = 0
}

// EnableDebug enables debug logging for this controller
func (c *Controller) EnableDebug(enable bool) {
	c.debugEnabled = enable
}
