package input

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ScriptEvent holds a button mask on port 1 from Frame until the next event.
type ScriptEvent struct {
	Frame   uint64
	Buttons Button
}

// Script is a timed list of port 1 masks used to drive headless runs.
type Script struct {
	events []ScriptEvent
}

// ParseScript parses "frame:buttons" entries separated by commas or spaces.
// Buttons are names joined with '+', or "none"/"-" to release everything.
//
//	60:Start 61:none 120:Right 180:Right+A 181:Right
func ParseScript(text string) (*Script, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})

	script := &Script{}
	for _, field := range fields {
		frameText, buttonText, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("script entry %q: missing ':'", field)
		}

		frame, err := strconv.ParseUint(frameText, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("script entry %q: bad frame: %w", field, err)
		}

		mask, err := parseMask(buttonText)
		if err != nil {
			return nil, fmt.Errorf("script entry %q: %w", field, err)
		}

		script.events = append(script.events, ScriptEvent{Frame: frame, Buttons: mask})
	}

	sort.SliceStable(script.events, func(i, j int) bool {
		return script.events[i].Frame < script.events[j].Frame
	})

	return script, nil
}

func parseMask(text string) (Button, error) {
	if text == "" || text == "-" || strings.EqualFold(text, "none") {
		return 0, nil
	}

	var mask Button
	for _, name := range strings.Split(text, "+") {
		button, ok := ParseButton(name)
		if !ok {
			return 0, fmt.Errorf("unknown button %q", name)
		}
		mask |= button
	}
	return mask, nil
}

// At returns the mask held at frame.
func (s *Script) At(frame uint64) Button {
	var mask Button
	for _, event := range s.events {
		if event.Frame > frame {
			break
		}
		mask = event.Buttons
	}
	return mask
}

// Apply sets controller 1 to the mask held at frame.
func (s *Script) Apply(frame uint64, ports *InputState) {
	ports.Controller1.SetButtons(s.At(frame))
}

// Len returns the number of events
func (s *Script) Len() int {
	return len(s.events)
}

// LastFrame returns the frame of the final event, or 0 for an empty script
func (s *Script) LastFrame() uint64 {
	if len(s.events) == 0 {
		return 0
	}
	return s.events[len(s.events)-1].Frame
}
