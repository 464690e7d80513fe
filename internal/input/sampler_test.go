package input

import (
	"testing"
)

func TestSamplerRefresh_ShouldReadBothPorts(t *testing.T) {
	ports := NewInputState()
	sampler := NewSampler(ports)

	ports.Controller1.SetButtons(ButtonStart | ButtonLeft)
	ports.Controller2.SetButtons(ButtonB)
	sampler.Refresh()

	if got := sampler.Current(0); got != ButtonStart|ButtonLeft {
		t.Errorf("Port 1: expected Start+Left, got %s", got)
	}
	if got := sampler.Current(1); got != ButtonB {
		t.Errorf("Port 2: expected B, got %s", got)
	}
	if got := sampler.Previous(0); got != 0 {
		t.Errorf("Port 1 previous: expected none, got %s", got)
	}
}

func TestSamplerRefresh_ShouldKeepPreviousFrame(t *testing.T) {
	ports := NewInputState()
	sampler := NewSampler(ports)

	ports.Controller1.SetButtons(ButtonA)
	sampler.Refresh()
	ports.Controller1.SetButtons(ButtonA | ButtonDown)
	sampler.Refresh()

	if got := sampler.Previous(0); got != ButtonA {
		t.Errorf("Expected previous A, got %s", got)
	}
	if got := sampler.Current(0); got != ButtonA|ButtonDown {
		t.Errorf("Expected current A+Down, got %s", got)
	}
}

func TestSamplerPressed_ShouldBeEdgeTriggered(t *testing.T) {
	ports := NewInputState()
	sampler := NewSampler(ports)

	ports.Controller1.SetButtons(ButtonStart)
	sampler.Refresh()
	if !sampler.Pressed(0, ButtonStart) {
		t.Error("Expected Start edge on first pressed frame")
	}

	sampler.Refresh()
	if sampler.Pressed(0, ButtonStart) {
		t.Error("Held Start must not report another edge")
	}

	ports.Controller1.SetButtons(0)
	sampler.Refresh()
	ports.Controller1.SetButtons(ButtonStart)
	sampler.Refresh()
	if !sampler.Pressed(0, ButtonStart) {
		t.Error("Expected Start edge after release and press")
	}
}

func TestSampler_OutOfRangePort_ShouldReturnZero(t *testing.T) {
	sampler := NewSampler(NewInputState())

	if sampler.Current(2) != 0 || sampler.Previous(-1) != 0 {
		t.Error("Expected zero masks for invalid ports")
	}
}
