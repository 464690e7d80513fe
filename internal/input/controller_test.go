package input

import (
	"testing"
)

func TestNew_ShouldCreateControllerWithDefaultState(t *testing.T) {
	controller := New()

	if controller == nil {
		t.Fatal("Expected controller, got nil")
	}
	if controller.buttons != 0 {
		t.Errorf("Expected initial buttons state 0, got %d", controller.buttons)
	}
	if controller.strobe {
		t.Error("Expected initial strobe false, got true")
	}
}

func TestSetButton_ShouldUpdateButtonState(t *testing.T) {
	controller := New()

	buttons := []Button{
		ButtonA, ButtonB, ButtonSelect, ButtonStart,
		ButtonUp, ButtonDown, ButtonLeft, ButtonRight,
	}

	for _, button := range buttons {
		controller.SetButton(button, true)

		if !controller.IsPressed(button) {
			t.Errorf("Button %s should be pressed after SetButton(true)", button)
		}
		if controller.buttons != button {
			t.Errorf("Expected buttons state %d, got %d", button, controller.buttons)
		}

		controller.SetButton(button, false)

		if controller.IsPressed(button) {
			t.Errorf("Button %s should not be pressed after SetButton(false)", button)
		}
	}
}

func TestRead_AfterStrobe_ShouldShiftOutButtonsInOrder(t *testing.T) {
	controller := New()
	controller.SetButtons(ButtonA | ButtonStart | ButtonRight)

	controller.Write(1)
	controller.Write(0)

	expected := []uint8{1, 0, 0, 1, 0, 0, 0, 1}
	for i, want := range expected {
		if got := controller.Read(); got != want {
			t.Errorf("Read %d: expected %d, got %d", i, want, got)
		}
	}

	// Official pads report 1 once the eight buttons are exhausted
	if got := controller.Read(); got != 1 {
		t.Errorf("Expected 1 after eight reads, got %d", got)
	}
}

func TestRead_WhileStrobeHigh_ShouldAlwaysReturnButtonA(t *testing.T) {
	controller := New()
	controller.SetButton(ButtonA, true)
	controller.Write(1)

	for i := 0; i < 4; i++ {
		if got := controller.Read(); got != 1 {
			t.Errorf("Read %d during strobe: expected 1, got %d", i, got)
		}
	}
}

func TestButtonString_ShouldJoinNames(t *testing.T) {
	tests := []struct {
		mask Button
		want string
	}{
		{0, "none"},
		{ButtonA, "A"},
		{ButtonUp | ButtonRight, "Up+Right"},
		{ButtonStart | ButtonSelect, "Select+Start"},
	}

	for _, tt := range tests {
		if got := tt.mask.String(); got != tt.want {
			t.Errorf("String(%d): expected %q, got %q", tt.mask, tt.want, got)
		}
	}
}

func TestParseButton_ShouldIgnoreCase(t *testing.T) {
	button, ok := ParseButton("start")
	if !ok || button != ButtonStart {
		t.Errorf("Expected Start, got %v (ok=%t)", button, ok)
	}

	if _, ok := ParseButton("turbo"); ok {
		t.Error("Expected unknown button to fail")
	}
}

func TestHas_ShouldRequireEveryBit(t *testing.T) {
	mask := ButtonA | ButtonUp

	if !mask.Has(ButtonA) {
		t.Error("Expected mask to have A")
	}
	if mask.Has(ButtonA | ButtonB) {
		t.Error("Expected mask not to have A+B")
	}
	if mask.Has(0) {
		t.Error("Expected empty query to be false")
	}
}
