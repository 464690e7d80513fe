package game

import "ringquest/internal/assets"

// Fade timing in steps of one fade interval
const (
	FadeSteps       = 10
	fadeVisibleStep = 4 // steps before this one only wait
	fadeDecrement   = 0x10
)

// FadePalette is the working copy of the level palette while it fades
type FadePalette struct {
	Colors assets.Palette
	Step   int
}

func newFadePalette(from assets.Palette) FadePalette {
	return FadePalette{Colors: from}
}

// FadeColor darkens one palette byte by a brightness row, flooring at
// black.
func FadeColor(b uint8) uint8 {
	if int(b)-fadeDecrement < int(assets.Black) {
		return assets.Black
	}
	return b - fadeDecrement
}

// advance moves the fade one step. It reports whether the colors changed
// and whether the fade is complete.
func (f *FadePalette) advance() (changed, done bool) {
	f.Step++
	if f.Step >= fadeVisibleStep {
		for i, b := range f.Colors {
			f.Colors[i] = FadeColor(b)
		}
		changed = true
	}
	return changed, f.Step >= FadeSteps
}
