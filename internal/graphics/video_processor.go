package graphics

import "math"

// VideoProcessor adjusts brightness, contrast and saturation of frames.
// A frame holds at most a few dozen distinct colors, so results are cached
// per color.
type VideoProcessor struct {
	brightness float64
	contrast   float64
	saturation float64
	cache      map[uint32]uint32
}

// NewVideoProcessor creates a video processor. 1.0 leaves a channel as is.
func NewVideoProcessor(brightness, contrast, saturation float64) *VideoProcessor {
	return &VideoProcessor{
		brightness: brightness,
		contrast:   contrast,
		saturation: saturation,
		cache:      make(map[uint32]uint32),
	}
}

// Identity reports whether processing leaves frames unchanged
func (vp *VideoProcessor) Identity() bool {
	return vp.brightness == 1 && vp.contrast == 1 && vp.saturation == 1
}

// ProcessFrame adjusts a frame in place
func (vp *VideoProcessor) ProcessFrame(frame *FrameBuffer) {
	if vp.Identity() {
		return
	}
	for i, pixel := range frame {
		adjusted, ok := vp.cache[pixel]
		if !ok {
			adjusted = vp.adjust(pixel)
			vp.cache[pixel] = adjusted
		}
		frame[i] = adjusted
	}
}

func (vp *VideoProcessor) adjust(pixel uint32) uint32 {
	rgb := [3]float64{
		float64((pixel >> 16) & 0xFF),
		float64((pixel >> 8) & 0xFF),
		float64(pixel & 0xFF),
	}

	for i := range rgb {
		c := rgb[i] * vp.brightness / 255
		rgb[i] = (c-0.5)*vp.contrast + 0.5
	}

	if vp.saturation != 1 {
		// Mix towards the Rec. 601 luma
		luma := 0.299*rgb[0] + 0.587*rgb[1] + 0.114*rgb[2]
		for i := range rgb {
			rgb[i] = luma + (rgb[i]-luma)*vp.saturation
		}
	}

	var out uint32
	for _, c := range rgb {
		out = out<<8 | uint32(math.Round(math.Max(0, math.Min(1, c))*255))
	}
	return out
}

// SetBrightness updates the brightness value
func (vp *VideoProcessor) SetBrightness(brightness float64) {
	vp.brightness = brightness
	vp.cache = make(map[uint32]uint32)
}

// SetContrast updates the contrast value
func (vp *VideoProcessor) SetContrast(contrast float64) {
	vp.contrast = contrast
	vp.cache = make(map[uint32]uint32)
}

// SetSaturation updates the saturation value
func (vp *VideoProcessor) SetSaturation(saturation float64) {
	vp.saturation = saturation
	vp.cache = make(map[uint32]uint32)
}
