package assets

// Black is the palette value the fade settles on
const Black uint8 = 0x0F

// Palette is a full 32-byte palette image: four background palettes then
// four sprite palettes.
type Palette [32]uint8

// Sprite palette assignment
const (
	SpritePaletteItem       uint8 = 0 // ring and credit glyphs
	SpritePaletteGroomUpper uint8 = 1
	SpritePaletteGroomLower uint8 = 2
)

// PaletteTitle is used on the title screen
var PaletteTitle = Palette{
	0x0F, 0x30, 0x16, 0x27,
	0x0F, 0x30, 0x16, 0x27,
	0x0F, 0x30, 0x16, 0x27,
	0x0F, 0x30, 0x16, 0x27,

	0x0F, 0x28, 0x18, 0x30,
	0x0F, 0x27, 0x0F, 0x30,
	0x0F, 0x2D, 0x0F, 0x30,
	0x0F, 0x28, 0x18, 0x30,
}

// PaletteLevel is used while playing and is the starting point of the
// fade, so every entry is either black or at least $10.
var PaletteLevel = Palette{
	0x1A, 0x30, 0x27, 0x0F, // status band and bride
	0x1A, 0x2A, 0x19, 0x37, // grass
	0x1A, 0x30, 0x16, 0x27,
	0x1A, 0x30, 0x16, 0x27,

	0x1A, 0x28, 0x18, 0x30,
	0x1A, 0x27, 0x0F, 0x30,
	0x1A, 0x2D, 0x0F, 0x30,
	0x1A, 0x28, 0x18, 0x30,
}

// PaletteCredits is used while the credits roll
var PaletteCredits = Palette{
	0x0F, 0x30, 0x16, 0x27,
	0x0F, 0x30, 0x16, 0x27,
	0x0F, 0x30, 0x16, 0x27,
	0x0F, 0x30, 0x16, 0x27,

	0x0F, 0x30, 0x21, 0x16,
	0x0F, 0x27, 0x0F, 0x30,
	0x0F, 0x2D, 0x0F, 0x30,
	0x0F, 0x30, 0x21, 0x16,
}

// Bytes returns the palette as a slice for display writes
func (p Palette) Bytes() []byte {
	b := make([]byte, len(p))
	copy(b, p[:])
	return b
}
