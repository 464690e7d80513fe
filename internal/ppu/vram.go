package ppu

// MirrorMode selects how the four logical nametables map onto 2KB of VRAM
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
)

// String returns the mirroring name
func (m MirrorMode) String() string {
	if m == MirrorVertical {
		return "vertical"
	}
	return "horizontal"
}

// VRAM is the PPU address space ($0000-$3FFF): pattern tables, nametables
// and palette RAM.
type VRAM struct {
	patterns   [0x2000]uint8
	nametables [0x800]uint8
	palette    [32]uint8
	mirroring  MirrorMode
}

// NewVRAM creates video memory with the given nametable mirroring
func NewVRAM(mirroring MirrorMode) *VRAM {
	vram := &VRAM{mirroring: mirroring}

	// Universal background entries start black
	for i := 0; i < 32; i += 4 {
		vram.palette[i] = 0x0F
	}

	return vram
}

// Read reads from PPU memory space
func (vm *VRAM) Read(address uint16) uint8 {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		return vm.patterns[address]
	case address < 0x3F00:
		return vm.nametables[vm.nametableIndex(address)]
	default:
		return vm.palette[paletteIndex(address)]
	}
}

// Write writes to PPU memory space
func (vm *VRAM) Write(address uint16, value uint8) {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		vm.patterns[address] = value
	case address < 0x3F00:
		vm.nametables[vm.nametableIndex(address)] = value
	default:
		vm.palette[paletteIndex(address)] = value
	}
}

// nametableIndex folds $2000-$3EFF onto 2KB of VRAM
func (vm *VRAM) nametableIndex(address uint16) uint16 {
	address &= 0x0FFF
	nametable := (address >> 10) & 3
	offset := address & 0x3FF

	switch vm.mirroring {
	case MirrorVertical:
		if nametable == 1 || nametable == 3 {
			return 0x400 + offset
		}
		return offset
	default:
		if nametable >= 2 {
			return 0x400 + offset
		}
		return offset
	}
}

// paletteIndex folds $3F00-$3FFF onto the 32 palette bytes. Sprite
// backdrop entries $3F10/$14/$18/$1C alias the background ones.
func paletteIndex(address uint16) uint16 {
	index := (address - 0x3F00) & 0x1F
	if index == 0x10 || index == 0x14 || index == 0x18 || index == 0x1C {
		index &= 0x0F
	}
	return index
}
