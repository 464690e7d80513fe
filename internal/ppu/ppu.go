// Package ppu implements a 2C02-style Picture Processing Unit: the VRAM,
// register protocol and per-frame renderer behind the game's display writes.
package ppu

import (
	"log"
)

// Screen geometry
const (
	ScreenWidth  = 256
	ScreenHeight = 240

	OAMSize            = 256
	SpriteCount        = 64
	SpritesPerScanline = 8
)

// Register addresses as seen by the CPU
const (
	PPUCTRL   uint16 = 0x2000
	PPUMASK   uint16 = 0x2001
	PPUSTATUS uint16 = 0x2002
	OAMADDR   uint16 = 0x2003
	OAMDATA   uint16 = 0x2004
	PPUSCROLL uint16 = 0x2005
	PPUADDR   uint16 = 0x2006
	PPUDATA   uint16 = 0x2007
)

// Well-known VRAM addresses
const (
	NametableBase uint16 = 0x2000
	AttributeBase uint16 = 0x23C0
	PaletteBase   uint16 = 0x3F00
	PaletteSize          = 32
)

// PPUCTRL bits
const (
	CtrlIncrement32       uint8 = 0x04
	CtrlSpritePatternHigh uint8 = 0x08
	CtrlBackgroundHigh    uint8 = 0x10
	CtrlNMI               uint8 = 0x80
)

// PPUMASK bits
const (
	MaskBackgroundLeft uint8 = 0x02
	MaskSpritesLeft    uint8 = 0x04
	MaskBackground     uint8 = 0x08
	MaskSprites        uint8 = 0x10

	// MaskRenderAll turns on background and sprites including the left column
	MaskRenderAll = MaskBackgroundLeft | MaskSpritesLeft | MaskBackground | MaskSprites
)

const (
	statusOverflow uint8 = 0x20
	statusVBlank   uint8 = 0x80
)

// PPU represents the picture processing unit
type PPU struct {
	// CPU-visible registers
	ppuCtrl   uint8
	ppuMask   uint8
	ppuStatus uint8
	oamAddr   uint8

	// Loopy registers
	v uint16 // Current VRAM address
	t uint16 // Temporary VRAM address, also the scroll origin
	x uint8  // Fine X scroll
	w bool   // Write latch

	readBuffer uint8

	vram *VRAM
	oam  [OAMSize]uint8

	frameBuffer  [ScreenWidth * ScreenHeight]uint32
	frameCount   uint64
	bytesWritten uint64

	debugEnabled bool
}

// New creates a PPU with rendering disabled and NMI generation on
func New(mirroring MirrorMode) *PPU {
	p := &PPU{vram: NewVRAM(mirroring)}
	p.Reset()
	return p
}

// Reset resets the registers and clears OAM. VRAM contents survive, as
// on hardware.
func (p *PPU) Reset() {
	p.ppuCtrl = CtrlNMI
	p.ppuMask = 0
	p.ppuStatus = statusVBlank
	p.oamAddr = 0
	p.v = 0
	p.t = 0
	p.x = 0
	p.w = false
	p.readBuffer = 0

	// Y=0xFF keeps every sprite below the screen
	for i := range p.oam {
		p.oam[i] = 0xFF
	}
}

// EnableDebug enables or disables PPU logging
func (p *PPU) EnableDebug(enabled bool) {
	p.debugEnabled = enabled
}

// ReadRegister reads from a PPU register
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch 0x2000 | address&0x0007 {
	case PPUSTATUS:
		status := p.ppuStatus
		p.ppuStatus &^= statusVBlank
		p.w = false
		return status
	case OAMDATA:
		return p.oam[p.oamAddr]
	case PPUDATA:
		return p.readPPUData()
	default:
		// Write-only registers return open bus
		return p.ppuStatus & 0x1F
	}
}

// WriteRegister writes to a PPU register
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch 0x2000 | address&0x0007 {
	case PPUCTRL:
		p.ppuCtrl = value
		p.t = (p.t & 0xF3FF) | ((uint16(value) & 0x03) << 10)
	case PPUMASK:
		p.ppuMask = value
	case OAMADDR:
		p.oamAddr = value
	case OAMDATA:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case PPUSCROLL:
		p.writePPUScroll(value)
	case PPUADDR:
		p.writePPUAddr(value)
	case PPUDATA:
		p.writePPUData(value)
	}
}

// WriteBlock copies data into VRAM starting at address through the
// PPUADDR/PPUDATA pair. The scroll origin is left disturbed; callers
// follow up with ResetScroll.
func (p *PPU) WriteBlock(address uint16, data []byte) {
	if len(data) == 0 {
		return
	}

	p.ReadRegister(PPUSTATUS)
	p.WriteRegister(PPUADDR, uint8(address>>8))
	p.WriteRegister(PPUADDR, uint8(address))
	for _, b := range data {
		p.WriteRegister(PPUDATA, b)
	}
	p.bytesWritten += uint64(len(data))

	if p.debugEnabled {
		log.Printf("[PPU] Wrote %d bytes at $%04X", len(data), address)
	}
}

// LoadPatterns writes CHR data into the pattern tables at $0000
func (p *PPU) LoadPatterns(chr []byte) {
	if len(chr) > 0x2000 {
		chr = chr[:0x2000]
	}
	p.WriteBlock(0x0000, chr)
}

// SetRenderingEnabled turns background and sprite rendering on or off
func (p *PPU) SetRenderingEnabled(enabled bool) {
	if enabled {
		p.WriteRegister(PPUMASK, MaskRenderAll)
	} else {
		p.WriteRegister(PPUMASK, 0)
	}
}

// RenderingEnabled reports whether either layer is enabled
func (p *PPU) RenderingEnabled() bool {
	return p.ppuMask&(MaskBackground|MaskSprites) != 0
}

// ResetScroll puts the scroll origin back on the first nametable
func (p *PPU) ResetScroll() {
	p.ReadRegister(PPUSTATUS)
	p.WriteRegister(PPUADDR, 0)
	p.WriteRegister(PPUADDR, 0)
	p.WriteRegister(PPUSCROLL, 0)
	p.WriteRegister(PPUSCROLL, 0)
	p.WriteRegister(PPUCTRL, p.ppuCtrl&^0x03)
}

// WriteSprites uploads a sprite table into OAM the way OAM DMA does,
// starting at OAMADDR 0. Tables longer than 256 bytes are truncated.
func (p *PPU) WriteSprites(table []byte) {
	p.WriteRegister(OAMADDR, 0)
	for i := 0; i < len(table) && i < OAMSize; i++ {
		p.WriteRegister(OAMDATA, table[i])
	}
}

// Sprite returns the OAM entry for sprite n as y, tile, attributes, x
func (p *PPU) Sprite(n int) (y, tile, attributes, x uint8) {
	if n < 0 || n >= SpriteCount {
		return 0xFF, 0, 0, 0
	}
	i := n * 4
	return p.oam[i], p.oam[i+1], p.oam[i+2], p.oam[i+3]
}

// Peek reads VRAM without touching the registers
func (p *PPU) Peek(address uint16) uint8 {
	return p.vram.Read(address)
}

// Palette returns a copy of palette RAM
func (p *PPU) Palette() [PaletteSize]uint8 {
	var palette [PaletteSize]uint8
	for i := range palette {
		palette[i] = p.vram.Read(PaletteBase + uint16(i))
	}
	return palette
}

// GetFrameBuffer returns the last rendered frame
func (p *PPU) GetFrameBuffer() [ScreenWidth * ScreenHeight]uint32 {
	return p.frameBuffer
}

// GetFrameCount returns the number of rendered frames
func (p *PPU) GetFrameCount() uint64 {
	return p.frameCount
}

// BytesWritten returns the number of bytes pushed through WriteBlock
func (p *PPU) BytesWritten() uint64 {
	return p.bytesWritten
}

// writePPUScroll handles writes to PPUSCROLL
func (p *PPU) writePPUScroll(value uint8) {
	if !p.w {
		p.t = (p.t & 0xFFE0) | (uint16(value) >> 3)
		p.x = value & 0x07
		p.w = true
	} else {
		p.t = (p.t & 0x8FFF) | ((uint16(value) & 0x07) << 12)
		p.t = (p.t & 0xFC1F) | ((uint16(value) & 0xF8) << 2)
		p.w = false
	}
}

// writePPUAddr handles writes to PPUADDR
func (p *PPU) writePPUAddr(value uint8) {
	if !p.w {
		p.t = (p.t & 0x80FF) | ((uint16(value) & 0x3F) << 8)
		p.w = true
	} else {
		p.t = (p.t & 0xFF00) | uint16(value)
		p.v = p.t
		p.w = false
	}
}

// readPPUData handles reads from PPUDATA. Reads below the palette are
// delayed by one through the read buffer.
func (p *PPU) readPPUData() uint8 {
	var data uint8
	if p.v >= PaletteBase {
		data = p.vram.Read(p.v)
		p.readBuffer = p.vram.Read(p.v & 0x2FFF)
	} else {
		data = p.readBuffer
		p.readBuffer = p.vram.Read(p.v)
	}
	p.incrementAddress()
	return data
}

// writePPUData handles writes to PPUDATA
func (p *PPU) writePPUData(value uint8) {
	p.vram.Write(p.v, value)
	p.incrementAddress()
}

func (p *PPU) incrementAddress() {
	if p.ppuCtrl&CtrlIncrement32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x3FFF
}
