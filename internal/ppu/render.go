package ppu

// SpritePixel represents a rendered pixel from background or sprite
type SpritePixel struct {
	colorIndex  uint8  // 0-3, where 0 is transparent
	rgbColor    uint32 // final RGB color
	spriteIndex int8   // which sprite, or -1 for background
	priority    bool   // true = behind background
	transparent bool
}

var transparentPixel = SpritePixel{spriteIndex: -1, transparent: true}

// Render draws the whole frame from the current VRAM and OAM contents
// into the frame buffer.
func (p *PPU) Render() {
	backdrop := NESColorToRGB(p.vram.Read(PaletteBase))

	if !p.RenderingEnabled() {
		for i := range p.frameBuffer {
			p.frameBuffer[i] = backdrop
		}
		p.frameCount++
		return
	}

	p.ppuStatus &^= statusOverflow

	var line [SpritesPerScanline]int
	for y := 0; y < ScreenHeight; y++ {
		count := p.evaluateSprites(y, &line)

		row := y * ScreenWidth
		for x := 0; x < ScreenWidth; x++ {
			background := p.renderBackgroundPixel(x, y)
			sprite := p.renderSpritePixel(x, y, line[:count])
			p.frameBuffer[row+x] = p.compositeFinalPixel(background, sprite, backdrop)
		}
	}

	p.frameCount++
	p.ppuStatus |= statusVBlank
}

// evaluateSprites collects up to eight sprites covering scanline y in OAM
// order. Extra sprites set the overflow flag and are not drawn.
func (p *PPU) evaluateSprites(y int, line *[SpritesPerScanline]int) int {
	count := 0
	for n := 0; n < SpriteCount; n++ {
		top := int(p.oam[n*4]) + 1
		if y < top || y >= top+8 {
			continue
		}
		if count == SpritesPerScanline {
			p.ppuStatus |= statusOverflow
			break
		}
		line[count] = n
		count++
	}
	return count
}

// renderBackgroundPixel renders the background pixel at screen (x, y)
// using the scroll origin held in t and fine x.
func (p *PPU) renderBackgroundPixel(pixelX, pixelY int) SpritePixel {
	if p.ppuMask&MaskBackground == 0 {
		return transparentPixel
	}
	if pixelX < 8 && p.ppuMask&MaskBackgroundLeft == 0 {
		return transparentPixel
	}

	scrollX := int(p.t&0x001F)<<3 + int(p.x)
	scrollY := int((p.t>>5)&0x001F)<<3 + int((p.t>>12)&0x0007)
	nametable := uint16((p.t >> 10) & 0x0003)

	worldX := pixelX + scrollX
	worldY := pixelY + scrollY
	if worldX >= ScreenWidth {
		worldX -= ScreenWidth
		nametable ^= 1
	}
	if worldY >= ScreenHeight {
		worldY -= ScreenHeight
		nametable ^= 2
	}

	tileX := uint16(worldX / 8)
	tileY := uint16(worldY / 8)
	base := NametableBase + nametable*0x400

	tileIndex := p.vram.Read(base + tileY*32 + tileX)

	attribute := p.vram.Read(base + 0x3C0 + (tileY/4)*8 + tileX/4)
	shift := ((tileY%4)/2)*4 + ((tileX%4)/2)*2
	paletteIndex := (attribute >> shift) & 0x03

	var patternBase uint16
	if p.ppuCtrl&CtrlBackgroundHigh != 0 {
		patternBase = 0x1000
	}
	colorIndex := p.patternPixel(patternBase, tileIndex, worldX%8, worldY%8)
	if colorIndex == 0 {
		return transparentPixel
	}

	nesColor := p.vram.Read(PaletteBase + uint16(paletteIndex)*4 + uint16(colorIndex))
	return SpritePixel{
		colorIndex:  colorIndex,
		rgbColor:    NESColorToRGB(nesColor),
		spriteIndex: -1,
	}
}

// renderSpritePixel returns the first opaque sprite pixel at (x, y) among
// the sprites evaluated for this scanline. Lower OAM index wins.
func (p *PPU) renderSpritePixel(pixelX, pixelY int, sprites []int) SpritePixel {
	if p.ppuMask&MaskSprites == 0 {
		return transparentPixel
	}
	if pixelX < 8 && p.ppuMask&MaskSpritesLeft == 0 {
		return transparentPixel
	}

	var patternBase uint16
	if p.ppuCtrl&CtrlSpritePatternHigh != 0 {
		patternBase = 0x1000
	}

	for _, n := range sprites {
		i := n * 4
		spriteY := int(p.oam[i]) + 1
		tileIndex := p.oam[i+1]
		attributes := p.oam[i+2]
		spriteX := int(p.oam[i+3])

		if pixelX < spriteX || pixelX >= spriteX+8 {
			continue
		}

		col := pixelX - spriteX
		row := pixelY - spriteY
		if attributes&0x40 != 0 {
			col = 7 - col
		}
		if attributes&0x80 != 0 {
			row = 7 - row
		}

		colorIndex := p.patternPixel(patternBase, tileIndex, col, row)
		if colorIndex == 0 {
			continue
		}

		paletteIndex := attributes & 0x03
		nesColor := p.vram.Read(PaletteBase + 0x10 + uint16(paletteIndex)*4 + uint16(colorIndex))
		return SpritePixel{
			colorIndex:  colorIndex,
			rgbColor:    NESColorToRGB(nesColor),
			spriteIndex: int8(n),
			priority:    attributes&0x20 != 0,
		}
	}

	return transparentPixel
}

// patternPixel decodes one 2-bit pixel from a pattern table tile
func (p *PPU) patternPixel(base uint16, tileIndex uint8, col, row int) uint8 {
	address := base + uint16(tileIndex)*16 + uint16(row)
	low := p.vram.Read(address)
	high := p.vram.Read(address + 8)

	shift := 7 - col
	return ((high>>shift)&1)<<1 | (low>>shift)&1
}

// compositeFinalPixel combines background and sprite pixels according to priority
func (p *PPU) compositeFinalPixel(background, sprite SpritePixel, backdrop uint32) uint32 {
	switch {
	case sprite.transparent && background.transparent:
		return backdrop
	case sprite.transparent:
		return background.rgbColor
	case background.transparent:
		return sprite.rgbColor
	case sprite.priority:
		return background.rgbColor
	default:
		return sprite.rgbColor
	}
}
