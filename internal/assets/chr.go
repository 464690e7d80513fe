package assets

import (
	"sync"
)

// Tile indexes in the pattern table
const (
	TileBlank  uint8 = 0x00
	TileSolid1 uint8 = 0x01
	TileSolid2 uint8 = 0x02
	TileSolid3 uint8 = 0x03
	TileGrass  uint8 = 0x04
	TileFlower uint8 = 0x05
	TileHeart  uint8 = 0x06
	TileRule   uint8 = 0x07

	FontBase uint8 = 0x20 // glyphs live at their ASCII codes up to 0x5F

	TileGroomFront uint8 = 0x80
	TileGroomBack  uint8 = 0x90
	TileGroomLeft  uint8 = 0xA0
	TileGroomRight uint8 = 0xB0
	TileRing       uint8 = 0xC0
	TileBride      uint8 = 0xD0
)

// PatternTableSize is the size of both pattern tables
const PatternTableSize = 0x2000

// Art is a block of pixel rows using '.', '1', '2' and '3'
type Art []string

var groomFront = Art{
	"......2222......",
	".....222222.....",
	".....211112.....",
	".....121121.....",
	".....111111.....",
	"......1111......",
	"....22233222....",
	"...2222332222...",
	"...2222332222...",
	"...3222222223...",
	"...3222222223...",
	"....22222222....",
	"....222..222....",
	"....222..222....",
	"....222..222....",
	"...3333..3333...",
}

var groomBack = Art{
	"......2222......",
	".....222222.....",
	".....222222.....",
	".....222222.....",
	".....122221.....",
	"......1111......",
	"....22222222....",
	"...2222222222...",
	"...2222222222...",
	"...3222222223...",
	"...3222222223...",
	"....22222222....",
	"....222..222....",
	"....222..222....",
	"....222..222....",
	"...3333..3333...",
}

var groomLeft = Art{
	".....2222.......",
	"....222222......",
	"....1112222.....",
	"...12112222.....",
	"....1111122.....",
	".....11111......",
	".....2223222....",
	".....2223222....",
	".....2222222....",
	".....2223222....",
	"......22222.....",
	"......22222.....",
	"......22.22.....",
	"......22.22.....",
	"......22.22.....",
	".....333.333....",
}

var ringArt = Art{
	"...33...",
	"..3333..",
	"..1221..",
	".1....1.",
	"1......1",
	"1......1",
	".1....1.",
	"..1111..",
}

var brideArt = Art{
	"......3333......",
	".....333333.....",
	".....322223.....",
	".....232232.....",
	".....322223.....",
	"....11122111....",
	"...1111111111...",
	"...2111111112...",
	"...2111111112...",
	"....11111111....",
	"....11111111....",
	"...1111111111...",
	"...1111111111...",
	"..111111111111..",
	"..111111111111..",
	".11111111111111.",
}

var backgroundTiles = map[uint8]Art{
	TileGrass: {
		"........",
		"........",
		".2...2..",
		".2.2.2..",
		"..222...",
		"........",
		"........",
		"........",
	},
	TileFlower: {
		"........",
		"..1.1...",
		"...3....",
		"..1.1...",
		"...2....",
		"..22....",
		"...2....",
		"........",
	},
	TileHeart: {
		"........",
		".22.22..",
		"2222222.",
		"2222222.",
		".22222..",
		"..222...",
		"...2....",
		"........",
	},
	TileRule: {
		"........",
		"........",
		"........",
		"11111111",
		"........",
		"........",
		"........",
		"........",
	},
}

// Mirror returns the art flipped horizontally
func (a Art) Mirror() Art {
	mirrored := make(Art, len(a))
	for i, row := range a {
		b := []byte(row)
		for l, r := 0, len(b)-1; l < r; l, r = l+1, r-1 {
			b[l], b[r] = b[r], b[l]
		}
		mirrored[i] = string(b)
	}
	return mirrored
}

// sheet builds pattern table data
type sheet [PatternTableSize]byte

func (s *sheet) setPixel(tile uint8, x, y int, color uint8) {
	base := int(tile) * 16
	bit := byte(0x80) >> x
	if color&1 != 0 {
		s[base+y] |= bit
	}
	if color&2 != 0 {
		s[base+y+8] |= bit
	}
}

// draw renders art scaled by scale into consecutive tiles laid out
// row-major, widthTiles tiles per row.
func (s *sheet) draw(first uint8, art Art, scale int) {
	widthTiles := len(art[0]) * scale / 8
	for ay, row := range art {
		for ax := 0; ax < len(row); ax++ {
			color := row[ax] - '0'
			if row[ax] == '.' || color > 3 {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					px := ax*scale + dx
					py := ay*scale + dy
					tile := first + uint8((py/8)*widthTiles+px/8)
					s.setPixel(tile, px%8, py%8, color)
				}
			}
		}
	}
}

func (s *sheet) drawGlyph(c byte, glyph [7]string) {
	for y, row := range glyph {
		for x := 0; x < len(row); x++ {
			if row[x] == '#' {
				s.setPixel(c, x+1, y, 1)
			}
		}
	}
}

var (
	chrOnce sync.Once
	chrData sheet
)

// CHR returns the pattern table data. Both tables share one layout, so
// background and sprites can use either.
func CHR() []byte {
	chrOnce.Do(buildCHR)
	data := make([]byte, PatternTableSize)
	copy(data, chrData[:])
	return data
}

func buildCHR() {
	s := &chrData

	for y := 0; y < 8; y++ {
		s[int(TileSolid1)*16+y] = 0xFF
		s[int(TileSolid2)*16+y+8] = 0xFF
		s[int(TileSolid3)*16+y] = 0xFF
		s[int(TileSolid3)*16+y+8] = 0xFF
	}
	for tile, art := range backgroundTiles {
		s.draw(tile, art, 1)
	}
	for c, glyph := range font {
		s.drawGlyph(c, glyph)
	}

	s.draw(TileGroomFront, groomFront, 2)
	s.draw(TileGroomBack, groomBack, 2)
	s.draw(TileGroomLeft, groomLeft, 2)
	s.draw(TileGroomRight, groomLeft.Mirror(), 2)
	s.draw(TileRing, ringArt, 2)
	s.draw(TileBride, brideArt, 2)

	// Upper pattern table mirrors the lower one
	copy(s[0x1000:], s[:0x1000])
}
