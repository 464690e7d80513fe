package game

import "ringquest/internal/assets"

// SpriteTableSize is the size of the sprite attribute table
const SpriteTableSize = 256

// OffscreenY parks a sprite below the visible lines
const OffscreenY uint8 = 0xF0

// Sprite slots
const (
	playerSprite  = 0
	playerSprites = 16
	ringSprite    = playerSprite + playerSprites
	ringSprites   = 4
	textSprite    = ringSprite + ringSprites
	textSprites   = assets.CreditRows * assets.CreditColumns
)

// SpriteTable is the sprite attribute table uploaded every frame: four
// bytes per sprite holding Y, tile, attributes and X.
type SpriteTable [SpriteTableSize]byte

// Set writes sprite n
func (t *SpriteTable) Set(n, x, y int, tile, attributes uint8) {
	i := n * 4
	t[i] = uint8(y)
	t[i+1] = tile
	t[i+2] = attributes
	t[i+3] = uint8(x)
}

// Hide parks sprite n off-screen
func (t *SpriteTable) Hide(n int) {
	t[n*4] = OffscreenY
}

// HideAll parks every sprite off-screen
func (t *SpriteTable) HideAll() {
	for n := 0; n < SpriteTableSize/4; n++ {
		t.Hide(n)
	}
}

// Y returns the Y byte of sprite n
func (t *SpriteTable) Y(n int) uint8 { return t[n*4] }

// Tile returns the tile of sprite n
func (t *SpriteTable) Tile(n int) uint8 { return t[n*4+1] }

// Attributes returns the attribute byte of sprite n
func (t *SpriteTable) Attributes(n int) uint8 { return t[n*4+2] }

// X returns the X byte of sprite n
func (t *SpriteTable) X(n int) uint8 { return t[n*4+3] }

// placePlayer lays the 4x4 groom sprites out from the player position.
// The top two rows use the upper palette.
func (t *SpriteTable) placePlayer(p Player) {
	base := p.Facing.Tile()
	for row := 0; row < 4; row++ {
		attributes := assets.SpritePaletteGroomLower
		if row < 2 {
			attributes = assets.SpritePaletteGroomUpper
		}
		for col := 0; col < 4; col++ {
			i := row*4 + col
			t.Set(playerSprite+i, p.X+col*SpriteSize, p.Y+row*SpriteSize, base+uint8(i), attributes)
		}
	}
}

func (t *SpriteTable) placeRing(pos Point) {
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			i := row*2 + col
			t.Set(ringSprite+i, pos.X+col*SpriteSize, pos.Y+row*SpriteSize, assets.TileRing+uint8(i), assets.SpritePaletteItem)
		}
	}
}
