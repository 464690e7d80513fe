package game

import "ringquest/internal/assets"

// Credits band and glyph layout
const (
	creditsTop    = 100
	creditsBottom = 200
	creditsLeft   = 96
	creditGlyphs  = assets.CreditRows * assets.CreditColumns

	// CreditsRest is where the last glyph of the final message stops
	CreditsRest = creditsTop + 1 + SpriteSize*assets.CreditRows - assets.CreditRows
)

// CreditsCursor is the scroll position of the credit messages: one
// vertical offset per glyph and the index of the active message.
type CreditsCursor struct {
	Offsets  [creditGlyphs]int
	Message  int
	Parked   bool
	messages [][assets.CreditRows]string
}

func newCreditsCursor(messages [][assets.CreditRows]string) CreditsCursor {
	c := CreditsCursor{messages: messages}
	c.layout()
	return c
}

// layout places the active message just below the band
func (c *CreditsCursor) layout() {
	for row := 0; row < assets.CreditRows; row++ {
		for col := 0; col < assets.CreditColumns; col++ {
			c.Offsets[row*assets.CreditColumns+col] = creditsBottom + SpriteSize + SpriteSize*row
		}
	}
}

// Last reports whether the active message is the final one
func (c *CreditsCursor) Last() bool {
	return c.Message >= len(c.messages)-1
}

func visibleCredit(offset int) bool {
	return offset >= creditsTop && offset < creditsBottom+SpriteSize
}

// scroll advances one tick and reports whether the final message came to
// rest on this tick.
func (c *CreditsCursor) scroll() bool {
	if c.Parked {
		return false
	}

	last := c.Offsets[creditGlyphs-1]
	moving := !c.Last() || last > CreditsRest
	for i, offset := range c.Offsets {
		if moving && offset >= creditsTop {
			c.Offsets[i]--
		}
	}

	if !c.Last() {
		if !visibleCredit(c.Offsets[0]) && !visibleCredit(c.Offsets[creditGlyphs-1]) {
			c.Message++
			c.layout()
		}
		return false
	}

	if c.Offsets[creditGlyphs-1] <= CreditsRest {
		c.Parked = true
		return true
	}
	return false
}

// glyph returns the character of glyph i in the active message
func (c *CreditsCursor) glyph(i int) byte {
	if c.Message >= len(c.messages) {
		return ' '
	}
	line := c.messages[c.Message][i/assets.CreditColumns]
	col := i % assets.CreditColumns
	if col >= len(line) {
		return ' '
	}
	return line[col]
}

func (t *SpriteTable) placeCredits(c *CreditsCursor) {
	for i, offset := range c.Offsets {
		n := textSprite + i
		x := creditsLeft + SpriteSize*(i%assets.CreditColumns)
		t.Set(n, x, offset, assets.GlyphTile(c.glyph(i)), assets.SpritePaletteItem)
		if !visibleCredit(offset) {
			t.Hide(n)
		}
	}
}
