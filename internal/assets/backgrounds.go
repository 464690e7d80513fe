package assets

import (
	"sync"

	"ringquest/internal/rle"
)

// Nametable geometry
const (
	NametableColumns = 32
	NametableRows    = 30
	NametableSize    = 1024
	attributeOffset  = 960
)

// Bride placement in tiles; she is part of the level background
const (
	BrideColumn = 26
	BrideRow    = 6
)

type nametable [NametableSize]byte

func (n *nametable) set(row, column int, tile uint8) {
	if row < 0 || row >= NametableRows || column < 0 || column >= NametableColumns {
		return
	}
	n[row*NametableColumns+column] = tile
}

func (n *nametable) text(row, column int, s string) {
	for i, t := range Text(s) {
		n.set(row, column+i, t)
	}
}

func (n *nametable) fillRow(row int, tile uint8) {
	for column := 0; column < NametableColumns; column++ {
		n.set(row, column, tile)
	}
}

// setAttribute assigns a palette to the 16x16 area holding tile (row, column)
func (n *nametable) setAttribute(row, column int, palette uint8) {
	index := attributeOffset + (row/4)*8 + column/4
	shift := ((row%4)/2)*4 + ((column%4)/2)*2
	n[index] = n[index]&^(0x03<<shift) | (palette&0x03)<<shift
}

func titleNametable() nametable {
	var n nametable
	for column := 2; column < 30; column += 2 {
		n.set(4, column, TileHeart)
		n.set(25, column, TileHeart)
	}
	n.text(10, 11, TitleText)
	n.fillRow(12, TileRule)
	n.text(20, 10, StartText)
	return n
}

func levelNametable() nametable {
	var n nametable

	// Status band with the inventory slot label
	n.text(1, 24, ItemText)
	n.fillRow(3, TileRule)

	for row := 4; row < NametableRows; row++ {
		for column := 0; column < NametableColumns; column++ {
			n.setAttribute(row, column, 1)
			switch (row*7 + column*13) % 29 {
			case 0:
				n.set(row, column, TileFlower)
			case 5, 17:
				n.set(row, column, TileGrass)
			}
		}
	}

	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			n.set(BrideRow+r, BrideColumn+c, TileBride+uint8(r*4+c))
			n.setAttribute(BrideRow+r, BrideColumn+c, 0)
		}
	}
	return n
}

func creditsNametable() nametable {
	var n nametable
	for column := 1; column < 31; column += 3 {
		n.set(2, column, TileHeart)
		n.set(28, column, TileHeart)
	}
	return n
}

func mustEncode(n nametable) []byte {
	blob, err := rle.Encode(n[:])
	if err != nil {
		panic("assets: " + err.Error())
	}
	return blob
}

var (
	backgroundsOnce sync.Once
	titleBlob       []byte
	levelBlob       []byte
	creditsBlob     []byte
)

func buildBackgrounds() {
	titleBlob = mustEncode(titleNametable())
	levelBlob = mustEncode(levelNametable())
	creditsBlob = mustEncode(creditsNametable())
}

// TitleBackground returns the compressed title nametable
func TitleBackground() []byte {
	backgroundsOnce.Do(buildBackgrounds)
	return titleBlob
}

// LevelBackground returns the compressed level nametable
func LevelBackground() []byte {
	backgroundsOnce.Do(buildBackgrounds)
	return levelBlob
}

// CreditsBackground returns the compressed credits nametable
func CreditsBackground() []byte {
	backgroundsOnce.Do(buildBackgrounds)
	return creditsBlob
}
