package assets

// Credit layout
const (
	CreditRows    = 4
	CreditColumns = 8
)

// CreditMessages are the scrolling credit screens, four rows of eight
// characters each.
var CreditMessages = [][CreditRows]string{
	{"CONGRATS", "LILIBET ", "  AND   ", "PHILIP! "},
	{"MAY YOUR", "LIFE BE ", "FULL OF ", " LOVE.  "},
	{"NOW YOUR", "  TRUE  ", " QUEST  ", "BEGINS! "},
}

// Overlay text
const (
	WinText   = "YES!"
	DateText  = "NOV. 20 1947"
	TitleText = "RING QUEST"
	StartText = "PRESS START"
	ItemText  = "ITEM"
)

// Text positions as nametable row and column
const (
	WinRow    = 12
	WinColumn = 14

	DateRow    = 27
	DateColumn = 10
)

// NametableAddress returns the VRAM address of a tile in the first
// nametable.
func NametableAddress(row, column int) uint16 {
	return 0x2000 + uint16(row)*32 + uint16(column)
}
