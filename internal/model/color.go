package model

import "math/rand"

// NoteColor is the paper color of a note
type NoteColor string

// Palette of note colors
const (
	ColorYellow NoteColor = "yellow"
	ColorPink   NoteColor = "pink"
	ColorBlue   NoteColor = "blue"
	ColorGreen  NoteColor = "green"
	ColorPurple NoteColor = "purple"
	ColorOrange NoteColor = "orange"
)

// ColorTokens holds the display colors used to draw a note
type ColorTokens struct {
	Paper     string `json:"paper"`
	PaperDark string `json:"paperDark"`
	Lines     string `json:"lines"`
	Border    string `json:"border"`
}

// Colors lists every palette value in display order
var Colors = [...]NoteColor{
	ColorYellow,
	ColorPink,
	ColorBlue,
	ColorGreen,
	ColorPurple,
	ColorOrange,
}

// colorIndex maps a palette value to its row in colorTable
var colorIndex = map[NoteColor]int{
	ColorYellow: 0,
	ColorPink:   1,
	ColorBlue:   2,
	ColorGreen:  3,
	ColorPurple: 4,
	ColorOrange: 5,
}

// colorTable holds one row per entry of Colors, in the same order
var colorTable = [...]ColorTokens{
	{Paper: "#fef3c7", PaperDark: "#fde68a", Lines: "#d97706", Border: "#f59e0b"},
	{Paper: "#fce7f3", PaperDark: "#fbcfe8", Lines: "#db2777", Border: "#ec4899"},
	{Paper: "#dbeafe", PaperDark: "#bfdbfe", Lines: "#2563eb", Border: "#3b82f6"},
	{Paper: "#dcfce7", PaperDark: "#bbf7d0", Lines: "#16a34a", Border: "#22c55e"},
	{Paper: "#f3e8ff", PaperDark: "#e9d5ff", Lines: "#9333ea", Border: "#a855f7"},
	{Paper: "#ffedd5", PaperDark: "#fed7aa", Lines: "#ea580c", Border: "#f97316"},
}

// Compile-time check that colorTable and Colors have the same length
var (
	_ [len(colorTable) - len(Colors)]struct{}
	_ [len(Colors) - len(colorTable)]struct{}
)

// Valid reports whether c is part of the palette
func (c NoteColor) Valid() bool {
	_, ok := colorIndex[c]
	return ok
}

// Tokens returns the display colors for c. Values outside the palette get
// the yellow tokens.
func (c NoteColor) Tokens() ColorTokens {
	if i, ok := colorIndex[c]; ok {
		return colorTable[i]
	}
	return colorTable[0]
}

// RandomColor picks a palette value
func RandomColor() NoteColor {
	return Colors[rand.Intn(len(Colors))]
}
