package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// stickerColors maps a face letter to the colour of its centre on a
// standard cube.
var stickerColors = map[byte]lipgloss.Color{
	'U': lipgloss.Color("255"), // white
	'R': lipgloss.Color("196"), // red
	'F': lipgloss.Color("34"),  // green
	'D': lipgloss.Color("226"), // yellow
	'L': lipgloss.Color("208"), // orange
	'B': lipgloss.Color("27"),  // blue
}

func sticker(c byte) string {
	color, ok := stickerColors[c]
	if !ok {
		return "  "
	}
	return lipgloss.NewStyle().Background(color).Render("  ")
}

// renderNet draws a URFDLB facelet string as a coloured unfolded net:
//
//	   U
//	 L F R B
//	   D
func renderNet(facelets string) string {
	if len(facelets) != 54 {
		return errorStyle.Render("invalid facelet string")
	}
	// Face offsets in URFDLB order.
	const (
		faceU = iota
		faceR
		faceF
		faceD
		faceL
		faceB
	)
	row := func(face, r int) string {
		var b strings.Builder
		for col := 0; col < 3; col++ {
			b.WriteString(sticker(facelets[9*face+3*r+col]))
		}
		return b.String()
	}
	pad := strings.Repeat(" ", 6)

	var b strings.Builder
	for r := 0; r < 3; r++ {
		b.WriteString(pad + row(faceU, r) + "\n")
	}
	for r := 0; r < 3; r++ {
		b.WriteString(row(faceL, r) + row(faceF, r) + row(faceR, r) + row(faceB, r) + "\n")
	}
	for r := 0; r < 3; r++ {
		b.WriteString(pad + row(faceD, r) + "\n")
	}
	return b.String()
}
