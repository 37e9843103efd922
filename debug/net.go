package debug

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/charmbracelet/lipgloss"
)

var cellStyles = func() [6]lipgloss.Style {
	var styles [6]lipgloss.Style
	for c := cube.White; c <= cube.Orange; c++ {
		rgb := c.RGB()
		hex := fmt.Sprintf("#%02x%02x%02x", int(rgb[0]*255), int(rgb[1]*255), int(rgb[2]*255))
		styles[c] = lipgloss.NewStyle().
			Background(lipgloss.Color(hex)).
			Foreground(lipgloss.Color("#111111")).
			Bold(true)
	}
	return styles
}()

func cell(c cube.Color) string {
	if int(c) >= len(cellStyles) {
		return " ? "
	}
	return cellStyles[c].Render(" " + c.String() + " ")
}

func faceRow(s cube.State, f cube.Face, r int) string {
	var b strings.Builder
	for c := range 3 {
		b.WriteString(cell(s.Facelet(f, r*3+c)))
	}
	return b.String()
}

// RenderNet draws the cube unfolded as a cross with U on top, L F R B in the middle and D below.
func RenderNet(s cube.State) string {
	pad := strings.Repeat(" ", 10)
	var b strings.Builder
	for r := range 3 {
		b.WriteString(pad + faceRow(s, cube.FaceU, r) + "\n")
	}
	for r := range 3 {
		for i, f := range []cube.Face{cube.FaceL, cube.FaceF, cube.FaceR, cube.FaceB} {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(faceRow(s, f, r))
		}
		b.WriteByte('\n')
	}
	for r := range 3 {
		b.WriteString(pad + faceRow(s, cube.FaceD, r) + "\n")
	}
	return b.String()
}
