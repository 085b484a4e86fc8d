package board

import (
	"fmt"
	"strings"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[1;31m"
	colorGreen  = "\033[1;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[1;34m"
	colorCyan   = "\033[1;36m"
)

func paint(sb *strings.Builder, colors bool, color, text string) {
	if !colors || color == "" {
		sb.WriteString(text)
		return
	}
	sb.WriteString(color)
	sb.WriteString(text)
	sb.WriteString(colorReset)
}

// ToDisplayText renders the board with column letters and row numbers.
// Squares in moves are marked with "~" and the disk at last is highlighted.
// colors turns ANSI terminal colors on.
func (b Board) ToDisplayText(moves, last Bitboard, colors bool) string {
	var sb strings.Builder
	paint(&sb, colors, colorGreen, "  a b c d e f g h\n")
	for y := 0; y < Dim; y++ {
		paint(&sb, colors, colorGreen, fmt.Sprintf("%d ", y+1))
		for x := 0; x < Dim; x++ {
			switch b.SquareAt(x, y) {
			case BlackDisk:
				c := colorBlue
				if last.Contains(x, y) {
					c = colorRed
				}
				paint(&sb, colors, c, "X ")
			case WhiteDisk:
				c := colorCyan
				if last.Contains(x, y) {
					c = colorRed
				}
				paint(&sb, colors, c, "O ")
			default:
				if moves.Contains(x, y) {
					paint(&sb, colors, colorYellow, "~ ")
				} else {
					sb.WriteString("- ")
				}
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
