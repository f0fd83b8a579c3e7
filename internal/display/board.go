// FILE: internal/display/board.go
package display

import (
	"io"
	"strings"
)

// RenderBoard writes an ASCII board as produced by reversi.Board.ToASCII.
// With color enabled stones and legal-move marks are painted on a green
// felt and the coordinate labels are cyan.
func RenderBoard(w io.Writer, asciiBoard string, color bool) {
	lines := strings.Split(asciiBoard, "\n")

	var sb strings.Builder
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		isLabelLine := i == 0 || i == len(lines)-1

		if !color {
			sb.WriteString(line)
			sb.WriteByte('\n')
			continue
		}

		for _, ch := range line {
			switch {
			case isLabelLine && ch >= 'a' && ch <= 'h':
				sb.WriteString(Cyan + string(ch) + Reset)
			case ch >= '1' && ch <= '8':
				sb.WriteString(Cyan + string(ch) + Reset)
			case ch == 'B':
				sb.WriteString(GreenBg + BlackFg + Bold + "●" + Reset)
			case ch == 'W':
				sb.WriteString(GreenBg + BrightW + Bold + "●" + Reset)
			case ch == '*':
				sb.WriteString(GreenBg + Yellow + "·" + Reset)
			case ch == '.':
				sb.WriteString(GreenBg + " " + Reset)
			default:
				sb.WriteRune(ch)
			}
		}
		sb.WriteByte('\n')
	}

	io.WriteString(w, sb.String())
}
