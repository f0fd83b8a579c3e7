// FILE: internal/display/colors.go
package display

// Terminal color codes
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"

	GreenBg = "\033[42m"
	BlackFg = "\033[30m"
	BrightW = "\033[97m"
)

// Paint wraps text in a color when enabled
func Paint(enabled bool, color, text string) string {
	if !enabled || color == "" {
		return text
	}
	return color + text + Reset
}

// Prompt returns the input prompt for the side to move
func Prompt(enabled bool, turn string) string {
	if turn == "" {
		return Paint(enabled, Yellow, "reversi") + " > "
	}
	return Paint(enabled, Yellow, "reversi") + " [" + ColorForTurn(enabled, turn) + "] > "
}

// ColorForTurn returns a colored turn indicator for "b" or "w"
func ColorForTurn(enabled bool, turn string) string {
	if turn == "w" {
		return Paint(enabled, Bold+BrightW, "White")
	}
	return Paint(enabled, Bold+Red, "Black")
}
