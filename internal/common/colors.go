package common

// ANSI color codes for terminal rendering
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"

	BgYellow = "\033[43m"
)

// TeamColors defines the color scheme for each team
var TeamColors = []string{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorCyan}

// TeamColor returns the color for team, white for unknown teams
func TeamColor(team int) string {
	if team >= 0 && team < len(TeamColors) {
		return TeamColors[team]
	}
	return ColorWhite
}

// Colorize wraps s in color when enabled
func Colorize(s, color string, enabled bool) string {
	if !enabled || color == "" {
		return s
	}
	return color + s + ColorReset
}
