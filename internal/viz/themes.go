package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Bodies  lipgloss.Color
	Title   lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Muted   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
	Alert   lipgloss.Color
}

var (
	ThemeMinimal = Theme{
		Name:    "minimal",
		Bodies:  lipgloss.Color("#ffffff"),
		Title:   lipgloss.Color("#ffffff"),
		Label:   lipgloss.Color("#888888"),
		Value:   lipgloss.Color("#dddddd"),
		Muted:   lipgloss.Color("#555555"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffaa00"),
		Alert:   lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Bodies:  lipgloss.Color("#00ff00"),
		Title:   lipgloss.Color("#88ff88"),
		Label:   lipgloss.Color("#00aa00"),
		Value:   lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Running: lipgloss.Color("#88ff88"),
		Paused:  lipgloss.Color("#ffff00"),
		Alert:   lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Bodies:  lipgloss.Color("#00a8cc"),
		Title:   lipgloss.Color("#e0f0ff"),
		Label:   lipgloss.Color("#4488aa"),
		Value:   lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#335577"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffcc00"),
		Alert:   lipgloss.Color("#ff4444"),
	}

	CurrentTheme = ThemeMinimal

	Themes = []Theme{
		ThemeMinimal,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
