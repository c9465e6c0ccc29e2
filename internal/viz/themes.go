package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/geodesic/internal/render"
)

// Theme pairs the UI colors with the pixel palette used for frames.
type Theme struct {
	Name    string
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Palette render.Palette
}

var (
	ThemeEmber = Theme{
		Name:    "ember",
		Accent:  lipgloss.Color("#ff9a3c"),
		Text:    lipgloss.Color("#f5f0e8"),
		Muted:   lipgloss.Color("#6b5a4a"),
		Palette: render.DefaultPalette,
	}

	ThemeIce = Theme{
		Name:   "ice",
		Accent: lipgloss.Color("#7fd4ff"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Palette: render.Palette{
			Hole:  0xFF000000,
			Disk:  0xFF7FD4FF,
			Sky:   0xFF001A33,
			Error: 0xFFFF4444,
		},
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Accent: lipgloss.Color("#00ff00"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Palette: render.Palette{
			Hole:  0xFF000000,
			Disk:  0xFF00FF00,
			Sky:   0xFF001100,
			Error: 0xFFFFFF00,
		},
	}

	ThemeMono = Theme{
		Name:   "mono",
		Accent: lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Palette: render.Palette{
			Hole:  0xFF000000,
			Disk:  0xFFE0E0E0,
			Sky:   0xFF303030,
			Error: 0xFFFF0000,
		},
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Accent: lipgloss.Color("#ff6b6b"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Palette: render.Palette{
			Hole:  0xFF0A0008,
			Disk:  0xFFFECA57,
			Sky:   0xFF2D1B2E,
			Error: 0xFF5FD068,
		},
	}

	Themes = []Theme{
		ThemeEmber,
		ThemeIce,
		ThemeRetro,
		ThemeMono,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to ember.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEmber
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}
