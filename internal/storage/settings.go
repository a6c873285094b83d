package storage

// Settings is the persisted viewer configuration. Every change is written
// through immediately; there is no explicit save step.
type Settings struct {
	Columns     int    `json:"columns"`
	AspectRatio string `json:"aspectRatio"`
	Theme       string `json:"theme"`
	ShowNSFW    bool   `json:"showNSFW"`
}

const (
	AspectSquare    = "square"
	AspectPortrait  = "portrait"
	AspectLandscape = "landscape"
	AspectAuto      = "auto"

	ThemeDark  = "dark"
	ThemeLight = "light"

	MinColumns = 2
	MaxColumns = 6
)

func DefaultSettings() Settings {
	return Settings{
		Columns:     4,
		AspectRatio: AspectSquare,
		Theme:       ThemeDark,
		ShowNSFW:    false,
	}
}

// Normalize clamps out-of-range values back to usable ones so a corrupted
// or hand-edited store never breaks rendering.
func (s Settings) Normalize() Settings {
	if s.Columns < MinColumns {
		s.Columns = MinColumns
	}
	if s.Columns > MaxColumns {
		s.Columns = MaxColumns
	}
	switch s.AspectRatio {
	case AspectSquare, AspectPortrait, AspectLandscape, AspectAuto:
	default:
		s.AspectRatio = AspectSquare
	}
	switch s.Theme {
	case ThemeDark, ThemeLight:
	default:
		s.Theme = ThemeDark
	}
	return s
}
