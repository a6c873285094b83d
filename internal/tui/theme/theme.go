package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/griddit/internal/media"
	"github.com/glabrego/griddit/internal/storage"
)

type Theme struct {
	Title     lipgloss.Style
	ModePill  lipgloss.Style
	Section   lipgloss.Style
	MetaLabel lipgloss.Style
	MetaValue lipgloss.Style
	StateIdle lipgloss.Style
	StateWarn lipgloss.Style
	StateLoad lipgloss.Style

	Card       lipgloss.Style
	CardActive lipgloss.Style
	CardTitle  lipgloss.Style
	NSFWMask   lipgloss.Style

	BadgeVideo   lipgloss.Style
	BadgeGif     lipgloss.Style
	BadgeNSFW    lipgloss.Style
	BadgeGallery lipgloss.Style

	DotActive lipgloss.Style
	DotIdle   lipgloss.Style
}

// ForName picks the palette matching the stored theme preference.
// Unknown names fall back to dark.
func ForName(name string) Theme {
	if name == storage.ThemeLight {
		return Light()
	}
	return Dark()
}

func Dark() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")
	cpSurface1 := lipgloss.Color("#45475a")

	return build(palette{
		title:    cpMauve,
		pill:     cpLavender,
		pillBg:   cpSurface0,
		section:  cpTeal,
		label:    cpOverlay1,
		value:    cpSubtext1,
		idle:     cpGreen,
		warn:     cpRed,
		load:     cpPeach,
		text:     cpText,
		border:   cpSurface1,
		active:   cpMauve,
		video:    cpRed,
		gif:      cpYellow,
		nsfw:     cpRed,
		gallery:  cpTeal,
		dot:      cpLavender,
		dotFaint: cpOverlay1,
		maskBg:   cpSurface0,
	})
}

func Light() Theme {
	ltMauve := lipgloss.Color("#8839ef")
	ltRed := lipgloss.Color("#d20f39")
	ltPeach := lipgloss.Color("#fe640b")
	ltYellow := lipgloss.Color("#df8e1d")
	ltGreen := lipgloss.Color("#40a02b")
	ltTeal := lipgloss.Color("#179299")
	ltLavender := lipgloss.Color("#7287fd")
	ltText := lipgloss.Color("#4c4f69")
	ltSubtext1 := lipgloss.Color("#5c5f77")
	ltOverlay1 := lipgloss.Color("#8c8fa1")
	ltSurface0 := lipgloss.Color("#ccd0da")
	ltSurface1 := lipgloss.Color("#bcc0cc")

	return build(palette{
		title:    ltMauve,
		pill:     ltLavender,
		pillBg:   ltSurface0,
		section:  ltTeal,
		label:    ltOverlay1,
		value:    ltSubtext1,
		idle:     ltGreen,
		warn:     ltRed,
		load:     ltPeach,
		text:     ltText,
		border:   ltSurface1,
		active:   ltMauve,
		video:    ltRed,
		gif:      ltYellow,
		nsfw:     ltRed,
		gallery:  ltTeal,
		dot:      ltLavender,
		dotFaint: ltOverlay1,
		maskBg:   ltSurface0,
	})
}

type palette struct {
	title, pill, pillBg, section, label, value lipgloss.Color
	idle, warn, load, text, border, active     lipgloss.Color
	video, gif, nsfw, gallery, dot, dotFaint   lipgloss.Color
	maskBg                                     lipgloss.Color
}

func build(p palette) Theme {
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(p.title),
		ModePill:  lipgloss.NewStyle().Foreground(p.pill).Background(p.pillBg).Padding(0, 1),
		Section:   lipgloss.NewStyle().Bold(true).Foreground(p.section),
		MetaLabel: lipgloss.NewStyle().Foreground(p.label),
		MetaValue: lipgloss.NewStyle().Foreground(p.value),
		StateIdle: lipgloss.NewStyle().Foreground(p.idle),
		StateWarn: lipgloss.NewStyle().Foreground(p.warn),
		StateLoad: lipgloss.NewStyle().Foreground(p.load),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border),
		CardActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.active),
		CardTitle: lipgloss.NewStyle().Foreground(p.text),
		NSFWMask:  lipgloss.NewStyle().Foreground(p.warn).Background(p.maskBg).Bold(true),

		BadgeVideo:   badge.Foreground(p.video),
		BadgeGif:     badge.Foreground(p.gif),
		BadgeNSFW:    badge.Foreground(p.nsfw),
		BadgeGallery: badge.Foreground(p.gallery),

		DotActive: lipgloss.NewStyle().Foreground(p.dot).Bold(true),
		DotIdle:   lipgloss.NewStyle().Foreground(p.dotFaint),
	}
}

// StyleBadge renders the type badge for a media item, or "" for plain
// images.
func (t Theme) StyleBadge(item media.Item) string {
	switch item.Type {
	case media.TypeVideo:
		return t.BadgeVideo.Render("VIDEO")
	case media.TypeGIF:
		return t.BadgeGif.Render("GIF")
	default:
		return ""
	}
}

func (t Theme) CardBorder(active bool) lipgloss.Style {
	if active {
		return t.CardActive
	}
	return t.Card
}
