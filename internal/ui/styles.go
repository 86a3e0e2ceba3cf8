package ui

import (
	"github.com/charmbracelet/lipgloss"

	"simpletodo/internal/theme"
)

const (
	boxChecked   = "[x]"
	boxUnchecked = "[ ]"
	deleteGlyph  = "✕"
)

type styles struct {
	panel        lipgloss.Style
	title        lipgloss.Style
	muted        lipgloss.Style
	accent       lipgloss.Style
	selected     lipgloss.Style
	done         lipgloss.Style
	filterOn     lipgloss.Style
	filterOff    lipgloss.Style
	noticeNormal lipgloss.Style
	noticeError  lipgloss.Style
	themeGlyph   string
}

type palette struct {
	fg, muted, accent, border, success, danger lipgloss.Color
}

var palettes = map[theme.Theme]palette{
	theme.Light: {
		fg:      lipgloss.Color("235"),
		muted:   lipgloss.Color("245"),
		accent:  lipgloss.Color("25"),
		border:  lipgloss.Color("250"),
		success: lipgloss.Color("28"),
		danger:  lipgloss.Color("160"),
	},
	theme.Dark: {
		fg:      lipgloss.Color("252"),
		muted:   lipgloss.Color("242"),
		accent:  lipgloss.Color("111"),
		border:  lipgloss.Color("238"),
		success: lipgloss.Color("42"),
		danger:  lipgloss.Color("203"),
	},
}

func newStyles(t theme.Theme) styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[theme.Light]
	}
	glyph := "☾"
	if t == theme.Dark {
		glyph = "☀"
	}
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		title:        lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		muted:        lipgloss.NewStyle().Foreground(p.muted),
		accent:       lipgloss.NewStyle().Foreground(p.accent),
		selected:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		done:         lipgloss.NewStyle().Foreground(p.muted).Strikethrough(true),
		filterOn:     lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(p.accent).Padding(0, 1),
		filterOff:    lipgloss.NewStyle().Foreground(p.muted).Padding(0, 1),
		noticeNormal: lipgloss.NewStyle().Foreground(p.success),
		noticeError:  lipgloss.NewStyle().Bold(true).Foreground(p.danger),
		themeGlyph:   glyph,
	}
}
