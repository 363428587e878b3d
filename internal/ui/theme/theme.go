// Package theme is the SpeakFlow palette and the shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette: lantern red and jade on dark ink.
var (
	Primary   = lipgloss.Color("#E11D48")
	Secondary = lipgloss.Color("#10B981")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#111827")
	BgCard    = lipgloss.Color("#1F2937")
	Border    = lipgloss.Color("#374151")
)

// Tones colors pinyin by Mandarin tone. Index 0 is the neutral tone.
var Tones = [5]color.Color{
	TextDim,
	lipgloss.Color("#F87171"),
	lipgloss.Color("#FBBF24"),
	lipgloss.Color("#34D399"),
	lipgloss.Color("#60A5FA"),
}

var (
	Title    = lipgloss.NewStyle().Foreground(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	// Target is the Chinese text being practiced.
	Target      = lipgloss.NewStyle().Foreground(Text).Bold(true)
	Pinyin      = lipgloss.NewStyle().Foreground(Secondary)
	Translation = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
)

var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Locked     = lipgloss.NewStyle().Foreground(TextDim)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

var (
	UserBubble = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Padding(0, 1)
	AssistantBubble = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)
	// AssistantSelected marks the bubble picked for replay.
	AssistantSelected = AssistantBubble.BorderForeground(Accent)
)

var (
	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	ButtonActive   = lipgloss.NewStyle().Foreground(Text).Background(Primary).Bold(true).Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().Foreground(TextDim).Background(BgCard).Padding(0, 2)
)
