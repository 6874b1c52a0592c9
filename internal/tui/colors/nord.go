package colors

import "github.com/charmbracelet/lipgloss"

// Nord color palette
var (
	// Polar Night (backgrounds)
	Nord0 = lipgloss.Color("#2e3440") // Darkest background
	Nord1 = lipgloss.Color("#3b4252") // Elevated background
	Nord2 = lipgloss.Color("#434c5e") // Selection background
	Nord3 = lipgloss.Color("#4c566a") // Comments, subtle UI

	// Snow Storm (foregrounds)
	Nord4 = lipgloss.Color("#d8dee9") // Main text
	Nord5 = lipgloss.Color("#e5e9f0") // Brighter text
	Nord6 = lipgloss.Color("#eceff4") // Brightest text

	// Frost (primary accents)
	Nord7  = lipgloss.Color("#8fbcbb") // Calm teal
	Nord8  = lipgloss.Color("#88c0d0") // Primary accent
	Nord9  = lipgloss.Color("#81a1c1") // Secondary accent
	Nord10 = lipgloss.Color("#5e81ac") // Tertiary accent

	// Aurora (semantic colors)
	Nord11 = lipgloss.Color("#bf616a") // Red, errors
	Nord12 = lipgloss.Color("#d08770") // Orange, warnings
	Nord13 = lipgloss.Color("#ebcb8b") // Yellow, attention
	Nord14 = lipgloss.Color("#a3be8c") // Green, success
	Nord15 = lipgloss.Color("#b48ead") // Purple, highlights
)

// Semantic aliases so components read by intent rather than palette index.
var (
	Base      = Nord0
	Surface   = Nord1
	Selection = Nord2
	Muted     = Nord3
	Text      = Nord4
	Subtle    = Nord4
	Accent    = Nord8
	Secondary = Nord9
	Success   = Nord14
	Warning   = Nord13
	Error     = Nord11
	Highlight = Nord15
)
