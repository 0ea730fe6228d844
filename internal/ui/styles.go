package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/icarus-itcs/lazydroid/internal/device"
)

// Android brand colors
var (
	// Primary colors - Android green
	droidGreen = lipgloss.Color("#3DDC84")
	droidMint  = lipgloss.Color("#A4F5C8")
	droidDark  = lipgloss.Color("#121A16")
	droidLight = lipgloss.Color("#ECEDEE")
	droidGray  = lipgloss.Color("#4A4A5A")

	// Status colors
	successColor = lipgloss.Color("#4ADE80")
	errorColor   = lipgloss.Color("#F87171")
	warnColor    = lipgloss.Color("#FBBF24")
	mutedColor   = lipgloss.Color("#64748B")

	// Device kind colors
	deviceColor   = lipgloss.Color("#0A84FF")
	emulatorColor = lipgloss.Color("#F97316")
)

// LogoCompact returns a compact inline logo for the header
func LogoCompact() string {
	bot := lipgloss.NewStyle().Foreground(droidGreen).Bold(true).Render("◢◣")
	name := lipgloss.NewStyle().Foreground(droidLight).Bold(true).Render("lazydroid")
	return bot + " " + name
}

// Styles
var (
	// Project name in header
	projectStyle = lipgloss.NewStyle().
			Foreground(droidMint)

	// Section titles
	titleStyle = lipgloss.NewStyle().
			Foreground(droidGreen).
			Bold(true).
			MarginBottom(1)

	// Active pane border
	activePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(droidGreen).
			Padding(1, 2)

	// Inactive pane border
	inactivePaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(droidGray).
				Padding(1, 2)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor)

	failedStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// Log pane
	logPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(droidGray).
			Padding(0, 1)

	activeLogPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(droidGreen).
				Padding(0, 1)

	logEmptyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Help bar
	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(droidMint).
			Bold(true)

	// Badges
	deviceBadge = lipgloss.NewStyle().
			Foreground(deviceColor).
			Bold(true)

	emulatorBadge = lipgloss.NewStyle().
			Foreground(emulatorColor).
			Bold(true)

	// Muted text
	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Error
	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(warnColor)

	// Tab styles for settings categories
	activeTabStyle = lipgloss.NewStyle().
			Foreground(droidDark).
			Background(droidGreen).
			Padding(0, 1).
			MarginRight(1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(droidLight).
				Background(droidGray).
				Padding(0, 1).
				MarginRight(1)

	// Form field labels
	labelStyle = lipgloss.NewStyle().
			Foreground(droidLight).
			Width(12)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(droidGreen).
				Bold(true).
				Width(12)
)

// KindBadge returns the styled device kind
func KindBadge(d device.Device) string {
	if d.IsEmulator() {
		return emulatorBadge.Render("emu")
	}
	return deviceBadge.Render("dev")
}
