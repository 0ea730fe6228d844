package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/icarus-itcs/lazydroid/internal/settings"
)

const settingsValueWidth = 36

func (m *Model) saveSettings() {
	if err := m.settings.Save(); err != nil {
		m.setStatus("Save failed: " + err.Error())
	}
}

func (m Model) currentSetting() settings.Setting {
	return settings.GetCategories()[m.settingsCategory].Settings[m.settingsCursor]
}

// moveSetting steps the cursor by delta, crossing into neighbouring categories
func (m *Model) moveSetting(delta int) {
	categories := settings.GetCategories()
	cursor := m.settingsCursor + delta
	switch {
	case cursor < 0 && m.settingsCategory > 0:
		m.settingsCategory--
		cursor = len(categories[m.settingsCategory].Settings) - 1
	case cursor >= len(categories[m.settingsCategory].Settings) && m.settingsCategory < len(categories)-1:
		m.settingsCategory++
		cursor = 0
	}
	m.settingsCursor = max(0, min(cursor, len(categories[m.settingsCategory].Settings)-1))
}

func (m *Model) switchCategory(delta int) {
	n := len(settings.GetCategories())
	if c := m.settingsCategory + delta; c >= 0 && c < n {
		m.settingsCategory = c
		m.settingsCursor = 0
	}
}

func (m Model) handleSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.gracefulShutdown()
		return m, tea.Quit
	}

	if m.editingSetting {
		return m.handleSettingEdit(msg)
	}

	switch msg.String() {
	case "q":
		return m.quit(msg)
	case "esc", ",":
		m.showSettings = false
	case "up", "k":
		m.moveSetting(-1)
	case "down", "j":
		m.moveSetting(1)
	case "left", "h":
		m.switchCategory(-1)
	case "right", "l":
		m.switchCategory(1)
	case "enter", " ":
		return m.changeSetting()
	}
	return m, nil
}

func (m Model) changeSetting() (tea.Model, tea.Cmd) {
	s := m.currentSetting()
	switch s.Type {
	case "bool":
		m.settings.ToggleBool(s.Key)
		m.setStatus(fmt.Sprintf("%s: %v", s.Name, m.settings.GetBool(s.Key)))
	case "choice":
		m.setStatus(fmt.Sprintf("%s: %s", s.Name, m.settings.CycleChoice(s.Key, s.Choices)))
	case "string":
		m.editingSetting = true
		m.settingInput.SetValue(m.settings.GetString(s.Key))
		m.settingInput.CursorEnd()
		return m, m.settingInput.Focus()
	default:
		return m, nil
	}
	m.saveSettings()
	return m, nil
}

func (m Model) handleSettingEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editingSetting = false
		m.settingInput.Blur()
		return m, nil
	case "enter":
		s := m.currentSetting()
		value := strings.TrimSpace(m.settingInput.Value())
		m.settings.SetString(s.Key, value)
		m.editingSetting = false
		m.settingInput.Blur()
		m.setStatus(fmt.Sprintf("%s: %s", s.Name, value))
		m.saveSettings()
		return m, nil
	}
	var cmd tea.Cmd
	m.settingInput, cmd = m.settingInput.Update(msg)
	return m, cmd
}

// settingValue formats the stored value of s for the panel
func (m *Model) settingValue(s settings.Setting) (string, lipgloss.Style) {
	switch s.Type {
	case "bool":
		if m.settings.GetBool(s.Key) {
			return "✓ on", successStyle
		}
		return "○ off", mutedStyle
	}
	v := m.settings.GetString(s.Key)
	if v == "" {
		return "(not set)", mutedStyle
	}
	if len(v) > settingsValueWidth {
		// keep the tail, paths differ at the end
		v = "…" + v[len(v)-settingsValueWidth+1:]
	}
	return v, lipgloss.NewStyle().Foreground(droidMint)
}

func (m *Model) renderSettings() string {
	categories := settings.GetCategories()
	category := categories[m.settingsCategory]

	var b strings.Builder
	b.WriteString("\n" + titleStyle.Render("◢◣ Settings") + "\n\n")

	tabs := make([]string, len(categories))
	for i, c := range categories {
		style := inactiveTabStyle
		if i == m.settingsCategory {
			style = activeTabStyle
		}
		tabs[i] = style.Render(c.Icon + " " + c.Name)
	}
	b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")

	width := 0
	for _, s := range category.Settings {
		width = max(width, lipgloss.Width(s.Name))
	}
	name := lipgloss.NewStyle().Width(width + 2)
	value := lipgloss.NewStyle().Width(settingsValueWidth + 2)
	selected := lipgloss.NewStyle().Foreground(droidDark).Background(droidGreen).Bold(true)

	for i, s := range category.Settings {
		current := i == m.settingsCursor
		switch {
		case current && m.editingSetting:
			b.WriteString("▶ " + name.Render(s.Name) + m.settingInput.View())
		case current:
			v, _ := m.settingValue(s)
			b.WriteString(selected.Render("▶ " + name.Render(s.Name) + value.Render(v) + s.Description))
		default:
			v, style := m.settingValue(s)
			b.WriteString("  " + name.Render(s.Name) + value.Inherit(style).Render(v) + mutedStyle.Render(s.Description))
		}
		b.WriteString("\n")
	}

	path := m.settings.Path()
	if path == "" {
		path = "(not saved)"
	}
	b.WriteString("\n" + mutedStyle.Render("  Config: "+path) + "\n")
	if m.statusMessage != "" && time.Since(m.statusTime) < 3*time.Second {
		b.WriteString("  " + successStyle.Render(m.statusMessage) + "\n")
	}

	pairs := [][2]string{{"←/→", "category"}, {"↑/↓", "select"}, {"enter", "change"}, {"esc", "close"}}
	if m.editingSetting {
		pairs = [][2]string{{"enter", "save"}, {"esc", "cancel"}}
	}
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = helpKeyStyle.Render(p[0]) + " " + helpStyle.Render(p[1])
	}
	b.WriteString("\n  " + strings.Join(keys, helpStyle.Render("  ·  ")))

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, b.String())
}
