package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/icarus-itcs/lazydroid/internal/preflight"
	"github.com/icarus-itcs/lazydroid/internal/settings"
)

// View renders the UI
func (m Model) View() string {
	switch m.overlay {
	case overlayOpen:
		return m.renderOpenProject()
	case overlayNew:
		return m.renderNewProject()
	}

	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, "", "  "+LogoCompact(), "", m.help.View(m.keys))
	}

	if m.showPreflight {
		return m.renderPreflight()
	}

	if m.showSettings {
		return m.renderSettings()
	}

	left := m.renderLeft()
	right := m.renderRight()

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		m.renderHeader(),
		"",
		main,
		"",
		m.renderHelp(),
	)
}

func (m *Model) renderHeader() string {
	logo := "  " + LogoCompact()

	var projectStr string
	if p := m.session.Project(); p != nil {
		projectStr = projectStyle.Render(p.Name())
	} else {
		projectStr = mutedStyle.Render("No project open")
	}

	mode := mutedStyle.Render("[" + m.session.BuildMode() + "]")

	var status string
	if m.loading {
		status = m.spinner.View() + " loading..."
	} else if running := m.runningCount(); running > 0 {
		status = fmt.Sprintf("%s %d running", m.spinner.View(), running)
	} else {
		status = mutedStyle.Render(fmt.Sprintf("%d devices", len(m.devices)))
	}

	var preflightIndicator string
	if m.preflightResults != nil {
		if m.preflightResults.HasErrors {
			preflightIndicator = "  " + errorStyle.Render("⚠ preflight errors")
		} else if m.preflightResults.HasWarnings {
			preflightIndicator = "  " + warnStyle.Render("⚠ preflight warnings")
		}
	}

	// Status message (show for 3 seconds)
	var statusMsg string
	if m.statusMessage != "" && time.Since(m.statusTime) < 3*time.Second {
		statusMsg = "  " + successStyle.Render(m.statusMessage)
	}

	return fmt.Sprintf("%s  %s  %s  %s%s%s", logo, projectStr, mode, status, preflightIndicator, statusMsg)
}

func (m *Model) renderLeft() string {
	title := titleStyle.Render("DEVICES")

	var items []string
	for i, d := range m.devices {
		badge := KindBadge(d)

		name := d.Serial
		if len(name) > 20 {
			name = name[:17] + "..."
		}

		isSelected := i == m.selectedDevice
		isFocused := m.focus == FocusDevices

		if isSelected && isFocused {
			arrow := lipgloss.NewStyle().Foreground(droidGreen).Bold(true).Render("▶")
			nameStyled := lipgloss.NewStyle().Foreground(droidMint).Bold(true).Render(name)
			items = append(items, fmt.Sprintf(" %s %s %s", arrow, badge, nameStyled))
		} else if isSelected {
			arrow := mutedStyle.Render("▶")
			nameStyled := lipgloss.NewStyle().Foreground(droidLight).Render(name)
			items = append(items, fmt.Sprintf(" %s %s %s", arrow, badge, nameStyled))
		} else {
			nameStyled := lipgloss.NewStyle().Foreground(droidLight).Render(name)
			items = append(items, fmt.Sprintf("   %s %s", badge, nameStyled))
		}
	}

	if len(items) == 0 {
		items = append(items, mutedStyle.Render("  No devices found"))
		items = append(items, "")
		items = append(items, mutedStyle.Render("  Press R to refresh"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	paneHeight := m.height - 8
	if paneHeight < 5 {
		paneHeight = 5
	}

	inner := lipgloss.JoinVertical(lipgloss.Left, title, "", content, "", "", m.renderProjectInfo())

	if m.focus == FocusDevices {
		return activePaneStyle.Width(32).Height(paneHeight).Render(inner)
	}
	return inactivePaneStyle.Width(32).Height(paneHeight).Render(inner)
}

func (m *Model) renderProjectInfo() string {
	title := titleStyle.Render("PROJECT")
	p := m.session.Project()
	if p == nil {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			mutedStyle.Render("  No project open"),
			"",
			mutedStyle.Render("  o open  •  n new"))
	}

	path := p.Path()
	if len(path) > 26 {
		path = "..." + path[len(path)-23:]
	}
	sdkLine := warnStyle.Render("  sdk.dir not set")
	if dir, ok, err := p.SDKPath(); err == nil && ok {
		if len(dir) > 26 {
			dir = "..." + dir[len(dir)-23:]
		}
		sdkLine = mutedStyle.Render("  " + dir)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title,
		"  "+projectStyle.Render(p.Name()),
		mutedStyle.Render("  "+path),
		sdkLine)
}

func (m *Model) renderRight() string {
	paneWidth := m.width - 36 - 6
	paneHeight := m.height - 8
	if paneHeight < 5 {
		paneHeight = 5
	}
	if paneWidth < 20 {
		paneWidth = 20
	}

	m.logViewport.Width = paneWidth - 4
	m.logViewport.Height = paneHeight - 4

	// Show welcome screen when no processes
	if len(m.processes) == 0 {
		return m.renderWelcome(paneWidth, paneHeight)
	}

	var tabParts []string
	for i, p := range m.processes {
		var icon string
		switch p.Status {
		case ProcessRunning:
			icon = m.spinner.View()
		case ProcessSuccess:
			icon = successStyle.Render(p.StatusIcon())
		case ProcessFailed:
			icon = failedStyle.Render(p.StatusIcon())
		case ProcessCancelled:
			icon = mutedStyle.Render(p.StatusIcon())
		}

		name := p.Name
		if len(name) > 14 {
			name = name[:12] + ".."
		}

		if i == m.selectedProcess {
			tabParts = append(tabParts, fmt.Sprintf("%s [%s]", icon, lipgloss.NewStyle().Foreground(droidGreen).Bold(true).Render(name)))
		} else {
			tabParts = append(tabParts, fmt.Sprintf("%s %s", icon, mutedStyle.Render(name)))
		}
	}

	tabBar := strings.Join(tabParts, "  │  ")
	if p := m.getSelectedProcess(); p != nil && p.ID != "system" {
		tabBar += "  " + mutedStyle.Render(p.Duration().Round(time.Second).String())
	}

	inner := lipgloss.JoinVertical(lipgloss.Left, tabBar, "", m.logViewport.View())

	if m.focus == FocusLogs {
		return activeLogPaneStyle.Width(paneWidth).Height(paneHeight).Render(inner)
	}
	return logPaneStyle.Width(paneWidth).Height(paneHeight).Render(inner)
}

func (m *Model) renderWelcome(width, height int) string {
	botStyle := lipgloss.NewStyle().Foreground(droidGreen).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(droidLight).Bold(true)

	logo := lipgloss.JoinVertical(lipgloss.Center,
		"",
		botStyle.Render("  ▚         ▞  "),
		botStyle.Render("   ▄▄▄▄▄▄▄▄▄   "),
		botStyle.Render(" ▟██ ███ ██▙ "),
		botStyle.Render(" █████████████ "),
		"",
		botStyle.Render(" █████████████ "),
		botStyle.Render(" █████████████ "),
		botStyle.Render("  ███     ███  "),
		"",
		textStyle.Render("lazydroid"),
		mutedStyle.Render("Android Project Manager"),
		"",
		"",
		mutedStyle.Render("Open a project and select a device"),
		helpKeyStyle.Render("o")+mutedStyle.Render(" open  •  ")+
			helpKeyStyle.Render("n")+mutedStyle.Render(" new  •  ")+
			helpKeyStyle.Render("r")+mutedStyle.Render(" run  •  ")+
			helpKeyStyle.Render(",")+mutedStyle.Render(" settings"),
		"",
	)

	centered := lipgloss.Place(width-4, height-4, lipgloss.Center, lipgloss.Center, logo)

	if m.focus == FocusLogs {
		return activeLogPaneStyle.Width(width).Height(height).Render(centered)
	}
	return logPaneStyle.Width(width).Height(height).Render(centered)
}

func (m *Model) renderHelp() string {
	keys := []string{
		helpKeyStyle.Render("r") + " run",
		helpKeyStyle.Render("b") + " build",
		helpKeyStyle.Render("i") + " install",
		helpKeyStyle.Render("o") + " open",
		helpKeyStyle.Render("n") + " new",
		helpKeyStyle.Render("x") + " kill",
		helpKeyStyle.Render("S/A") + " sdk/avd",
		helpKeyStyle.Render(",") + " settings",
		helpKeyStyle.Render("?") + " help",
		helpKeyStyle.Render("q") + " quit",
	}
	return helpStyle.Render("  " + strings.Join(keys, "  "))
}

var checkMarks = map[preflight.Status]struct {
	icon  string
	style lipgloss.Style
}{
	preflight.StatusOK:      {"✓", successStyle},
	preflight.StatusWarning: {"!", warnStyle},
	preflight.StatusError:   {"✗", errorStyle},
}

// preflightVerdict is the summary line and the hint shown under it
func preflightVerdict(r *preflight.Results) (string, string) {
	summary := r.Summary()
	switch {
	case r.HasErrors:
		return errorStyle.Render("✗ " + summary), "Install the missing SDK tools or point Tools settings at them."
	case r.HasWarnings:
		return warnStyle.Render("! " + summary), "The emulator or java is missing; building and installing still work."
	}
	return successStyle.Render("✓ " + summary), "Ready to build."
}

func (m *Model) renderPreflight() string {
	var b strings.Builder
	b.WriteString("\n" + titleStyle.Render("  ◢◣ Preflight") + "\n\n")

	r := m.preflightResults
	if r == nil {
		b.WriteString("  " + m.spinner.View() + " checking tools...")
		return b.String()
	}

	name := lipgloss.NewStyle().Width(20)
	for _, c := range r.Checks {
		mark := checkMarks[c.Status]
		fmt.Fprintf(&b, "  %s %s %s", mark.style.Render(mark.icon), name.Render(c.Name), mark.style.Render(c.Message))
		if c.Status == preflight.StatusOK && c.Path != "" {
			b.WriteString("  " + mutedStyle.Render(c.Path))
		}
		b.WriteString("\n")
	}

	verdict, hint := preflightVerdict(r)
	b.WriteString("\n  " + verdict + "\n  " + mutedStyle.Render(hint) + "\n")

	if len(r.Discoveries) > 0 {
		fmt.Fprintf(&b, "\n  %s\n", titleStyle.Render(fmt.Sprintf("Projects under %s", m.settings.GetString(settings.DefaultProjectPath))))
		for _, f := range r.Discoveries {
			b.WriteString("  • " + projectStyle.Render(f.Name) + "  " + mutedStyle.Render(f.Path))
			if !f.HasProperties {
				b.WriteString("  " + warnStyle.Render("no local.properties"))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("  "+helpKeyStyle.Render("p")+" close  ·  "+helpKeyStyle.Render("o")+" open a project  ·  "+helpKeyStyle.Render("q")+" quit"))
	return b.String()
}

func (m *Model) renderOpenProject() string {
	title := lipgloss.NewStyle().Foreground(droidGreen).Bold(true).Render("  ◢◣ Open Project")

	lines := []string{"", title, "", "  " + focusedLabelStyle.Render("Directory") + "  " + m.openInput.View()}
	if m.overlayError != "" {
		lines = append(lines, "", "  "+errorStyle.Render(m.overlayError))
	}

	if m.preflightResults != nil && len(m.preflightResults.Discoveries) > 0 {
		lines = append(lines, "", "  "+mutedStyle.Render("Projects found:"))
		for i, f := range m.preflightResults.Discoveries {
			marker := "  "
			name := f.Name
			if i == m.openFound {
				marker = helpKeyStyle.Render("▶ ")
				name = projectStyle.Bold(true).Render(name)
			}
			lines = append(lines, fmt.Sprintf("  %s%s  %s", marker, name, mutedStyle.Render(f.Path)))
		}
	}

	lines = append(lines, "", "",
		helpStyle.Render("  ")+
			helpKeyStyle.Render("enter")+helpStyle.Render(" open  ")+
			helpKeyStyle.Render("tab")+helpStyle.Render(" next found  ")+
			helpKeyStyle.Render("esc")+helpStyle.Render(" cancel"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderNewProject() string {
	title := lipgloss.NewStyle().Foreground(droidGreen).Bold(true).Render("  ◢◣ New Project")

	lines := []string{"", title, "", m.newProject.view()}
	if m.overlayError != "" {
		lines = append(lines, "", "  "+errorStyle.Render(m.overlayError))
	}
	lines = append(lines, "", "",
		helpStyle.Render("  ")+
			helpKeyStyle.Render("tab")+helpStyle.Render(" next field  ")+
			helpKeyStyle.Render("←/→")+helpStyle.Render(" target  ")+
			helpKeyStyle.Render("enter")+helpStyle.Render(" create  ")+
			helpKeyStyle.Render("esc")+helpStyle.Render(" cancel"))
	return strings.Join(lines, "\n")
}
