package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/icarus-itcs/lazydroid/internal/console"
	"github.com/icarus-itcs/lazydroid/internal/device"
	"github.com/icarus-itcs/lazydroid/internal/preflight"
	"github.com/icarus-itcs/lazydroid/internal/project"
	"github.com/icarus-itcs/lazydroid/internal/sdk"
	"github.com/icarus-itcs/lazydroid/internal/session"
	"github.com/icarus-itcs/lazydroid/internal/settings"
)

// ansiRegex matches CSI, OSC and DCS escapes that ant and adb emit on a tty
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)|\x1b[PX^_].*?\x1b\\|\x1b.`)

const quitWindow = 3 * time.Second

// getTerminalTitle generates the terminal title based on current state
func (m *Model) getTerminalTitle() string {
	running := m.runningCount()

	projectName := "lazydroid"
	if p := m.session.Project(); p != nil && p.Name() != "" {
		projectName = p.Name()
	}

	if running > 0 {
		if running == 1 {
			for _, p := range m.processes {
				if p.Status == ProcessRunning {
					return fmt.Sprintf("◢◣ %s - %s...", projectName, p.Name)
				}
			}
		}
		return fmt.Sprintf("◢◣ %s - %d running", projectName, running)
	}

	if m.loading {
		return fmt.Sprintf("◢◣ %s - loading...", projectName)
	}

	return fmt.Sprintf("◢◣ %s - %d devices", projectName, len(m.devices))
}

// Focus tracks which pane is active
type Focus int

const (
	FocusDevices Focus = iota
	FocusLogs
)

// overlay is a modal form drawn instead of the main panes
type overlay int

const (
	overlayNone overlay = iota
	overlayOpen
	overlayNew
)

// Model is the main app state
type Model struct {
	session *session.Session
	ctx     context.Context
	cancel  context.CancelFunc

	// Devices
	devices        []device.Device
	selectedDevice int

	// Processes (tabs above logs)
	processes       []*Process
	selectedProcess int
	nextProcessID   int

	// local.properties watcher of the open project
	watchCh     <-chan struct{}
	cancelWatch context.CancelFunc

	// Preflight checks
	preflightResults *preflight.Results
	showPreflight    bool

	// Settings
	settings         *settings.Settings
	showSettings     bool
	settingsCursor   int
	settingsCategory int
	editingSetting   bool
	settingInput     textinput.Model

	// Forms
	overlay      overlay
	openInput    textinput.Model
	openFound    int
	newProject   newProjectForm
	overlayError string

	// UI
	focus         Focus
	logViewport   viewport.Model
	spinner       spinner.Model
	help          help.Model
	keys          keyMap
	width         int
	height        int
	loading       bool
	showHelp      bool
	statusMessage string
	statusTime    time.Time

	// Quit confirmation
	confirmQuit bool
	quitTime    time.Time
}

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Tab        key.Binding
	Run        key.Binding
	Build      key.Binding
	Install    key.Binding
	Open       key.Binding
	New        key.Binding
	Close      key.Binding
	Kill       key.Binding
	Refresh    key.Binding
	SDKManager key.Binding
	AVDManager key.Binding
	Help       key.Binding
	Quit       key.Binding
	Left       key.Binding
	Right      key.Binding
	Copy       key.Binding
	Export     key.Binding
	Preflight  key.Binding
	Settings   key.Binding
	Enter      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Run:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "build & install")),
		Build:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "build")),
		Install:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "install")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open project")),
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new project")),
		Close:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "close project")),
		Kill:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "kill")),
		Refresh:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh devices")),
		SDKManager: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "SDK manager")),
		AVDManager: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "AVD manager")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev tab")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next tab")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy logs")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export logs")),
		Preflight:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preflight")),
		Settings:   key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
		Enter:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Build, k.Install, k.Open, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab, k.Left, k.Right},
		{k.Run, k.Build, k.Install, k.Kill},
		{k.Open, k.New, k.Close, k.Refresh},
		{k.SDKManager, k.AVDManager, k.Preflight, k.Settings},
		{k.Copy, k.Export, k.Help, k.Quit},
	}
}

// NewModel creates the UI for a session. An already open project is kept.
func NewModel(sess *session.Session) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(droidGreen)

	h := help.New()
	h.ShowAll = true

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		session:       sess,
		ctx:           ctx,
		cancel:        cancel,
		settings:      sess.Settings(),
		focus:         FocusDevices,
		spinner:       s,
		logViewport:   viewport.New(0, 0),
		help:          h,
		keys:          defaultKeyMap(),
		loading:       true,
		processes:     make([]*Process, 0),
		nextProcessID: 1,
		settingInput:  newInput(""),
		openInput:     newInput("/path/to/project"),
	}
	if p := sess.Project(); p != nil {
		m.watchProject(p)
	}
	return m
}

// Messages
type devicesLoadedMsg struct{ devices []device.Device }
type targetsLoadedMsg struct {
	targets []sdk.Target
	err     error
}
type preflightDoneMsg struct{ results *preflight.Results }
type errMsg struct{ err error }
type processStartedMsg struct {
	processID string
	stream    *console.Stream
}
type processOutputMsg struct {
	processID string
	line      string
}
type processFinishedMsg struct {
	processID string
	err       error
}
type propertiesChangedMsg struct{ ch <-chan struct{} }

// Commands
func loadDevices(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		devices, err := sess.ListDevices(ctx)
		if err != nil {
			return errMsg{err}
		}
		return devicesLoadedMsg{devices}
	}
}

func loadTargets(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		targets, err := sess.ListTargets(ctx)
		return targetsLoadedMsg{targets: targets, err: err}
	}
}

func runPreflight(opts preflight.Options) tea.Cmd {
	return func() tea.Msg {
		return preflightDoneMsg{preflight.Run(opts)}
	}
}

func waitForPropertiesChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return propertiesChangedMsg{ch}
	}
}

func (m *Model) preflightOptions() preflight.Options {
	return preflight.Options{
		AndroidCommand: m.settings.GetString(settings.AndroidCommand),
		AntCommand:     m.settings.GetString(settings.AntCommand),
		ADBCommand:     m.session.Toolchain().ADBPath(),
		ProjectRoot:    m.settings.GetString(settings.DefaultProjectPath),
	}
}

func (m *Model) getSelectedDevice() *device.Device {
	if len(m.devices) == 0 || m.selectedDevice >= len(m.devices) {
		return nil
	}
	return &m.devices[m.selectedDevice]
}

func (m *Model) getSelectedProcess() *Process {
	if len(m.processes) == 0 || m.selectedProcess >= len(m.processes) {
		return nil
	}
	return m.processes[m.selectedProcess]
}

func (m *Model) findProcess(id string) *Process {
	for _, p := range m.processes {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (m *Model) runningCount() int {
	running := 0
	for _, p := range m.processes {
		if p.Status == ProcessRunning {
			running++
		}
	}
	return running
}

func (m *Model) hasRunningProcesses() bool {
	return m.runningCount() > 0
}

func runStream(ctx context.Context, processID string, c sdk.Command) tea.Cmd {
	return func() tea.Msg {
		s, err := console.Start(ctx, c)
		if err != nil {
			return processFinishedMsg{processID: processID, err: err}
		}
		return processStartedMsg{processID: processID, stream: s}
	}
}

func waitForOutput(processID string, s *console.Stream) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-s.Lines()
		if !ok {
			return processFinishedMsg{processID: processID, err: s.Wait()}
		}
		return processOutputMsg{processID: processID, line: line}
	}
}

// gracefulShutdown kills all running processes and stops the watcher
func (m *Model) gracefulShutdown() {
	for _, p := range m.processes {
		if p.Status == ProcessRunning && p.Stream != nil {
			p.Stream.Kill()
		}
	}
	m.stopWatch()
	if m.cancel != nil {
		m.cancel()
	}
}

// Init starts the app
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadDevices(m.ctx, m.session),
		runPreflight(m.preflightOptions()),
		m.spinner.Tick,
		tea.SetWindowTitle(m.getTerminalTitle()),
	}
	if m.watchCh != nil {
		cmds = append(cmds, waitForPropertiesChange(m.watchCh))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Reset quit confirmation on any non-quit key (unless within timeout)
		if !key.Matches(msg, m.keys.Quit) && m.confirmQuit {
			if time.Since(m.quitTime) > quitWindow {
				m.confirmQuit = false
			}
		}

		switch m.overlay {
		case overlayOpen:
			return m.handleOpenInput(msg)
		case overlayNew:
			return m.handleNewProjectInput(msg)
		}

		if m.showSettings {
			return m.handleSettingsInput(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit(msg)

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.showPreflight = false
			return m, nil

		case key.Matches(msg, m.keys.Preflight):
			m.showPreflight = !m.showPreflight
			m.showHelp = false
			m.showSettings = false
			if m.showPreflight {
				return m, runPreflight(m.preflightOptions())
			}
			return m, nil

		case key.Matches(msg, m.keys.Settings):
			m.showSettings = true
			m.showHelp = false
			m.showPreflight = false
			m.settingsCursor = 0
			m.settingsCategory = 0
			return m, nil

		case key.Matches(msg, m.keys.Tab):
			if m.focus == FocusDevices {
				m.focus = FocusLogs
			} else {
				m.focus = FocusDevices
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.focus == FocusDevices {
				if m.selectedDevice > 0 {
					m.selectedDevice--
				}
			} else {
				m.logViewport.LineUp(3)
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.focus == FocusDevices {
				if m.selectedDevice < len(m.devices)-1 {
					m.selectedDevice++
				}
			} else {
				m.logViewport.LineDown(3)
			}
			return m, nil

		case key.Matches(msg, m.keys.Left):
			if m.focus == FocusLogs && m.selectedProcess > 0 {
				m.selectedProcess--
				m.updateLogViewport()
			}
			return m, nil

		case key.Matches(msg, m.keys.Right):
			if m.focus == FocusLogs && m.selectedProcess < len(m.processes)-1 {
				m.selectedProcess++
				m.updateLogViewport()
			}
			return m, nil

		case key.Matches(msg, m.keys.Run):
			return m, m.runAction("run")
		case key.Matches(msg, m.keys.Build):
			return m, m.runAction("build")
		case key.Matches(msg, m.keys.Install):
			return m, m.runAction("install")

		case key.Matches(msg, m.keys.Open):
			m.overlay = overlayOpen
			m.overlayError = ""
			m.openFound = -1
			m.openInput.SetValue(m.settings.GetString(settings.DefaultProjectPath))
			m.openInput.CursorEnd()
			return m, m.openInput.Focus()

		case key.Matches(msg, m.keys.New):
			m.overlay = overlayNew
			m.overlayError = ""
			m.newProject = newNewProjectForm(
				m.settings.GetString(settings.DefaultProjectPath),
				m.settings.GetString(settings.DefaultPackageNamespace),
			)
			return m, tea.Batch(loadTargets(m.ctx, m.session), textinput.Blink)

		case key.Matches(msg, m.keys.Close):
			if m.session.Project() == nil {
				m.reportError(session.ErrNoProject)
				return m, nil
			}
			m.stopWatch()
			m.session.CloseProject()
			m.addLog("Project closed")
			return m, tea.SetWindowTitle(m.getTerminalTitle())

		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, loadDevices(m.ctx, m.session)

		case key.Matches(msg, m.keys.SDKManager):
			m.launch("SDK manager", m.session.Toolchain().SDKManagerCommand())
			return m, nil

		case key.Matches(msg, m.keys.AVDManager):
			m.launch("AVD manager", m.session.Toolchain().AVDManagerCommand())
			return m, nil

		case key.Matches(msg, m.keys.Kill):
			p := m.getSelectedProcess()
			if p != nil && p.Status == ProcessRunning && p.Stream != nil {
				p.Stream.Kill()
				p.Status = ProcessCancelled
				p.EndTime = time.Now()
				p.pending = nil
				p.openOnSuccess = ""
				p.AddLog("Killed by user")
				m.updateLogViewport()
			}
			return m, nil

		case key.Matches(msg, m.keys.Copy):
			p := m.getSelectedProcess()
			if p != nil && len(p.Logs) > 0 {
				content := strings.Join(p.Logs, "\n")
				if err := clipboard.WriteAll(content); err != nil {
					m.setStatus("Copy failed: " + err.Error())
				} else {
					m.setStatus(fmt.Sprintf("Copied %d lines to clipboard", len(p.Logs)))
				}
			} else {
				m.setStatus("No logs to copy")
			}
			return m, nil

		case key.Matches(msg, m.keys.Export):
			p := m.getSelectedProcess()
			if p != nil && len(p.Logs) > 0 {
				exportPath, err := exportLogs(p, os.TempDir())
				if err != nil {
					m.setStatus("Export failed: " + err.Error())
				} else {
					m.setStatus("Exported to " + exportPath)
				}
			} else {
				m.setStatus("No logs to export")
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case devicesLoadedMsg:
		m.loading = false
		m.devices = msg.devices
		if m.selectedDevice >= len(m.devices) {
			m.selectedDevice = 0
		}
		cmds = append(cmds, tea.SetWindowTitle(m.getTerminalTitle()))

	case targetsLoadedMsg:
		if m.overlay == overlayNew {
			m.newProject.setTargets(msg.targets, msg.err, m.settings.GetString(settings.DefaultBuildTarget))
		}

	case preflightDoneMsg:
		first := m.preflightResults == nil
		m.preflightResults = msg.results
		if first && msg.results.HasErrors {
			m.showPreflight = true
		}

	case propertiesChangedMsg:
		if msg.ch != m.watchCh {
			return m, nil
		}
		m.addLog(project.PropertiesFile + " changed, reloading devices")
		m.loading = true
		cmds = append(cmds, loadDevices(m.ctx, m.session), waitForPropertiesChange(m.watchCh))

	case processStartedMsg:
		if p := m.findProcess(msg.processID); p != nil {
			p.Stream = msg.stream
		}
		cmds = append(cmds, waitForOutput(msg.processID, msg.stream), m.spinner.Tick, tea.SetWindowTitle(m.getTerminalTitle()))

	case processOutputMsg:
		if p := m.findProcess(msg.processID); p != nil {
			clean := strings.TrimSpace(ansiRegex.ReplaceAllString(msg.line, ""))
			if clean != "" {
				p.AddLog(clean)
				if m.getSelectedProcess() == p {
					m.updateLogViewport()
				}
			}
			cmds = append(cmds, waitForOutput(msg.processID, p.Stream))
		}
		cmds = append(cmds, m.spinner.Tick)

	case processFinishedMsg:
		if cmd := m.finishProcess(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.updateLogViewport()
		cmds = append(cmds, tea.SetWindowTitle(m.getTerminalTitle()))

	case errMsg:
		m.loading = false
		m.reportError(msg.err)
	}

	if m.hasRunningProcesses() && len(cmds) == 0 {
		cmds = append(cmds, m.spinner.Tick)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) quit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C and a disabled confirmation quit at once
	if msg.String() == "ctrl+c" || !m.settings.GetBool(settings.ConfirmQuit) {
		m.gracefulShutdown()
		return m, tea.Quit
	}

	if m.confirmQuit && time.Since(m.quitTime) < quitWindow {
		m.gracefulShutdown()
		return m, tea.Quit
	}

	m.confirmQuit = true
	m.quitTime = time.Now()
	if running := m.runningCount(); running > 0 {
		m.setStatus(fmt.Sprintf("⚠ %d process running! Press q again to quit", running))
	} else {
		m.setStatus("Press q again to quit")
	}
	return m, nil
}

// finishProcess records the exit and starts whatever was queued behind it
func (m *Model) finishProcess(msg processFinishedMsg) tea.Cmd {
	p := m.findProcess(msg.processID)
	if p == nil || p.Status != ProcessRunning {
		return nil
	}
	p.finish(msg.err)
	if msg.err != nil {
		p.AddLog(fmt.Sprintf("Error: %v", msg.err))
		if sdk.IsNotInstalled(msg.err) {
			p.AddLog("Check the tool commands in settings (,) or run preflight (p)")
		}
		slog.Warn("process failed", "name", p.Name, "err", msg.err)
		return nil
	}
	p.AddLog("✓ Done")

	if len(p.pending) > 0 {
		next := p.pending[0]
		_, cmd := m.startProcess(next.name, next.command, p.pending[1:])
		p.pending = nil
		return cmd
	}
	if p.openOnSuccess != "" {
		path := p.openOnSuccess
		p.openOnSuccess = ""
		return m.openProject(path)
	}
	return nil
}

func (m *Model) updateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	logWidth := m.width - 36 - 6
	logHeight := m.height - 8
	if logHeight < 5 {
		logHeight = 5
	}
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
}

func (m *Model) updateLogViewport() {
	p := m.getSelectedProcess()
	if p == nil {
		m.logViewport.SetContent(logEmptyStyle.Render("\n  Run a command to see output here..."))
		return
	}
	m.logViewport.SetContent(strings.Join(p.Logs, "\n"))
	m.logViewport.GotoBottom()
}

// addLog writes to the System tab, which is always the first process
func (m *Model) addLog(line string) {
	ts := time.Now().Format("15:04:05")
	if len(m.processes) == 0 || m.processes[0].ID != "system" {
		sys := &Process{
			ID: "system", Name: "System", Status: ProcessSuccess,
			StartTime: time.Now(),
		}
		m.processes = append([]*Process{sys}, m.processes...)
		m.selectedProcess = 0
	}
	m.processes[0].AddLog(fmt.Sprintf("[%s] %s", ts, line))
	m.updateLogViewport()
}

func (m *Model) setStatus(msg string) {
	m.statusMessage = msg
	m.statusTime = time.Now()
}

// reportError shows err in the System tab and the status line
func (m *Model) reportError(err error) {
	text := err.Error()
	if errors.Is(err, session.ErrNoProject) {
		text = "No project open. Press o to open one or n to create one"
	}
	slog.Debug("ui error", "err", err)
	m.addLog("Error: " + text)
	m.setStatus(text)
}

func (m *Model) createProcess(name string, c sdk.Command) *Process {
	id := fmt.Sprintf("p%d", m.nextProcessID)
	m.nextProcessID++
	p := &Process{
		ID: id, Name: name, Command: c, Status: ProcessRunning,
		StartTime: time.Now(),
		Logs:      []string{fmt.Sprintf("[%s] $ %s", time.Now().Format("15:04:05"), c.String())},
	}
	if c.Dir != "" {
		p.AddLog("  in " + c.Dir)
	}
	m.processes = append(m.processes, p)
	m.selectedProcess = len(m.processes) - 1
	m.updateLogViewport()
	return p
}

func (m *Model) startProcess(name string, c sdk.Command, pending []step) (*Process, tea.Cmd) {
	p := m.createProcess(name, c)
	p.pending = pending
	return p, tea.Batch(runStream(m.ctx, p.ID, c), m.spinner.Tick)
}

func (m *Model) runAction(action string) tea.Cmd {
	switch action {
	case "build":
		c, err := m.session.BuildCommand("")
		if err != nil {
			m.reportError(err)
			return nil
		}
		_, cmd := m.startProcess("Build "+m.session.BuildMode(), c, nil)
		return cmd

	case "install", "run":
		if m.session.Project() == nil {
			m.reportError(session.ErrNoProject)
			return nil
		}
		dev := m.getSelectedDevice()
		if dev == nil {
			m.reportError(sdk.ErrNoDevices)
			return nil
		}
		if action == "install" {
			c, err := m.session.InstallCommand(dev.Serial)
			if err != nil {
				m.reportError(err)
				return nil
			}
			_, cmd := m.startProcess(shortName("Install", dev.Serial), c, nil)
			return cmd
		}
		plan, err := m.session.RunPlan(dev.Serial)
		if err != nil {
			m.reportError(err)
			return nil
		}
		_, cmd := m.startProcess("Build "+m.session.BuildMode(), plan[0],
			[]step{{name: shortName("Install", dev.Serial), command: plan[1]}})
		return cmd
	}
	return nil
}

func shortName(verb, serial string) string {
	if len(serial) > 15 {
		serial = serial[:13] + ".."
	}
	return verb + " " + serial
}

// launch starts a detached GUI tool
func (m *Model) launch(name string, c sdk.Command) {
	if err := console.Launch(c); err != nil {
		m.reportError(err)
		return
	}
	m.addLog(fmt.Sprintf("Launched %s: %s", name, c.String()))
}

// openProject makes path the session project and watches its properties
func (m *Model) openProject(path string) tea.Cmd {
	m.stopWatch()
	p, err := m.session.OpenProject(path)
	if err != nil {
		m.reportError(err)
		return nil
	}
	m.addLog(fmt.Sprintf("Opened project %s (%s)", p.Name(), p.Path()))
	if _, ok, err := p.SDKPath(); err != nil || !ok {
		m.addLog(fmt.Sprintf("%s has no sdk.dir, install will not be available", project.PropertiesFile))
	}

	cmds := []tea.Cmd{loadDevices(m.ctx, m.session), tea.SetWindowTitle(m.getTerminalTitle())}
	if m.watchProject(p) {
		cmds = append(cmds, waitForPropertiesChange(m.watchCh))
	}
	m.loading = true
	return tea.Batch(cmds...)
}

// watchProject follows changes to the project's properties file
func (m *Model) watchProject(p *project.Project) bool {
	ctx, cancel := context.WithCancel(m.ctx)
	ch, err := project.Watch(ctx, p)
	if err != nil {
		cancel()
		slog.Warn("watch project", "path", p.Path(), "err", err)
		return false
	}
	m.watchCh, m.cancelWatch = ch, cancel
	return true
}

func (m *Model) stopWatch() {
	if m.cancelWatch != nil {
		m.cancelWatch()
	}
	m.watchCh, m.cancelWatch = nil, nil
}

func (m Model) handleOpenInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var found []project.Found
	if m.preflightResults != nil {
		found = m.preflightResults.Discoveries
	}

	switch msg.String() {
	case "ctrl+c":
		m.gracefulShutdown()
		return m, tea.Quit
	case "esc":
		m.overlay = overlayNone
		m.openInput.Blur()
		return m, nil
	case "tab", "down":
		if len(found) > 0 {
			m.openFound = (m.openFound + 1) % len(found)
			m.openInput.SetValue(found[m.openFound].Path)
			m.openInput.CursorEnd()
		}
		return m, nil
	case "shift+tab", "up":
		if len(found) > 0 {
			m.openFound--
			if m.openFound < 0 {
				m.openFound = len(found) - 1
			}
			m.openInput.SetValue(found[m.openFound].Path)
			m.openInput.CursorEnd()
		}
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.openInput.Value())
		if path == "" {
			m.overlayError = "Enter a project directory"
			return m, nil
		}
		if _, err := project.New(path); err != nil {
			m.overlayError = err.Error()
			return m, nil
		}
		m.overlay = overlayNone
		m.openInput.Blur()
		return m, m.openProject(path)
	}

	var cmd tea.Cmd
	m.openInput, cmd = m.openInput.Update(msg)
	m.overlayError = ""
	return m, cmd
}

func (m Model) handleNewProjectInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.gracefulShutdown()
		return m, tea.Quit
	case "esc":
		m.overlay = overlayNone
		return m, nil
	case "enter":
		r, err := m.newProject.request()
		if err != nil {
			m.overlayError = err.Error()
			return m, nil
		}
		c, err := m.session.CreateProjectCommand(r)
		if err != nil {
			m.overlayError = err.Error()
			return m, nil
		}
		m.overlay = overlayNone
		p, cmd := m.startProcess("Create "+r.Name, c, nil)
		p.openOnSuccess = r.Path
		return m, cmd
	}

	m.overlayError = ""
	return m, m.newProject.update(msg)
}

// exportLogs writes the process logs into dir and returns the file path
func exportLogs(p *Process, dir string) (string, error) {
	name := strings.Map(func(r rune) rune {
		if r == ' ' || r == filepath.Separator {
			return '-'
		}
		return r
	}, p.Name)
	filename := fmt.Sprintf("lazydroid-%s-%s.log", name, time.Now().Format("20060102-150405"))
	exportPath := filepath.Join(dir, filename)
	content := strings.Join(p.Logs, "\n")
	if err := os.WriteFile(exportPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return exportPath, nil
}
