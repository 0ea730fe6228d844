package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/icarus-itcs/lazydroid/internal/device"
	"github.com/icarus-itcs/lazydroid/internal/project"
	"github.com/icarus-itcs/lazydroid/internal/sdk"
	"github.com/icarus-itcs/lazydroid/internal/settings"
)

// ErrNoProject is returned by project actions when no project is open.
var ErrNoProject = errors.New("no project open")

// Session owns the currently open project and the user settings, and turns
// them into tool invocations for the UI and the CLI.
type Session struct {
	mu sync.RWMutex

	project  *project.Project
	settings *settings.Settings
	runner   sdk.Runner
	logger   *slog.Logger
}

// New creates a session with no open project.
func New(s *settings.Settings, runner sdk.Runner, logger *slog.Logger) *Session {
	if s == nil {
		s = settings.Defaults()
	}
	if runner == nil {
		runner = sdk.ExecRunner{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{settings: s, runner: runner, logger: logger}
}

// Settings returns the settings instance.
func (s *Session) Settings() *settings.Settings {
	return s.settings
}

// Project returns the open project, or nil.
func (s *Session) Project() *project.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project
}

// OpenProject replaces the current project with the one at path. On failure
// the previous project is already closed.
func (s *Session) OpenProject(path string) (*project.Project, error) {
	s.logger.Debug("opening project", "path", path)
	s.CloseProject()

	p, err := project.New(path)
	if err != nil {
		return nil, fmt.Errorf("could not open project: %w", err)
	}
	s.mu.Lock()
	s.project = p
	s.mu.Unlock()
	s.logger.Info("project opened", "name", p.Name(), "path", p.Path())
	return p, nil
}

// CloseProject forgets the current project.
func (s *Session) CloseProject() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project != nil {
		s.logger.Info("project closed", "path", s.project.Path())
	}
	s.project = nil
}

func (s *Session) requireProject() (*project.Project, error) {
	p := s.Project()
	if p == nil {
		return nil, ErrNoProject
	}
	return p, nil
}

// Toolchain returns tools configured from settings, with the SDK location
// taken from the open project's local.properties when available.
func (s *Session) Toolchain() *sdk.Toolchain {
	tc := &sdk.Toolchain{
		AndroidCommand: s.settings.GetString(settings.AndroidCommand),
		AntCommand:     s.settings.GetString(settings.AntCommand),
		Runner:         s.runner,
	}
	if p := s.Project(); p != nil {
		dir, ok, err := p.SDKPath()
		switch {
		case err != nil:
			s.logger.Debug("sdk path unavailable", "err", err)
		case ok:
			tc.SDKDir = dir
		}
	}
	return tc
}

// ListTargets returns the build targets that carry an id and a Name.
func (s *Session) ListTargets(ctx context.Context) ([]sdk.Target, error) {
	targets, err := s.Toolchain().ListTargets(ctx)
	if err != nil {
		return nil, err
	}
	return sdk.ValidTargets(targets), nil
}

// ListDevices returns the attached devices and emulators.
func (s *Session) ListDevices(ctx context.Context) ([]device.Device, error) {
	serials, err := s.Toolchain().ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	return device.FromSerials(serials), nil
}

// NewProjectRequest fills a create request from a project name using the
// configured folder and package namespace.
func (s *Session) NewProjectRequest(name string) sdk.CreateProjectRequest {
	return sdk.CreateProjectRequest{
		Target:   s.settings.GetString(settings.DefaultBuildTarget),
		Name:     name,
		Path:     filepath.Join(s.settings.GetString(settings.DefaultProjectPath), name),
		Activity: project.SuggestActivity(name),
		Package:  project.SuggestPackage(s.settings.GetString(settings.DefaultPackageNamespace), name),
	}
}

// CreateProjectCommand validates r and returns the create invocation.
func (s *Session) CreateProjectCommand(r sdk.CreateProjectRequest) (sdk.Command, error) {
	if err := r.Validate(); err != nil {
		return sdk.Command{}, err
	}
	return s.Toolchain().CreateProjectCommand(r), nil
}

// BuildMode returns the configured build mode.
func (s *Session) BuildMode() string {
	if mode := s.settings.GetString(settings.BuildMode); mode != "" {
		return mode
	}
	return project.DefaultMode
}

// BuildCommand returns the build invocation for the open project. An empty
// mode uses the configured one.
func (s *Session) BuildCommand(mode string) (sdk.Command, error) {
	p, err := s.requireProject()
	if err != nil {
		return sdk.Command{}, err
	}
	if mode == "" {
		mode = s.BuildMode()
	}
	return s.Toolchain().BuildCommand(p.Path(), mode), nil
}

// InstallCommand returns the adb install invocation of the project's APK
// for the configured build mode. The SDK location must be known.
func (s *Session) InstallCommand(serial string) (sdk.Command, error) {
	p, err := s.requireProject()
	if err != nil {
		return sdk.Command{}, err
	}
	if _, ok, err := p.SDKPath(); err != nil {
		return sdk.Command{}, err
	} else if !ok {
		return sdk.Command{}, sdk.ErrNoSDK
	}
	return s.Toolchain().InstallCommand(serial, p.APKFilename(s.BuildMode())), nil
}

// RunPlan returns the commands of a run: build, then install on serial.
func (s *Session) RunPlan(serial string) ([]sdk.Command, error) {
	build, err := s.BuildCommand("")
	if err != nil {
		return nil, err
	}
	install, err := s.InstallCommand(serial)
	if err != nil {
		return nil, err
	}
	return []sdk.Command{build, install}, nil
}

// PickDevice chooses the device to run on. An explicit serial wins;
// otherwise exactly one attached device is required.
func PickDevice(devices []device.Device, serial string) (device.Device, error) {
	if serial != "" {
		return device.Device{Serial: serial}, nil
	}
	switch len(devices) {
	case 0:
		return device.Device{}, sdk.ErrNoDevices
	case 1:
		return devices[0], nil
	}
	return device.Device{}, fmt.Errorf("%d devices attached, choose one of %v", len(devices), devices)
}
