package sdk

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

var (
	// ErrNoSDK indicates the SDK location is unknown.
	ErrNoSDK = errors.New("android SDK location unknown (set sdk.dir in local.properties)")
	// ErrNoDevices indicates adb reported no attached device or emulator.
	ErrNoDevices = errors.New("could not find any Android devices; use the AVD Manager to start a virtual device or connect an Android device to the computer")
)

// Toolchain composes and runs the Android command-line tools.
type Toolchain struct {
	// AndroidCommand is the `android` SDK tool.
	AndroidCommand string
	// AntCommand is the build tool invoked with the build mode.
	AntCommand string
	// SDKDir is the SDK root, usually sdk.dir from the project.
	SDKDir string

	Runner Runner
}

// PlatformToolsDir returns {SDKDir}/platform-tools, or "" without an SDK.
func (t *Toolchain) PlatformToolsDir() string {
	if t.SDKDir == "" {
		return ""
	}
	return filepath.Join(t.SDKDir, "platform-tools")
}

// ADBPath returns the adb binary inside the SDK, falling back to adb on
// PATH when the SDK location is unknown.
func (t *Toolchain) ADBPath() string {
	if dir := t.PlatformToolsDir(); dir != "" {
		return filepath.Join(dir, "adb")
	}
	return "adb"
}

// ListTargetsCommand returns `android list targets`.
func (t *Toolchain) ListTargetsCommand() Command {
	return Command{Name: t.AndroidCommand, Args: []string{"list", "targets"}}
}

// DevicesCommand returns `adb devices`, run from platform-tools.
func (t *Toolchain) DevicesCommand() Command {
	return Command{Name: t.ADBPath(), Args: []string{"devices"}, Dir: t.PlatformToolsDir()}
}

// CreateProjectRequest holds the parameters of `android create project`.
type CreateProjectRequest struct {
	Target   string
	Name     string
	Path     string
	Activity string
	Package  string
}

// Validate checks that every field is set.
func (r CreateProjectRequest) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"target", r.Target},
		{"name", r.Name},
		{"path", r.Path},
		{"activity", r.Activity},
		{"package", r.Package},
	} {
		if f.value == "" {
			return fmt.Errorf("new project: %s is required", f.name)
		}
	}
	return nil
}

// CreateProjectCommand returns the `android create project` invocation.
func (t *Toolchain) CreateProjectCommand(r CreateProjectRequest) Command {
	return Command{
		Name: t.AndroidCommand,
		Args: []string{
			"create", "project",
			"--target", r.Target,
			"--name", r.Name,
			"--path", r.Path,
			"--activity", r.Activity,
			"--package", r.Package,
		},
	}
}

// BuildCommand returns `<ant> <mode>` run in the project directory.
func (t *Toolchain) BuildCommand(projectDir, mode string) Command {
	return Command{Name: t.AntCommand, Args: []string{mode}, Dir: projectDir}
}

// InstallCommand returns `adb -s <serial> install <apk>`.
func (t *Toolchain) InstallCommand(serial, apk string) Command {
	return Command{
		Name: t.ADBPath(),
		Args: []string{"-s", serial, "install", apk},
		Dir:  t.PlatformToolsDir(),
	}
}

// SDKManagerCommand launches the SDK manager GUI.
func (t *Toolchain) SDKManagerCommand() Command {
	return Command{Name: t.AndroidCommand, Args: []string{"sdk"}}
}

// AVDManagerCommand launches the AVD manager GUI.
func (t *Toolchain) AVDManagerCommand() Command {
	return Command{Name: t.AndroidCommand, Args: []string{"avd"}}
}

func (t *Toolchain) runner() Runner {
	if t.Runner == nil {
		return ExecRunner{}
	}
	return t.Runner
}

// ListTargets runs the target listing and parses it.
func (t *Toolchain) ListTargets(ctx context.Context) ([]Target, error) {
	out, err := t.runner().Output(ctx, t.ListTargetsCommand())
	if err != nil {
		return nil, fmt.Errorf("list targets: %w", err)
	}
	return ParseTargets(string(out)), nil
}

// ListDevices runs `adb devices` and returns the attached serials.
func (t *Toolchain) ListDevices(ctx context.Context) ([]string, error) {
	out, err := t.runner().Output(ctx, t.DevicesCommand())
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return ParseDevices(string(out)), nil
}
