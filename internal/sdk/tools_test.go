package sdk

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	out   map[string]string
	err   error
	calls []Command
}

func (f *fakeRunner) Output(_ context.Context, c Command) ([]byte, error) {
	f.calls = append(f.calls, c)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.out[c.String()]), nil
}

func TestToolchain_Commands(t *testing.T) {
	tc := &Toolchain{AndroidCommand: "android", AntCommand: "ant", SDKDir: "/opt/sdk"}
	adb := filepath.Join("/opt/sdk", "platform-tools", "adb")

	assert.Equal(t, adb, tc.ADBPath())
	assert.Equal(t, Command{Name: "android", Args: []string{"list", "targets"}}, tc.ListTargetsCommand())
	assert.Equal(t, Command{Name: adb, Args: []string{"devices"}, Dir: filepath.Join("/opt/sdk", "platform-tools")}, tc.DevicesCommand())
	assert.Equal(t, Command{Name: "ant", Args: []string{"debug"}, Dir: "/src/Hello"}, tc.BuildCommand("/src/Hello", "debug"))
	assert.Equal(t, []string{"-s", "emulator-5554", "install", "/src/Hello/bin/Hello-debug.apk"},
		tc.InstallCommand("emulator-5554", "/src/Hello/bin/Hello-debug.apk").Args)
	assert.Equal(t, []string{"sdk"}, tc.SDKManagerCommand().Args)
	assert.Equal(t, []string{"avd"}, tc.AVDManagerCommand().Args)

	create := tc.CreateProjectCommand(CreateProjectRequest{
		Target: "1", Name: "My App", Path: "/src/My App", Activity: "MyAppActivity", Package: "com.example.myapp",
	})
	assert.Equal(t, []string{
		"create", "project", "--target", "1", "--name", "My App", "--path", "/src/My App",
		"--activity", "MyAppActivity", "--package", "com.example.myapp",
	}, create.Args)
	assert.Equal(t, `android create project --target 1 --name "My App" --path "/src/My App" --activity MyAppActivity --package com.example.myapp`, create.String())
}

func TestToolchain_ADBWithoutSDK(t *testing.T) {
	tc := &Toolchain{}
	assert.Equal(t, "adb", tc.ADBPath())
	assert.Equal(t, "", tc.DevicesCommand().Dir)
}

func TestCreateProjectRequest_Validate(t *testing.T) {
	r := CreateProjectRequest{Target: "1", Name: "A", Path: "/a", Activity: "AActivity", Package: "com.a"}
	require.NoError(t, r.Validate())

	r.Package = ""
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package")
}

func TestToolchain_ListTargetsAndDevices(t *testing.T) {
	tc := &Toolchain{AndroidCommand: "android", SDKDir: "/opt/sdk"}
	fr := &fakeRunner{out: map[string]string{
		tc.ListTargetsCommand().String(): "id: 1\nName: Foo\n",
		tc.DevicesCommand().String():     "List of devices attached\nemulator-5554\tdevice\n",
	}}
	tc.Runner = fr

	targets, err := tc.ListTargets(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "Foo", targets[0].Name())

	serials, err := tc.ListDevices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"emulator-5554"}, serials)
	assert.Len(t, fr.calls, 2)
}

func TestToolchain_RunnerError(t *testing.T) {
	boom := errors.New("boom")
	tc := &Toolchain{AndroidCommand: "android", Runner: &fakeRunner{err: boom}}

	_, err := tc.ListTargets(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestExecRunner_Missing(t *testing.T) {
	_, err := ExecRunner{}.Output(context.Background(), Command{Name: "lazydroid-no-such-tool-xyz"})
	require.Error(t, err)

	var te *ToolError
	require.True(t, errors.As(err, &te))
	assert.True(t, IsNotInstalled(err))
	assert.ErrorIs(t, err, exec.ErrNotFound)
}
