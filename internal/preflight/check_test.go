package preflight

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icarus-itcs/lazydroid/internal/project"
)

func TestRunTools_MissingTools(t *testing.T) {
	tools := []RequiredTool{
		{Name: "needed", Command: "lazydroid-missing-required", Required: true, Platform: "all"},
		{Name: "nice", Command: "lazydroid-missing-optional", Platform: "all"},
		{Name: "elsewhere", Command: "lazydroid-other-os", Required: true, Platform: "plan9-never"},
	}
	r := RunTools(tools, Options{})

	require.Len(t, r.Checks, 2)
	assert.Equal(t, StatusError, r.Checks[0].Status)
	assert.Equal(t, StatusWarning, r.Checks[1].Status)
	assert.True(t, r.HasErrors)
	assert.True(t, r.HasWarnings)
	assert.Equal(t, "1 errors, 1 warnings", r.Summary())
	assert.Empty(t, r.Discoveries)
}

func TestRunTools_DiscoversProjects(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "Hello")
	require.NoError(t, os.Mkdir(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, project.ManifestFile), []byte("<manifest/>"), 0644))

	r := RunTools(nil, Options{ProjectRoot: root})
	require.Len(t, r.Discoveries, 1)
	assert.Equal(t, "Hello", r.Discoveries[0].Name)
	assert.Equal(t, "0 checks passed", r.Summary())
}

func TestTools(t *testing.T) {
	tools := Tools("/opt/sdk/tools/android", "ant", "")
	assert.Equal(t, "/opt/sdk/tools/android", tools[0].Command)
	assert.Equal(t, "ant", tools[1].Command)
	assert.Equal(t, "adb", tools[2].Command)
}

func TestRun_ChecksSDKAdb(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stands in for adb")
	}
	dir := filepath.Join(t.TempDir(), "platform-tools")
	require.NoError(t, os.Mkdir(dir, 0755))
	adb := filepath.Join(dir, "adb")
	require.NoError(t, os.WriteFile(adb, []byte("#!/bin/sh\necho 'Android Debug Bridge version 1.0.41'\n"), 0755))

	r := Run(Options{AndroidCommand: "lazydroid-missing-android", AntCommand: "lazydroid-missing-ant", ADBCommand: adb})
	var check CheckResult
	for _, c := range r.Checks {
		if c.Name == "Android ADB" {
			check = c
		}
	}
	assert.Equal(t, StatusOK, check.Status)
	assert.Equal(t, adb, check.Path)
	assert.Equal(t, "1.0.41", check.Message)
}

func TestCleanVersion(t *testing.T) {
	assert.Equal(t, "1.0.41", cleanVersion("Android Debug Bridge version 1.0.41\nVersion 34.0.5\n"))
	assert.Equal(t, "1.10.14", cleanVersion("Apache Ant(TM) version 1.10.14\n"))
	assert.Equal(t, "0123456789012345678901234567890123"[:30]+"...", cleanVersion("0123456789012345678901234567890123"))
	assert.Equal(t, "", cleanVersion("  \n"))
}
