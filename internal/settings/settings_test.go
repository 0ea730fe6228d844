package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	assert.Equal(t, "android", s.GetString(AndroidCommand))
	assert.Equal(t, "ant", s.GetString(AntCommand))
	assert.Equal(t, "com.example", s.GetString(DefaultPackageNamespace))
	assert.Equal(t, "debug", s.GetString(BuildMode))
	assert.True(t, s.GetBool(ConfirmQuit))
	assert.NotEmpty(t, s.GetString(DefaultProjectPath))
}

func TestLoadFrom_NonExistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.yaml")
	s, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "android", s.GetString(AndroidCommand))
	assert.Equal(t, path, s.Path())
}

func TestLoadFrom_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "androidCommand: /opt/sdk/tools/android\nconfirmQuit: false\nextra: keep\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/sdk/tools/android", s.GetString(AndroidCommand))
	assert.False(t, s.GetBool(ConfirmQuit))
	assert.Equal(t, "keep", s.GetString("extra"))
	assert.Equal(t, "ant", s.GetString(AntCommand))
}

func TestLoadFrom_CoercesToDeclaredType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "defaultBuildTarget: 1\nandroidCommand: ~\nbuildMode: [debug]\nconfirmQuit: \"no\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "1", s.GetString(DefaultBuildTarget))
	assert.Equal(t, "android", s.GetString(AndroidCommand), "null keeps the default")
	assert.Equal(t, "debug", s.GetString(BuildMode))
	assert.True(t, s.GetBool(ConfirmQuit))
}

func TestLoadFrom_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("androidCommand: [unclosed\n"), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	s, err := LoadFrom(path)
	require.NoError(t, err)

	s.SetString(DefaultBuildTarget, "android-8")
	s.ToggleBool(ConfirmQuit)
	require.NoError(t, s.Save())

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "android-8", loaded.GetString(DefaultBuildTarget))
	assert.False(t, loaded.GetBool(ConfirmQuit))
}

func TestSave_NoPath(t *testing.T) {
	assert.Error(t, Defaults().Save())
}

func TestCycleChoice(t *testing.T) {
	s := Defaults()
	choices := []string{"debug", "release"}
	assert.Equal(t, "release", s.CycleChoice(BuildMode, choices))
	assert.Equal(t, "debug", s.CycleChoice(BuildMode, choices))

	s.SetString(BuildMode, "weird")
	assert.Equal(t, "debug", s.CycleChoice(BuildMode, choices))
}

func TestCategoriesHaveDefaults(t *testing.T) {
	s := Defaults()
	for _, cat := range GetCategories() {
		for _, def := range cat.Settings {
			assert.Equal(t, def.Default, s.get(def.Key), def.Key)
		}
	}
}
