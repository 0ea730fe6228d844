package lazydroid

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icarus-itcs/lazydroid/internal/session"
	"github.com/icarus-itcs/lazydroid/internal/settings"
)

func TestCommandsRegistered(t *testing.T) {
	want := []string{"version", "info", "targets", "devices", "new", "build", "install", "run", "sdk", "avd", "preflight"}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
	for _, flag := range []string{"config", "verbose", "project", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestSetupLoadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("antCommand: /opt/ant/bin/ant\n"), 0644))

	configPath = path
	t.Cleanup(func() {
		configPath = ""
		if logCloser != nil {
			logCloser.Close()
		}
	})
	require.NoError(t, setup(rootCmd, nil))
	assert.Equal(t, "/opt/ant/bin/ant", sess.Settings().GetString(settings.AntCommand))
	assert.Equal(t, path, sess.Settings().Path())
}

func TestOpenProjectFlag(t *testing.T) {
	sess = session.New(nil, nil, nil)
	dir := t.TempDir()
	projectDir = dir
	t.Cleanup(func() { projectDir = "" })

	p, err := openProject()
	require.NoError(t, err)
	assert.Equal(t, dir, p.Path())

	projectDir = filepath.Join(dir, "missing")
	_, err = openProject()
	assert.Error(t, err)
}

func TestPickSerialFlag(t *testing.T) {
	serial = "emulator-5556"
	t.Cleanup(func() { serial = "" })
	s, err := pickSerial(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "emulator-5556", s)
}
