package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProperties(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PropertiesFile), []byte(content), 0644))
}

func TestNew_ExistingDir(t *testing.T) {
	dir := t.TempDir()
	p, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, p.Path())
}

func TestNew_Missing(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "HelloDroid")
	require.NoError(t, os.Mkdir(dir, 0755))

	p, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, "HelloDroid", p.Name())

	// trailing separator is stored as-is and yields no name
	p, err = New(dir + string(filepath.Separator))
	require.NoError(t, err)
	assert.Equal(t, "", p.Name())
}

func TestAPKFilename(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "HelloDroid")
	require.NoError(t, os.Mkdir(dir, 0755))
	p, err := New(dir)
	require.NoError(t, err)

	sep := string(filepath.Separator)
	assert.Equal(t, dir+sep+"bin"+sep+"HelloDroid-debug.apk", p.APKFilename("debug"))
	assert.Equal(t, p.APKFilename(DefaultMode), p.DebugAPK())
	assert.Equal(t, dir+sep+"bin"+sep+"HelloDroid-release.apk", p.APKFilename("release"))

	_, err = os.Stat(p.DebugAPK())
	assert.True(t, os.IsNotExist(err), "APKFilename must not create anything")
}

func TestSDKPath(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{"basic", "#comment\nsdk.dir=/opt/sdk\nother=1\n", "/opt/sdk", true},
		{"no key", "#comment\nother=1\n", "", false},
		{"commented key", "#sdk.dir=/old\nsdk.dir=/new\n", "/new", true},
		{"first wins", "sdk.dir=/first\nsdk.dir=/second\n", "/first", true},
		{"trims value", "sdk.dir =  /opt/android-sdk  \n", "/opt/android-sdk", true},
		{"value keeps later equals", "sdk.dir=/a=b\n", "/a=b", true},
		{"no separator", "sdk.dir\n", "", false},
		{"prefix is not key", "sdk.dirs=/x\n", "", false},
		{"empty", "", "", false},
		{"crlf", "sdk.dir=C:\\sdk\r\n", "C:\\sdk", true},
		{"long comment before key", "# " + strings.Repeat("x", 70*1024) + "\nsdk.dir=/opt/sdk\n", "/opt/sdk", true},
		{"no trailing newline", "sdk.dir=/opt/sdk", "/opt/sdk", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeProperties(t, dir, tt.content)
			p, err := New(dir)
			require.NoError(t, err)

			got, ok, err := p.SDKPath()
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSDKPath_MissingFile(t *testing.T) {
	p, err := New(t.TempDir())
	require.NoError(t, err)

	_, _, err = p.SDKPath()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuggestNames(t *testing.T) {
	assert.Equal(t, "com.example.helloworld", SuggestPackage("com.example", "Hello World!"))
	assert.Equal(t, "org.acme.my_app2", SuggestPackage("org.acme", "My_App2"))
	assert.Equal(t, "HelloActivity", SuggestActivity("Hello"))
}
