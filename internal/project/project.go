package project

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultMode is the build mode used when none is given.
	DefaultMode = "debug"

	// PropertiesFile holds machine-local build settings such as sdk.dir.
	PropertiesFile = "local.properties"

	sdkDirKey = "sdk.dir"
)

// ErrNotFound is returned when the project directory or one of its
// required files does not exist.
var ErrNotFound = errors.New("not found")

// Project is an Android project directory on disk
type Project struct {
	path string
}

// New opens the project at path. The path is stored verbatim.
func New(path string) (*Project, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("android project directory does not exist: %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("stat project directory %s: %w", path, err)
	}
	return &Project{path: path}, nil
}

// Path returns the project root as given to New.
func (p *Project) Path() string {
	return p.path
}

// Name returns the last segment of the project path.
// A path with a trailing separator yields an empty name.
func (p *Project) Name() string {
	i := strings.LastIndexAny(p.path, separators)
	return p.path[i+1:]
}

// APKFilename returns {path}/bin/{name}-{mode}.apk without touching the
// filesystem.
func (p *Project) APKFilename(mode string) string {
	return joinPath(p.path, "bin", fmt.Sprintf("%s-%s.apk", p.Name(), mode))
}

// DebugAPK is APKFilename(DefaultMode).
func (p *Project) DebugAPK() string {
	return p.APKFilename(DefaultMode)
}

// PropertiesPath returns the location of local.properties.
func (p *Project) PropertiesPath() string {
	return joinPath(p.path, PropertiesFile)
}

// SDKPath reads sdk.dir from local.properties. The boolean is false when the
// file has no sdk.dir entry; a missing file is an error wrapping ErrNotFound.
func (p *Project) SDKPath() (string, bool, error) {
	fn := p.PropertiesPath()
	f, err := os.Open(fn)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, fmt.Errorf("could not find local properties file: %s: %w", fn, ErrNotFound)
		}
		return "", false, fmt.Errorf("open %s: %w", fn, err)
	}
	defer f.Close()

	value, ok, err := lookupProperty(bufio.NewReader(f), sdkDirKey)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", fn, err)
	}
	return value, ok, nil
}

// lookupProperty returns the value of the first uncommented key=value line
// whose key matches. Lines are read whole, however long.
func lookupProperty(r *bufio.Reader, key string) (string, bool, error) {
	for {
		line, err := r.ReadString('\n')
		if line != "" && !strings.HasPrefix(line, "#") {
			if k, v, found := strings.Cut(line, "="); found && strings.TrimSpace(k) == key {
				return strings.TrimSpace(v), true, nil
			}
		}
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
	}
}

const separators = "/" + string(filepath.Separator)

// joinPath appends elements with the platform separator, leaving the base
// untouched apart from not doubling a trailing separator.
func joinPath(base string, elem ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, e := range elem {
		if b.Len() > 0 && !strings.ContainsAny(b.String()[b.Len()-1:], separators) {
			b.WriteRune(filepath.Separator)
		}
		b.WriteString(e)
	}
	return b.String()
}
