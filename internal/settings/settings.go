package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Setting keys
const (
	AndroidCommand          = "androidCommand"
	AntCommand              = "antCommand"
	DefaultProjectPath      = "defaultProjectPath"
	DefaultPackageNamespace = "defaultPackageNamespace"
	DefaultBuildTarget      = "defaultBuildTarget"
	BuildMode               = "buildMode"
	ConfirmQuit             = "confirmQuit"
)

// Setting describes one configurable value for the settings panel
type Setting struct {
	Key         string
	Name        string
	Description string
	Type        string // "bool", "string" or "choice"
	Choices     []string
	Default     interface{}
}

// Category groups related settings
type Category struct {
	Name     string
	Icon     string
	Settings []Setting
}

var categories = []Category{
	{
		Name: "Tools",
		Icon: "⚙",
		Settings: []Setting{
			{Key: AndroidCommand, Name: "Android Tool", Description: "Command for the android SDK tool", Type: "string", Default: "android"},
			{Key: AntCommand, Name: "Build Tool", Description: "Command invoked with the build mode", Type: "string", Default: "ant"},
			{Key: BuildMode, Name: "Build Mode", Description: "Mode passed to the build tool", Type: "choice", Choices: []string{"debug", "release"}, Default: "debug"},
		},
	},
	{
		Name: "Projects",
		Icon: "▣",
		Settings: []Setting{
			{Key: DefaultProjectPath, Name: "Project Folder", Description: "Where new projects are created", Type: "string", Default: defaultProjectPath()},
			{Key: DefaultPackageNamespace, Name: "Package Namespace", Description: "Prefix for generated package names", Type: "string", Default: "com.example"},
			{Key: DefaultBuildTarget, Name: "Build Target", Description: "Target id preselected for new projects", Type: "string", Default: ""},
		},
	},
	{
		Name: "Interface",
		Icon: "◐",
		Settings: []Setting{
			{Key: ConfirmQuit, Name: "Confirm Quit", Description: "Press q twice to quit", Type: "bool", Default: true},
		},
	},
}

func defaultProjectPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// GetCategories returns the settings panel layout
func GetCategories() []Category {
	return categories
}

// Settings holds user configuration backed by a YAML file
type Settings struct {
	mu     sync.RWMutex
	path   string
	values map[string]interface{}
}

// ConfigPath returns the default settings file location
func ConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "lazydroid", "config.yaml"), nil
}

// Defaults returns settings holding only default values, not bound to a file
func Defaults() *Settings {
	s := &Settings{values: make(map[string]interface{})}
	for _, cat := range categories {
		for _, def := range cat.Settings {
			s.values[def.Key] = def.Default
		}
	}
	return s
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads settings from path. A missing file yields defaults.
func LoadFrom(path string) (*Settings, error) {
	s := Defaults()
	s.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	var stored map[string]interface{}
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	for k, v := range stored {
		if def, ok := lookup(k); ok {
			if v, ok = coerce(def, v); !ok {
				continue
			}
		}
		s.values[k] = v
	}
	return s, nil
}

func lookup(key string) (Setting, bool) {
	for _, cat := range categories {
		for _, def := range cat.Settings {
			if def.Key == key {
				return def, true
			}
		}
	}
	return Setting{}, false
}

// coerce converts a decoded value to the declared type of def. Nulls and
// values that cannot be converted are rejected so the default stays.
func coerce(def Setting, v interface{}) (interface{}, bool) {
	if v == nil {
		return nil, false
	}
	switch def.Type {
	case "bool":
		b, ok := v.(bool)
		return b, ok
	case "string", "choice":
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			return nil, false
		}
		return fmt.Sprint(v), true
	}
	return v, true
}

// Path returns the file the settings are saved to
func (s *Settings) Path() string {
	return s.path
}

// Save writes settings to their file
func (s *Settings) Save() error {
	if s.path == "" {
		return errors.New("settings have no file")
	}
	s.mu.RLock()
	data, err := yaml.Marshal(s.values)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	return nil
}

func (s *Settings) get(key string) interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *Settings) set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// GetString returns a string setting, "" when unset or of another type
func (s *Settings) GetString(key string) string {
	v, _ := s.get(key).(string)
	return v
}

// GetBool returns a bool setting
func (s *Settings) GetBool(key string) bool {
	v, _ := s.get(key).(bool)
	return v
}

// SetString stores a string setting
func (s *Settings) SetString(key, value string) { s.set(key, value) }

// ToggleBool flips a bool setting
func (s *Settings) ToggleBool(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _ := s.values[key].(bool)
	s.values[key] = !v
}

// CycleChoice advances a choice setting to its next value and returns it
func (s *Settings) CycleChoice(key string, choices []string) string {
	if len(choices) == 0 {
		return s.GetString(key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, _ := s.values[key].(string)
	next := choices[0]
	for i, c := range choices {
		if c == cur {
			next = choices[(i+1)%len(choices)]
			break
		}
	}
	s.values[key] = next
	return next
}
