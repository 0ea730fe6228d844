package preflight

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/icarus-itcs/lazydroid/internal/project"
)

// CheckResult represents the result of a single check
type CheckResult struct {
	Name    string
	Status  Status
	Message string
	Path    string
}

// Status represents the status of a check
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusError
)

// Results contains all preflight check results
type Results struct {
	Checks      []CheckResult
	Discoveries []project.Found
	HasErrors   bool
	HasWarnings bool
}

// RequiredTool defines a tool to check for
type RequiredTool struct {
	Name     string
	Command  string
	Required bool
	Platform string // "all", "darwin", "linux", "windows"
	// VersionArgs are passed to read a version line; nil skips the probe.
	VersionArgs []string
}

// Tools returns the tools checked, with the configured commands for the
// android and build tools. adb is the binary installs go through, usually
// inside the project's SDK; "" looks it up on PATH.
func Tools(androidCommand, antCommand, adbCommand string) []RequiredTool {
	if adbCommand == "" {
		adbCommand = "adb"
	}
	return []RequiredTool{
		{Name: "Android SDK tool", Command: androidCommand, Required: true, Platform: "all"},
		{Name: "Build tool", Command: antCommand, Required: true, Platform: "all", VersionArgs: []string{"-version"}},
		{Name: "Android ADB", Command: adbCommand, Required: true, Platform: "all", VersionArgs: []string{"version"}},
		{Name: "Android Emulator", Command: "emulator", Required: false, Platform: "all"},
		{Name: "Java", Command: "java", Required: false, Platform: "all", VersionArgs: []string{"-version"}},
	}
}

// Options controls a preflight run
type Options struct {
	AndroidCommand string
	AntCommand     string
	ADBCommand     string
	// ProjectRoot is searched for Android projects; empty skips discovery.
	ProjectRoot string
	MaxDepth    int
}

// Run executes all preflight checks
func Run(opts Options) *Results {
	return RunTools(Tools(opts.AndroidCommand, opts.AntCommand, opts.ADBCommand), opts)
}

// RunTools checks the given tools and discovers projects
func RunTools(tools []RequiredTool, opts Options) *Results {
	results := &Results{
		Checks: make([]CheckResult, 0, len(tools)),
	}

	for _, tool := range tools {
		// Skip platform-specific tools
		if tool.Platform != "all" && tool.Platform != runtime.GOOS {
			continue
		}

		result := checkTool(tool)
		results.Checks = append(results.Checks, result)

		switch result.Status {
		case StatusError:
			results.HasErrors = true
		case StatusWarning:
			results.HasWarnings = true
		}
	}

	if opts.ProjectRoot != "" {
		depth := opts.MaxDepth
		if depth == 0 {
			depth = 3
		}
		if found, err := project.Discover(opts.ProjectRoot, depth); err == nil {
			results.Discoveries = found
		}
	}

	return results
}

func checkTool(tool RequiredTool) CheckResult {
	result := CheckResult{
		Name: tool.Name,
	}

	path, err := exec.LookPath(tool.Command)
	if err != nil {
		if tool.Required {
			result.Status = StatusError
			result.Message = "Not found - required"
		} else {
			result.Status = StatusWarning
			result.Message = "Not found - optional"
		}
		return result
	}

	result.Path = path
	result.Status = StatusOK
	result.Message = "OK"
	if version := getToolVersion(path, tool.VersionArgs); version != "" {
		result.Message = version
	}
	return result
}

func getToolVersion(path string, args []string) string {
	if args == nil {
		return ""
	}
	// java and ant print their version to stderr
	out, err := exec.Command(path, args...).CombinedOutput()
	if err != nil {
		return ""
	}
	return cleanVersion(string(out))
}

func cleanVersion(out string) string {
	version := strings.TrimSpace(out)
	// Clean up version string - take first line only
	if idx := strings.Index(version, "\n"); idx != -1 {
		version = strings.TrimSpace(version[:idx])
	}
	version = strings.TrimPrefix(version, "Android Debug Bridge version ")
	version = strings.TrimPrefix(version, "Apache Ant(TM) version ")

	if len(version) > 30 {
		version = version[:30] + "..."
	}
	return version
}

// Summary returns a short summary of the results
func (r *Results) Summary() string {
	ok := 0
	warn := 0
	fail := 0

	for _, c := range r.Checks {
		switch c.Status {
		case StatusOK:
			ok++
		case StatusWarning:
			warn++
		case StatusError:
			fail++
		}
	}

	if fail > 0 {
		return fmt.Sprintf("%d errors, %d warnings", fail, warn)
	}
	if warn > 0 {
		return fmt.Sprintf("%d warnings", warn)
	}
	return fmt.Sprintf("%d checks passed", ok)
}
