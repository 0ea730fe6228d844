package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
)

// ManifestFile marks the root of an Android project.
const ManifestFile = "AndroidManifest.xml"

// Found is a project directory located by Discover.
type Found struct {
	Name string
	Path string
	// HasProperties reports whether local.properties is present.
	HasProperties bool
}

// Discover walks root looking for Android projects, at most maxDepth
// directories deep. Unreadable directories are skipped.
func Discover(root string, maxDepth int) ([]Found, error) {
	var found []Found
	root = filepath.Clean(root)
	base := strings.Count(root, string(filepath.Separator))

	err := godirwalk.Walk(root, &godirwalk.Options{
		Unsorted: false,
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if !de.IsDir() {
				return nil
			}
			if osPathname != root && skipDir(de.Name()) {
				return filepath.SkipDir
			}
			if strings.Count(osPathname, string(filepath.Separator))-base > maxDepth {
				return filepath.SkipDir
			}
			if _, err := os.Stat(filepath.Join(osPathname, ManifestFile)); err != nil {
				return nil
			}
			_, err := os.Stat(filepath.Join(osPathname, PropertiesFile))
			found = append(found, Found{
				Name:          filepath.Base(osPathname),
				Path:          osPathname,
				HasProperties: err == nil,
			})
			// nested projects are library modules of this one
			return filepath.SkipDir
		},
		ErrorCallback: func(string, error) godirwalk.ErrorAction {
			return godirwalk.SkipNode
		},
	})
	return found, err
}

func skipDir(name string) bool {
	switch name {
	case "bin", "gen", "build", "libs", "node_modules":
		return true
	}
	return strings.HasPrefix(name, ".")
}
