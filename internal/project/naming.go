package project

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W+`)

// SuggestPackage derives a Java package for a new project from the
// configured namespace and the project name.
func SuggestPackage(namespace, name string) string {
	return namespace + "." + nonWord.ReplaceAllString(strings.ToLower(name), "")
}

// SuggestActivity derives the main activity class name.
func SuggestActivity(name string) string {
	return name + "Activity"
}
