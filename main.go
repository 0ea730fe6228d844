package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/icarus-itcs/lazydroid/cmd/lazydroid"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := lazydroid.Execute(version, commit, date); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
