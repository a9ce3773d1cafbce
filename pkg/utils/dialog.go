//go:build !test

package utils

import "github.com/sqweek/dialog"

// AskForFile opens a native file picker filtered to preset files.
func AskForFile(title, startingDir string) (string, error) {
	builder := dialog.File().
		SetStartDir(startingDir).
		Filter("Presets", "txt", "gz", "zip", "7z").
		Title(title)

	// show the dialog
	return builder.Load()
}
