package ui

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Title capitalizes the first letter of each word, as in "pulled" -> "Pulled".
func Title(s string) string {
	return titleCaser.String(s)
}

// Synced returns the status line for a descriptor that was synced, for example
// "✓ Pulled 'dots/bashrc.yoink'".
func Synced(pastTense, descriptor string) string {
	return StatusSuccess(fmt.Sprintf("%s '%s'", Title(pastTense), descriptor))
}

// SyncFailed returns the status line for a descriptor that failed.
func SyncFailed(descriptor string, err error) string {
	return StatusError(fmt.Sprintf("%s: %v", Bold(descriptor), err))
}
