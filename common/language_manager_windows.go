//go:build windows

// common/language_manager_windows.go
// This file contains Windows-specific language detection functionality.

package common

import (
	"strings"

	"golang.org/x/sys/windows"
)

// getSystemLanguage returns the first preferred UI language of the user, e.g. "cs-cz".
func getSystemLanguage() string {
	langs, err := windows.GetUserPreferredUILanguages(windows.MUI_LANGUAGE_NAME)
	if err != nil || len(langs) == 0 {
		return ""
	}
	return strings.ToLower(langs[0])
}
