//go:build !windows

// common/language_manager_other.go

package common

import (
	"os"
	"strings"
)

// getSystemLanguage reads the POSIX locale variables, e.g. "cs_CZ.UTF-8" becomes "cs_cz.utf-8".
func getSystemLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := os.Getenv(key); value != "" && value != "C" && value != "POSIX" {
			return strings.ToLower(value)
		}
	}
	return ""
}
