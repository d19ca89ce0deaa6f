// common/files_helpers.go

package common

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// NormalizePath provides normalized path
func NormalizePath(path string) string {
	if IsEmptyString(path) {
		return ""
	}
	return filepath.Clean(filepath.FromSlash(strings.Trim(strings.TrimSpace(path), `"`)))
}

// IsEmptyString reports whether s contains only whitespace
func IsEmptyString(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FileExists checks if a regular file exists
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists ensures the specified directory exists
func EnsureDirectoryExists(path string) error {
	if IsEmptyString(path) {
		return fmt.Errorf("path cannot be empty")
	}

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}

	if os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", path, err)
		}
		return nil
	}

	return fmt.Errorf("failed to check existence of directory '%s': %w", path, err)
}

// HasExtension reports whether the file name ends with one of the extensions, ignoring case
func HasExtension(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// ListFilesWithExtensions returns the files under dirPath matching one of the extensions.
// Only immediate children are listed unless recursive is set. The result is sorted by path.
func ListFilesWithExtensions(dirPath string, extensions []string, recursive bool) ([]string, error) {
	if !DirectoryExists(dirPath) {
		return nil, fmt.Errorf("directory does not exist: %s", dirPath)
	}

	var result []string

	walkFn := func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if path == dirPath {
				return fmt.Errorf("error accessing path '%s': %w", path, err)
			}
			// Unreadable subtrees are skipped, the rest of the walk continues
			CaptureEarlyLog(SeverityWarning, "Skipping unreadable path '%s': %v", path, err)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if path != dirPath && !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type().IsRegular() && HasExtension(entry.Name(), extensions) {
			result = append(result, path)
		}
		return nil
	}

	if err := filepath.WalkDir(dirPath, walkFn); err != nil {
		return nil, fmt.Errorf("error listing files in directory '%s': %w", dirPath, err)
	}

	sort.Strings(result)
	return result, nil
}

// OutputPathFor returns the path beside inputPath with the extension replaced by format
func OutputPathFor(inputPath, format string) string {
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, name+"."+NormalizeFormat(format))
}

// SameFile reports whether both paths name the same file. Paths differing only in case
// match when the file system treats them as one file.
func SameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

// JoinPaths joins path elements into a single path
func JoinPaths(elements ...string) string {
	return filepath.Join(elements...)
}

// AppDataDir returns %APPDATA%\MediaConverter or the user config dir equivalent,
// empty when neither is available
func AppDataDir() string {
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, AppName)
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, AppName)
	}
	return ""
}
