// common/paths.go

package common

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Paths is the immutable location set resolved once at startup and passed to the
// converters and the menu registrar.
type Paths struct {
	BundleRoot string
	Executable string
	FFmpeg     string
	FFprobe    string
}

// HelperOverrides holds user supplied helper locations. Empty fields are resolved.
type HelperOverrides struct {
	FFmpeg  string
	FFprobe string
}

// ResolvePaths resolves the bundle root, the own executable and both helpers
func ResolvePaths(overrides HelperOverrides) (Paths, error) {
	root, err := ResolveBundleRoot()
	if err != nil {
		return Paths{}, err
	}

	exe, err := os.Executable()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to resolve executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	p := Paths{
		BundleRoot: root,
		Executable: exe,
		FFmpeg:     NormalizePath(overrides.FFmpeg),
		FFprobe:    NormalizePath(overrides.FFprobe),
	}
	if p.FFmpeg == "" {
		p.FFmpeg = ResolveHelper(root, HelperFFmpeg)
	}
	if p.FFprobe == "" {
		p.FFprobe = ResolveHelper(root, HelperFFprobe)
	}
	return p, nil
}

// ResolveBundleRoot returns the directory holding the bundled helpers.
// MEDIACONVERTER_HOME wins. A binary started by `go run` lives in a temporary
// build directory, so the working directory is used for it.
func ResolveBundleRoot() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return NormalizePath(home), nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	if isTransientBuild(exe) {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		return wd, nil
	}
	return filepath.Dir(exe), nil
}

func isTransientBuild(exe string) bool {
	tmp := filepath.Clean(os.TempDir())
	return strings.HasPrefix(filepath.Clean(exe), tmp) && strings.Contains(exe, "go-build")
}

// HelperFileName returns the platform file name of a helper
func HelperFileName(name string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name + ".exe"
	}
	return name
}

// ResolveHelper looks for a helper in the bundle root, then in its tools folder, then on PATH.
// When none exists the bundle root candidate is returned so the failure surfaces later.
func ResolveHelper(root, name string) string {
	fileName := HelperFileName(name)
	candidates := []string{
		filepath.Join(root, fileName),
		filepath.Join(root, FolderNameTools, fileName),
	}
	for _, candidate := range candidates {
		if FileExists(candidate) {
			return candidate
		}
	}
	if found, err := exec.LookPath(fileName); err == nil {
		return found
	}
	return candidates[0]
}

// Helper returns the resolved path of a helper by base name
func (p Paths) Helper(name string) string {
	switch strings.TrimSuffix(strings.ToLower(name), ".exe") {
	case HelperFFmpeg:
		return p.FFmpeg
	case HelperFFprobe:
		return p.FFprobe
	}
	return ResolveHelper(p.BundleRoot, name)
}

// VerifyHelpers checks each helper exists, is a regular file and is executable.
// The returned diagnostics are meant to be logged, they are never fatal.
func (p Paths) VerifyHelpers() []error {
	var problems []error
	for _, helper := range []struct{ name, path string }{
		{HelperFFmpeg, p.FFmpeg},
		{HelperFFprobe, p.FFprobe},
	} {
		if err := VerifyExecutable(helper.path); err != nil {
			problems = append(problems, fmt.Errorf("%s verification failed: %w", helper.name, err))
		}
	}
	return problems
}

// ErrNotExecutable is returned by VerifyExecutable for files without execute permission
var ErrNotExecutable = errors.New("file is not executable")

// VerifyExecutable checks that path is an existing, regular, executable file
func VerifyExecutable(path string) error {
	if IsEmptyString(path) {
		return fmt.Errorf("no path configured")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("not found at %s", path)
		}
		return fmt.Errorf("cannot stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a file", path)
	}
	if runtime.GOOS == "windows" {
		if !strings.EqualFold(filepath.Ext(path), ".exe") {
			return fmt.Errorf("%s: %w", path, ErrNotExecutable)
		}
		return nil
	}
	if info.Mode().Perm()&0111 == 0 {
		return fmt.Errorf("%s: %w", path, ErrNotExecutable)
	}
	return nil
}
