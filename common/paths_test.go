package common

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBundleRootFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)

	root, err := ResolveBundleRoot()
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(dir), root)
}

func TestResolveHelperPrefersBundle(t *testing.T) {
	root := t.TempDir()
	name := "mc-test-helper"

	// missing everywhere: the bundle root candidate is returned
	assert.Equal(t, filepath.Join(root, HelperFileName(name)), ResolveHelper(root, name))

	inTools := filepath.Join(root, FolderNameTools, HelperFileName(name))
	touch(t, inTools)
	assert.Equal(t, inTools, ResolveHelper(root, name))

	inRoot := filepath.Join(root, HelperFileName(name))
	touch(t, inRoot)
	assert.Equal(t, inRoot, ResolveHelper(root, name))
}

func TestResolvePathsOverrides(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	p, err := ResolvePaths(HelperOverrides{FFmpeg: `"/opt/ffmpeg/bin/ffmpeg"`})
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean("/opt/ffmpeg/bin/ffmpeg"), p.FFmpeg)
	assert.Equal(t, p.FFmpeg, p.Helper("ffmpeg.exe"))
	assert.NotEmpty(t, p.FFprobe)
	assert.NotEmpty(t, p.Executable)
}

func TestVerifyExecutable(t *testing.T) {
	dir := t.TempDir()

	assert.Error(t, VerifyExecutable(""))
	assert.Error(t, VerifyExecutable(filepath.Join(dir, "missing")))
	assert.Error(t, VerifyExecutable(dir))

	if runtime.GOOS == "windows" {
		exe := filepath.Join(dir, "ffmpeg.exe")
		touch(t, exe)
		assert.NoError(t, VerifyExecutable(exe))
		return
	}

	plain := filepath.Join(dir, "ffmpeg")
	touch(t, plain)
	assert.True(t, errors.Is(VerifyExecutable(plain), ErrNotExecutable))

	require.NoError(t, os.Chmod(plain, 0755))
	assert.NoError(t, VerifyExecutable(plain))

	problems := Paths{FFmpeg: plain, FFprobe: filepath.Join(dir, "ffprobe")}.VerifyHelpers()
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0].Error(), "ffprobe verification failed")
}
