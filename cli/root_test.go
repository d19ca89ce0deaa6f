package cli

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"MediaConverter/common"
	"MediaConverter/converter"
	"MediaConverter/shellmenu"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	store  *shellmenu.MemoryStore
	deps   Deps
}

func newHarness(t *testing.T, elevated bool) *harness {
	t.Helper()
	h := &harness{store: shellmenu.NewMemoryStore()}

	console := &common.ConsoleReporter{Out: &h.stdout, ErrOut: &h.stderr}
	audio, err := converter.NewMediaConverter(common.CategoryAudio, filepath.Join(t.TempDir(), "missing-ffmpeg"), nil, nil)
	require.NoError(t, err)

	registrar := shellmenu.NewRegistrar(h.store, `C:\Tools\MediaConverter.exe`, console, nil)
	registrar.SetElevationCheck(func() bool { return elevated })

	h.deps = Deps{
		Stdout:    &h.stdout,
		Stderr:    &h.stderr,
		Walker:    converter.NewWalker(console, nil, converter.NewImageConverter(converter.ImageOptions{}, nil), audio),
		Registrar: registrar,
	}
	return h
}

func (h *harness) run(args ...string) int {
	return Run(context.Background(), args, h.deps)
}

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, imaging.Save(image.NewNRGBA(image.Rect(0, 0, 4, 4)), path))
	return path
}

func TestNormalizeArgs(t *testing.T) {
	in := []string{"--audio", "-ai", `C:\a b\song.wav`, "-o", "mp3", "-ar", "-vi=clip.mp4", "-vo", "-vr", "-ir", "--image"}
	want := []string{"--audio", "--audio-input", `C:\a b\song.wav`, "-o", "mp3", "--audio-recursive", "--video-input=clip.mp4", "--video-output", "--video-recursive", "--recursive", "--image"}
	assert.Equal(t, want, NormalizeArgs(in))
}

func TestRunWithoutOperationPrintsUsage(t *testing.T) {
	h := newHarness(t, true)
	assert.Equal(t, ExitOK, h.run())
	assert.Contains(t, h.stdout.String(), "Usage:")
}

func TestRunIncompleteArgsPrintUsage(t *testing.T) {
	tests := [][]string{
		{"--image", "photo.png"},
		{"--audio", "-ai", "song.wav"},
		{"--video", "-vo", "mp4"},
	}
	for _, args := range tests {
		h := newHarness(t, true)
		assert.Equal(t, ExitOK, h.run(args...), args)
		assert.Contains(t, h.stdout.String(), "Usage:", args)
	}
}

func TestRunUnsupportedFormat(t *testing.T) {
	h := newHarness(t, true)
	code := h.run("--image", "photo.png", "XYZ")

	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, "Error: Unsupported image format 'xyz'. Supported formats are: bmp, gif, ico, jpeg, png, pdf, tiff, webp\n", h.stderr.String())

	h = newHarness(t, true)
	assert.Equal(t, ExitFailure, h.run("--video", "-vi", "clip.mp4", "-vo", "mp3"))
	assert.Contains(t, h.stderr.String(), "Unsupported video format 'mp3'")
}

func TestRunImageConversion(t *testing.T) {
	dir := t.TempDir()
	input := writePNG(t, dir, "photo.png")

	h := newHarness(t, true)
	assert.Equal(t, ExitOK, h.run("--image", input, "JPG"))
	assert.Equal(t, "Success! Converted '"+input+"' to '"+filepath.Join(dir, "photo.jpg")+"'.\n", h.stdout.String())
	assert.FileExists(t, filepath.Join(dir, "photo.jpg"))
}

func TestRunImageRecursionFlags(t *testing.T) {
	for _, flag := range []string{"-r", "-ir", "--recursive", "--image-recursive"} {
		t.Run(flag, func(t *testing.T) {
			dir := t.TempDir()
			writePNG(t, dir, "top.png")
			writePNG(t, dir, filepath.Join("sub", "nested.png"))

			h := newHarness(t, true)
			assert.Equal(t, ExitOK, h.run("--image", dir, "gif", flag))
			assert.FileExists(t, filepath.Join(dir, "sub", "nested.gif"))
		})
	}

	dir := t.TempDir()
	writePNG(t, dir, filepath.Join("sub", "nested.png"))
	h := newHarness(t, true)
	assert.Equal(t, ExitOK, h.run("--image", dir, "gif"))
	assert.NoFileExists(t, filepath.Join(dir, "sub", "nested.gif"))
}

func TestRunConversionFailureKeepsExitCode(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "song.wav")
	require.NoError(t, os.WriteFile(input, []byte("RIFF"), 0644))

	h := newHarness(t, true)
	assert.Equal(t, ExitOK, h.run("--audio", "-ai", input, "-o", "mp3"))
	assert.Contains(t, h.stderr.String(), "Error converting '"+input+"': ")
	assert.Empty(t, h.stdout.String())
}

func TestRunInvalidPath(t *testing.T) {
	h := newHarness(t, true)
	assert.Equal(t, ExitOK, h.run("--image", filepath.Join(t.TempDir(), "nope"), "png"))
	assert.Contains(t, h.stderr.String(), "is not a valid file or directory")
}

func TestRunRegister(t *testing.T) {
	h := newHarness(t, true)
	assert.Equal(t, ExitOK, h.run("--register"))
	assert.Contains(t, h.stdout.String(), "Context menu entries added successfully.")

	exists, _ := h.store.KeyExists(`Software\Classes\SystemFileAssociations\image\shell\Convert Media To`)
	assert.True(t, exists)

	assert.Equal(t, ExitOK, h.run("--unregister"))
	exists, _ = h.store.KeyExists(`Software\Classes\SystemFileAssociations\image\shell\Convert Media To`)
	assert.False(t, exists)
}

func TestRunRegisterWithoutElevation(t *testing.T) {
	h := newHarness(t, false)
	assert.Equal(t, ExitFailure, h.run("--register"))
	assert.Contains(t, h.stderr.String(), "administrator privileges")
	assert.Empty(t, h.store.Mutations())

	assert.Equal(t, ExitFailure, h.run("--unregister"))
}

func TestRunUnknownFlag(t *testing.T) {
	h := newHarness(t, true)
	assert.Equal(t, ExitUsageFlag, h.run("--bogus"))
	assert.Contains(t, h.stderr.String(), "unknown flag: --bogus")
}

func TestRunVersion(t *testing.T) {
	h := newHarness(t, true)
	assert.Equal(t, ExitOK, h.run("--version"))
	assert.Contains(t, h.stdout.String(), common.AppVersion)
}

func TestRunImageAcceptsTifAlias(t *testing.T) {
	h := newHarness(t, true)
	dir := t.TempDir()
	in := writePNG(t, dir, "photo.png")

	assert.Equal(t, ExitOK, h.run("--image", in, "tif"))
	assert.Empty(t, h.stderr.String())
	assert.Contains(t, h.stdout.String(), "Success!")
	assert.FileExists(t, filepath.Join(dir, "photo.tif"))
}
