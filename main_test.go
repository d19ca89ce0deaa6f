package main

import (
	"context"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"MediaConverter/common"
	"MediaConverter/shellmenu"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnvironment(t *testing.T) *environment {
	t.Helper()
	mgr, err := common.NewConfigManager(filepath.Join(t.TempDir(), common.FileNameSettings))
	require.NoError(t, err)
	return &environment{
		configMgr: mgr,
		logger:    common.NewWriterLogger(io.Discard, false),
		paths:     common.Paths{Executable: `C:\Tools\MediaConverter.exe`, FFmpeg: "ffmpeg"},
		menuStore: shellmenu.NewMemoryStore(),
	}
}

func TestConverterFollowsSavedSettings(t *testing.T) {
	env := newTestEnvironment(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "photo.png")
	writeSample(t, in)

	require.NoError(t, env.configMgr.Update(func(s *common.Settings) { s.JPEGQuality = 5 }))
	conv, err := env.converter(common.CategoryImage)
	require.NoError(t, err)
	low, err := conv.Convert(context.Background(), in, "jpg")
	require.NoError(t, err)
	lowSize := fileSize(t, low)

	require.NoError(t, env.configMgr.Update(func(s *common.Settings) { s.JPEGQuality = 100 }))
	conv, err = env.converter(common.CategoryImage)
	require.NoError(t, err)
	high, err := conv.Convert(context.Background(), in, "jpg")
	require.NoError(t, err)

	assert.Greater(t, fileSize(t, high), lowSize)
}

func TestConvertersCoverEveryCategory(t *testing.T) {
	env := newTestEnvironment(t)
	var categories []common.Category
	for _, conv := range env.converters() {
		categories = append(categories, conv.Category())
	}
	assert.Equal(t, common.Categories, categories)
}

func TestRegistrarsShareMenuStore(t *testing.T) {
	env := newTestEnvironment(t)

	first := env.newRegistrar(nil)
	first.SetElevationCheck(func() bool { return true })
	_, err := first.Register(context.Background())
	require.NoError(t, err)

	second := env.newRegistrar(nil)
	status, err := second.Status()
	require.NoError(t, err)
	assert.True(t, status)
}

func writeSample(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 4), G: uint8((x * y) % 256), B: uint8(y * 4), A: 255})
		}
	}
	require.NoError(t, imaging.Save(img, path))
}

func fileSize(t *testing.T, path string) int64 {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.Size()
}
