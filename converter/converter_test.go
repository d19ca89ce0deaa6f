package converter

import (
	"testing"

	"MediaConverter/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromSettingsUsesCurrentValues(t *testing.T) {
	s := common.DefaultSettings()
	s.JPEGQuality = 40
	first, err := NewFromSettings(common.CategoryImage, s, "", nil, nil)
	require.NoError(t, err)

	s.JPEGQuality = 90
	second, err := NewFromSettings(common.CategoryImage, s, "", nil, nil)
	require.NoError(t, err)

	require.IsType(t, &ImageConverter{}, first)
	assert.Equal(t, 40, first.(*ImageConverter).opts.JPEGQuality)
	assert.Equal(t, 90, second.(*ImageConverter).opts.JPEGQuality)
}

func TestNewFromSettingsMediaHelper(t *testing.T) {
	conv, err := NewFromSettings(common.CategoryVideo, common.DefaultSettings(), "/opt/ffmpeg", nil, nil)
	require.NoError(t, err)
	require.IsType(t, &MediaConverter{}, conv)
	assert.Equal(t, common.CategoryVideo, conv.Category())
	assert.Equal(t, "/opt/ffmpeg", conv.(*MediaConverter).Helper())

	_, err = NewFromSettings(common.Category("document"), common.DefaultSettings(), "/opt/ffmpeg", nil, nil)
	assert.Error(t, err)
}
