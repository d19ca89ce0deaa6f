package shellmenu

import (
	"testing"

	"MediaConverter/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand(t *testing.T) {
	tests := []struct {
		category    common.Category
		placeholder string
		format      string
		recursive   bool
		want        string
	}{
		{common.CategoryImage, "%1", "PNG", false, `"app.exe" --image "%1" png`},
		{common.CategoryImage, "%V", "jpeg", true, `"app.exe" --image "%V" jpeg -r`},
		{common.CategoryAudio, "%1", "mp3", false, `"app.exe" --audio -ai "%1" -o mp3`},
		{common.CategoryAudio, "%V", "flac", true, `"app.exe" --audio -ai "%V" -o flac -ar`},
		{common.CategoryVideo, "%1", "webm", false, `"app.exe" --video -vi "%1" -vo webm`},
		{common.CategoryVideo, "%1", "mov", true, `"app.exe" --video -vi "%1" -vo mov -vr`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BuildCommand("app.exe", tt.category, tt.placeholder, tt.format, tt.recursive))
	}
}

func TestTargets(t *testing.T) {
	targets := Targets()
	audioExts := common.MenuExtensions(common.CategoryAudio)
	videoExts := common.MenuExtensions(common.CategoryVideo)
	require.Len(t, targets, 1+len(audioExts)+len(videoExts)+2)

	assert.Equal(t, `SystemFileAssociations\image`, targets[0].ClassKey)
	assert.Equal(t, `SystemFileAssociations\.mp3`, targets[1].ClassKey)
	assert.Equal(t, common.CategoryAudio, targets[1].Category)

	last := targets[len(targets)-1]
	assert.Equal(t, TargetDirectoryBackground, last.Kind)
	assert.Equal(t, "%V", last.Placeholder())
	assert.Equal(t, "%1", targets[len(targets)-2].Placeholder())
}

func TestEntries(t *testing.T) {
	image := Targets()[0]
	entries := image.Entries("app.exe")
	require.Len(t, entries, len(common.OutputFormats(common.CategoryImage)))
	assert.Equal(t, "BMP", entries[0].Name)

	folder := folderTargets()[0]
	entries = folder.Entries("app.exe")
	total := 0
	for _, c := range common.Categories {
		total += len(common.OutputFormats(c))
	}
	require.Len(t, entries, total)
	assert.Equal(t, "IMAGE_TO_BMP", entries[0].Name)
	assert.Equal(t, "VIDEO_TO_WEBM", entries[len(entries)-1].Name)
	assert.Equal(t, `"app.exe" --video -vi "%1" -vo webm -vr`, entries[len(entries)-1].Command)
}

func TestKeyPaths(t *testing.T) {
	target := MenuTarget{Kind: TargetDirectory, ClassKey: "Directory"}
	assert.Equal(t, `Software\Classes\Directory\shell\Convert Media To`, target.MainKeyPath(MenuName))
	assert.Equal(t, `Software\Classes\Directory\shell\Convert Media To\shell\IMAGE_TO_PNG`, target.EntryKeyPath(MenuName, "IMAGE_TO_PNG"))
	assert.Equal(t, `a\b\c`, JoinKey(`a\`, "", `\b`, "c"))
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "image files", Targets()[0].String())
	assert.Equal(t, "audio files with extension .mp3", Targets()[1].String())
	assert.Equal(t, "directories", folderTargets()[0].String())
	assert.Equal(t, "directory background", folderTargets()[1].String())
}
