// shellmenu/targets.go

package shellmenu

import (
	"fmt"
	"strings"

	"MediaConverter/common"
)

const (
	// MenuName is the cascading menu shown in Explorer
	MenuName = "Convert Media To"

	// LegacyMenuName is the image-only menu of older releases
	LegacyMenuName = "Convert Image(s) To"

	classesRoot = `Software\Classes`

	valueSubCommands = "SubCommands"
	valueIcon        = "Icon"
)

// TargetKind tells what an Explorer right-click lands on
type TargetKind int

const (
	TargetFileCategory TargetKind = iota
	TargetDirectory
	TargetDirectoryBackground
)

// MenuTarget is one registry class key that gets the cascading menu
type MenuTarget struct {
	Kind     TargetKind
	ClassKey string
	// Category is only set for file targets
	Category common.Category
}

// MenuEntry is one submenu item and the command line it runs
type MenuEntry struct {
	Name    string
	Command string
}

// Targets returns the fixed target set: the image class, one class per audio and video
// extension, folders and the folder background.
func Targets() []MenuTarget {
	targets := []MenuTarget{{Kind: TargetFileCategory, ClassKey: `SystemFileAssociations\image`, Category: common.CategoryImage}}
	for _, category := range []common.Category{common.CategoryAudio, common.CategoryVideo} {
		for _, ext := range common.MenuExtensions(category) {
			targets = append(targets, MenuTarget{
				Kind:     TargetFileCategory,
				ClassKey: `SystemFileAssociations\` + ext,
				Category: category,
			})
		}
	}
	return append(targets, folderTargets()...)
}

// LegacyTargets returns the targets the old image-only menu was registered on
func LegacyTargets() []MenuTarget {
	return append([]MenuTarget{{Kind: TargetFileCategory, ClassKey: `SystemFileAssociations\image`, Category: common.CategoryImage}},
		folderTargets()...)
}

func folderTargets() []MenuTarget {
	return []MenuTarget{
		{Kind: TargetDirectory, ClassKey: "Directory"},
		{Kind: TargetDirectoryBackground, ClassKey: `Directory\Background`},
	}
}

// Placeholder returns the Explorer variable that expands to the clicked item
func (t MenuTarget) Placeholder() string {
	if t.Kind == TargetDirectoryBackground {
		return "%V"
	}
	return "%1"
}

// MainKeyPath returns the key of the cascading menu named menuName on this target
func (t MenuTarget) MainKeyPath(menuName string) string {
	return JoinKey(classesRoot, t.ClassKey, "shell", menuName)
}

// EntryKeyPath returns the key of one submenu item
func (t MenuTarget) EntryKeyPath(menuName, entryName string) string {
	return JoinKey(t.MainKeyPath(menuName), "shell", entryName)
}

// String describes the target in status lines
func (t MenuTarget) String() string {
	switch t.Kind {
	case TargetDirectory:
		return "directories"
	case TargetDirectoryBackground:
		return "directory background"
	}
	if t.Category == common.CategoryImage {
		return "image files"
	}
	ext := t.ClassKey[strings.LastIndex(t.ClassKey, `\`)+1:]
	return fmt.Sprintf("%s files with extension %s", t.Category, ext)
}

// Entries returns the submenu items of the target. File targets get one item per output
// format of their category. Folder targets get every format of every category, converted
// recursively.
func (t MenuTarget) Entries(exe string) []MenuEntry {
	var entries []MenuEntry
	if t.Kind == TargetFileCategory {
		for _, format := range common.OutputFormats(t.Category) {
			entries = append(entries, MenuEntry{
				Name:    strings.ToUpper(format),
				Command: BuildCommand(exe, t.Category, t.Placeholder(), format, false),
			})
		}
		return entries
	}

	for _, category := range common.Categories {
		for _, format := range common.OutputFormats(category) {
			entries = append(entries, MenuEntry{
				Name:    strings.ToUpper(string(category)) + "_TO_" + strings.ToUpper(format),
				Command: BuildCommand(exe, category, t.Placeholder(), format, true),
			})
		}
	}
	return entries
}

// BuildCommand renders the command line an entry runs
func BuildCommand(exe string, category common.Category, placeholder, format string, recursive bool) string {
	format = strings.ToLower(format)
	var cmd string
	switch category {
	case common.CategoryAudio:
		cmd = fmt.Sprintf(`"%s" --audio -ai "%s" -o %s`, exe, placeholder, format)
		if recursive {
			cmd += " -ar"
		}
	case common.CategoryVideo:
		cmd = fmt.Sprintf(`"%s" --video -vi "%s" -vo %s`, exe, placeholder, format)
		if recursive {
			cmd += " -vr"
		}
	default:
		cmd = fmt.Sprintf(`"%s" --image "%s" %s`, exe, placeholder, format)
		if recursive {
			cmd += " -r"
		}
	}
	return cmd
}

// IconValue returns the Icon value pointing at the first icon resource of exe
func IconValue(exe string) string {
	return fmt.Sprintf(`"%s",0`, exe)
}
