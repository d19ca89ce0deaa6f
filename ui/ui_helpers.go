// ui/ui_helpers.go

package ui

import (
	"image/color"
	"strings"
	"sync"

	"MediaConverter/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	nativedialog "github.com/sqweek/dialog"
)

// ProgressDialog represents a progress dialog with a progress bar and status label
type ProgressDialog struct {
	dialog        *dialog.CustomDialog
	window        fyne.Window
	progressBar   *widget.ProgressBar
	statusLabel   *widget.Label
	stopButton    *widget.Button
	cancelHandler func()
	mutex         sync.Mutex
	isCompleted   bool
}

// NewProgressDialog creates a new progress dialog with optional cancel handler
func NewProgressDialog(window fyne.Window, title, initialStatus string, cancelHandler func()) *ProgressDialog {
	pd := &ProgressDialog{
		window:        window,
		progressBar:   widget.NewProgressBar(),
		statusLabel:   widget.NewLabel(initialStatus),
		cancelHandler: cancelHandler,
	}
	pd.statusLabel.Wrapping = fyne.TextWrapBreak

	pd.stopButton = widget.NewButtonWithIcon(locales.Translate("common.button.stop"), theme.MediaStopIcon(), func() {
		if pd.completed() {
			pd.Hide()
			return
		}
		if pd.cancelHandler != nil {
			pd.stopButton.Disable()
			pd.statusLabel.SetText(locales.Translate("common.status.stopping"))
			pd.cancelHandler()
		}
	})
	pd.stopButton.Importance = widget.HighImportance

	content := container.NewVBox(pd.progressBar, pd.statusLabel)
	content.Add(container.NewHBox(layout.NewSpacer(), pd.stopButton, layout.NewSpacer()))

	// Minimum width so long file paths do not resize the dialog on every update
	rect := canvas.NewRectangle(color.Transparent)
	rect.SetMinSize(fyne.NewSize(550, 1))
	content.Add(rect)

	pd.dialog = dialog.NewCustomWithoutButtons(title, content, window)
	return pd
}

func (pd *ProgressDialog) completed() bool {
	pd.mutex.Lock()
	defer pd.mutex.Unlock()
	return pd.isCompleted
}

// Show displays the progress dialog
func (pd *ProgressDialog) Show() {
	pd.dialog.Show()
}

// Hide hides the progress dialog
func (pd *ProgressDialog) Hide() {
	pd.dialog.Hide()
}

// UpdateProgress updates the progress bar value
func (pd *ProgressDialog) UpdateProgress(value float64) {
	pd.progressBar.SetValue(value)
}

// UpdateStatus updates the status text
func (pd *ProgressDialog) UpdateStatus(text string) {
	pd.statusLabel.SetText(text)
}

// MarkCompleted turns the stop button into an OK button that closes the dialog
func (pd *ProgressDialog) MarkCompleted() {
	pd.mutex.Lock()
	pd.isCompleted = true
	pd.mutex.Unlock()

	pd.stopButton.SetText(locales.Translate("common.button.ok"))
	pd.stopButton.SetIcon(theme.ConfirmIcon())
	pd.stopButton.Enable()
}

// CreateNativeFolderBrowseButton creates a folder browse button using the native OS dialog
func CreateNativeFolderBrowseButton(title string, buttonText string, changeHandler func(string)) *widget.Button {
	return widget.NewButtonWithIcon(buttonText, theme.FolderOpenIcon(), func() {
		dirname, err := nativedialog.Directory().Title(title).Browse()
		if err == nil && dirname != "" && changeHandler != nil {
			changeHandler(dirname)
		}
	})
}

// CreateNativeFileBrowseButton creates a file browse button using the native OS dialog.
// Extensions are given with or without the leading dot.
func CreateNativeFileBrowseButton(title, filterDesc string, extensions []string, buttonText string, changeHandler func(string)) *widget.Button {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}

	return widget.NewButtonWithIcon(buttonText, theme.FileIcon(), func() {
		builder := nativedialog.File().Title(title)
		if len(exts) > 0 {
			builder = builder.Filter(filterDesc, exts...)
		}
		filename, err := builder.Load()
		if err == nil && filename != "" && changeHandler != nil {
			changeHandler(filename)
		}
	})
}

// CreateFileSelectionField creates a file selection field with a file browse button
func CreateFileSelectionField(title, filterDesc string, extensions []string, entryField *widget.Entry, changeHandler func(string)) fyne.CanvasObject {
	if entryField == nil {
		entryField = widget.NewEntry()
	}
	entryField.SetPlaceHolder(locales.Translate("common.entry.placeholderfile"))
	if changeHandler != nil {
		entryField.OnChanged = changeHandler
	}

	browseBtn := CreateNativeFileBrowseButton(title, filterDesc, extensions, "", func(path string) {
		entryField.SetText(path)
	})

	return container.NewBorder(nil, nil, nil, browseBtn, entryField)
}

// CreatePathSelectionField creates an entry accepting a file or a folder, with one browse
// button for each
func CreatePathSelectionField(fileTitle, folderTitle, filterDesc string, extensions []string, entryField *widget.Entry) fyne.CanvasObject {
	if entryField == nil {
		entryField = widget.NewEntry()
	}
	entryField.SetPlaceHolder(locales.Translate("common.entry.placeholderinput"))

	setPath := func(path string) {
		entryField.SetText(path)
	}
	fileBtn := CreateNativeFileBrowseButton(fileTitle, filterDesc, extensions, "", setPath)
	folderBtn := CreateNativeFolderBrowseButton(folderTitle, "", setPath)

	return container.NewBorder(nil, nil, nil, container.NewHBox(fileBtn, folderBtn), entryField)
}

// CreateSubmitButtonWithIcon creates a submit button with an icon and high importance
func CreateSubmitButtonWithIcon(title string, icon fyne.Resource, handler func()) *widget.Button {
	btn := widget.NewButtonWithIcon(title, icon, handler)
	btn.Importance = widget.HighImportance
	return btn
}

// CreateDescriptionLabel creates a wrapping bold label used for module descriptions
func CreateDescriptionLabel(text string) *widget.Label {
	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord
	label.TextStyle = fyne.TextStyle{Bold: true}
	return label
}

// CreateActionButton creates a button that shows a completed state after its action ran.
// An empty completedText keeps the original text.
func CreateActionButton(initialText string, onAction func(), completedText string, completedIcon fyne.Resource) *widget.Button {
	btn := widget.NewButton(initialText, nil)
	btn.Importance = widget.HighImportance

	btn.OnTapped = func() {
		if onAction != nil {
			onAction()
		}
		if completedText != "" {
			btn.SetText(completedText)
		}
		btn.SetIcon(completedIcon)
	}
	return btn
}

// ResetActionButton restores an action button to its initial state
func ResetActionButton(btn *widget.Button, text string) {
	btn.SetIcon(nil)
	btn.SetText(text)
}

// DisableModuleControls disables multiple UI components at once
func DisableModuleControls(components ...fyne.Disableable) {
	for _, component := range components {
		component.Disable()
	}
}

// EnableModuleControls enables multiple UI components at once
func EnableModuleControls(components ...fyne.Disableable) {
	for _, component := range components {
		component.Enable()
	}
}
