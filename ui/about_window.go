package ui

import (
	"MediaConverter/common"
	"MediaConverter/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ShowAboutWindow displays the version and the resolved locations of the helpers and files
func ShowAboutWindow(parent fyne.Window, paths common.Paths, configPath, logPath string) {
	title := widget.NewLabelWithStyle(common.AppName+" "+common.AppVersion, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	helperState := func(path string) string {
		if err := common.VerifyExecutable(path); err != nil {
			return path + "  (" + locales.Translate("about.label.missing") + ")"
		}
		return path
	}

	form := widget.NewForm(
		widget.NewFormItem(locales.Translate("about.label.bundle"), widget.NewLabel(paths.BundleRoot)),
		widget.NewFormItem(locales.Translate("about.label.ffmpeg"), widget.NewLabel(helperState(paths.FFmpeg))),
		widget.NewFormItem(locales.Translate("about.label.ffprobe"), widget.NewLabel(helperState(paths.FFprobe))),
		widget.NewFormItem(locales.Translate("about.label.config"), widget.NewLabel(configPath)),
		widget.NewFormItem(locales.Translate("about.label.log"), widget.NewLabel(logPath)),
	)

	window := fyne.CurrentApp().NewWindow(locales.Translate("about.win.title"))
	window.SetContent(container.NewVBox(title, widget.NewLabel(locales.Translate("about.text.description")), form))
	window.Resize(fyne.NewSize(650, 300))
	window.CenterOnScreen()
	window.Show()
}
