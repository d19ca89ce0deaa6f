package ui

import (
	"fmt"

	"MediaConverter/common"
	"MediaConverter/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// helpText lists the command line usage and the supported formats
func helpText() string {
	return fmt.Sprintf(locales.Translate("help.text.body"),
		common.SupportedList(common.CategoryImage),
		common.SupportedList(common.CategoryAudio),
		common.SupportedList(common.CategoryVideo),
	)
}

// ShowHelpWindow creates and displays the help window.
func ShowHelpWindow(parent fyne.Window) {
	content := widget.NewLabel(helpText())
	content.Wrapping = fyne.TextWrapWord

	usage := widget.NewLabel(
		"MediaConverter --register | --unregister\n" +
			"MediaConverter --image <input> <format> [-r]\n" +
			"MediaConverter --audio -ai <input> -o <format> [-ar]\n" +
			"MediaConverter --video -vi <input> -vo <format> [-vr]")
	usage.TextStyle = fyne.TextStyle{Monospace: true}

	window := fyne.CurrentApp().NewWindow(locales.Translate("help.win.title"))
	window.SetContent(container.NewVScroll(container.NewVBox(content, widget.NewSeparator(), usage)))
	window.Resize(fyne.NewSize(700, 450))
	window.CenterOnScreen()
	window.Show()
}
