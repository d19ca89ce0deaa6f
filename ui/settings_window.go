package ui

import (
	"fmt"
	"strings"

	"MediaConverter/common"
	"MediaConverter/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type languageItem struct {
	Code string
	Name string
}

func languageItems() []languageItem {
	var items []languageItem
	for _, code := range locales.GetAvailableLanguages() {
		name := locales.Translate("settings.lang." + code)
		if strings.HasPrefix(name, "settings.lang.") {
			name = code
		}
		items = append(items, languageItem{Code: code, Name: name})
	}
	return items
}

func newQualitySlider(value int, label *widget.Label, onChanged func()) *widget.Slider {
	slider := widget.NewSlider(1, 100)
	slider.Step = 1
	slider.SetValue(float64(value))
	label.SetText(fmt.Sprintf("%d", value))
	slider.OnChanged = func(v float64) {
		label.SetText(fmt.Sprintf("%d", int(v)))
		onChanged()
	}
	return slider
}

// ShowSettingsWindow displays the settings dialog. Helper path changes apply on the next start.
func ShowSettingsWindow(parent fyne.Window, configMgr *common.ConfigManager, errorHandler *common.ErrorHandler) {
	settings := configMgr.Settings()

	var saveButton *widget.Button
	markDirty := func() {
		if saveButton != nil {
			ResetActionButton(saveButton, locales.Translate("settings.write.settings"))
		}
	}
	onText := func(string) { markDirty() }
	onBool := func(bool) { markDirty() }

	langItems := languageItems()
	langOptions := make([]string, len(langItems))
	for i, lang := range langItems {
		langOptions[i] = lang.Name
	}
	languageSelect := widget.NewSelect(langOptions, nil)
	currentLang := settings.Language
	if currentLang == "" {
		currentLang = locales.CurrentLanguage()
	}
	for _, lang := range langItems {
		if lang.Code == currentLang {
			languageSelect.SetSelected(lang.Name)
			break
		}
	}
	languageSelect.OnChanged = onText

	helperExts := []string{".exe"}
	ffmpegEntry := widget.NewEntry()
	ffmpegEntry.SetText(settings.FFmpegPath)
	ffmpegField := CreateFileSelectionField(locales.Translate("settings.browse.ffmpeg"), "ffmpeg", helperExts, ffmpegEntry, onText)

	ffprobeEntry := widget.NewEntry()
	ffprobeEntry.SetText(settings.FFprobePath)
	ffprobeField := CreateFileSelectionField(locales.Translate("settings.browse.ffprobe"), "ffprobe", helperExts, ffprobeEntry, onText)

	jpegLabel := widget.NewLabel("")
	jpegSlider := newQualitySlider(settings.JPEGQuality, jpegLabel, markDirty)

	webpLabel := widget.NewLabel("")
	webpSlider := newQualitySlider(settings.WebPQuality, webpLabel, markDirty)

	webpLossless := widget.NewCheck(locales.Translate("settings.check.webplossless"), nil)
	webpLossless.SetChecked(settings.WebPLossless)
	webpLossless.OnChanged = func(checked bool) {
		if checked {
			webpSlider.Disable()
		} else {
			webpSlider.Enable()
		}
		markDirty()
	}
	if settings.WebPLossless {
		webpSlider.Disable()
	}

	menuIcon := widget.NewCheck(locales.Translate("settings.check.menuicon"), onBool)
	menuIcon.SetChecked(settings.MenuIcon)

	debugLog := widget.NewCheck(locales.Translate("settings.check.debuglog"), onBool)
	debugLog.SetChecked(settings.DebugLog)

	saveButton = CreateActionButton(
		locales.Translate("settings.write.settings"),
		func() {
			err := configMgr.Update(func(s *common.Settings) {
				for _, lang := range langItems {
					if lang.Name == languageSelect.Selected {
						s.Language = lang.Code
						break
					}
				}
				s.FFmpegPath = common.NormalizePath(ffmpegEntry.Text)
				s.FFprobePath = common.NormalizePath(ffprobeEntry.Text)
				s.JPEGQuality = int(jpegSlider.Value)
				s.WebPQuality = int(webpSlider.Value)
				s.WebPLossless = webpLossless.Checked
				s.MenuIcon = menuIcon.Checked
				s.DebugLog = debugLog.Checked
			})
			if err != nil {
				ctx := common.NewErrorContext("Settings", "Save Configuration")
				errorHandler.ShowStandardError(fmt.Errorf("%s: %w", locales.Translate("settings.err.save"), err), &ctx)
				return
			}

			for _, path := range []string{ffmpegEntry.Text, ffprobeEntry.Text} {
				if common.IsEmptyString(path) {
					continue
				}
				if err := common.VerifyExecutable(common.NormalizePath(path)); err != nil {
					ctx := common.NewErrorContext("Settings", "Helper Validation")
					ctx.Severity = common.SeverityWarning
					errorHandler.ShowStandardError(fmt.Errorf("%s: %w", locales.Translate("settings.err.helper"), err), &ctx)
				}
			}
		},
		locales.Translate("settings.status.saved"),
		theme.ConfirmIcon(),
	)

	form := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem(locales.Translate("settings.lang.sel"), languageSelect),
			widget.NewFormItem(locales.Translate("settings.label.ffmpeg"), ffmpegField),
			widget.NewFormItem(locales.Translate("settings.label.ffprobe"), ffprobeField),
			widget.NewFormItem(locales.Translate("settings.label.jpegquality"), container.NewBorder(nil, nil, nil, jpegLabel, jpegSlider)),
			widget.NewFormItem(locales.Translate("settings.label.webpquality"), container.NewBorder(nil, nil, nil, webpLabel, webpSlider)),
			widget.NewFormItem("", webpLossless),
			widget.NewFormItem("", menuIcon),
			widget.NewFormItem("", debugLog),
		),
		widget.NewLabel(locales.Translate("settings.label.restart")),
		container.NewHBox(layout.NewSpacer(), saveButton),
	)

	settingsDialog := dialog.NewCustom(locales.Translate("settings.win.title"), "", form, parent)

	closeButton := widget.NewButton(locales.Translate("common.button.close"), func() {
		settingsDialog.Hide()
	})
	closeButton.Importance = widget.DangerImportance
	settingsDialog.SetButtons([]fyne.CanvasObject{closeButton})

	settingsDialog.Resize(fyne.NewSize(800, 500))
	settingsDialog.Show()
}
