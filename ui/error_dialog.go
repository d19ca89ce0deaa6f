// ui/error_dialog.go

package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"MediaConverter/common"
	"MediaConverter/locales"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// InstallErrorNotifier makes the error handler present errors as dialogs on window.
// logPath is offered in the dialog through the log viewer.
func InstallErrorNotifier(handler *common.ErrorHandler, window fyne.Window, logPath string) {
	handler.SetNotifier(func(ctx common.ErrorContext) {
		ShowStandardError(window, ctx.Error, &ctx, logPath)
	})
}

func dialogHeader(ctx *common.ErrorContext) string {
	if ctx == nil {
		return locales.Translate("common.dialog.errorheader")
	}
	switch ctx.Severity {
	case common.SeverityWarning:
		return locales.Translate("common.dialog.warningheader")
	case common.SeverityCritical:
		return locales.Translate("common.dialog.criticalheader")
	}
	return locales.Translate("common.dialog.errorheader")
}

// ShowStandardError displays an error dialog with access to the log file
func ShowStandardError(window fyne.Window, err error, ctx *common.ErrorContext, logPath string) *dialog.CustomDialog {
	errorMsg := locales.Translate("common.err.unknown")
	if err != nil {
		errorMsg = err.Error()
	}
	if ctx != nil && ctx.Operation != "" {
		errorMsg = fmt.Sprintf("%s\n\n%s: %s", errorMsg, locales.Translate("common.dialog.operation"), ctx.Operation)
	}

	messageLabel := widget.NewLabel(errorMsg)
	messageLabel.Wrapping = fyne.TextWrapWord

	openLogsBtn := widget.NewButtonWithIcon(
		locales.Translate("common.button.openlogs"),
		theme.FolderOpenIcon(),
		func() {
			ShowLogViewerWindow(logPath)
		},
	)
	if logPath == "" {
		openLogsBtn.Disable()
	}

	var dlg *dialog.CustomDialog
	okBtn := widget.NewButton(locales.Translate("common.button.ok"), func() {
		dlg.Hide()
	})
	okBtn.Importance = widget.HighImportance

	content := container.NewVBox(
		messageLabel,
		container.NewHBox(layout.NewSpacer(), openLogsBtn),
		container.NewHBox(layout.NewSpacer(), okBtn, layout.NewSpacer()),
	)

	dlg = dialog.NewCustomWithoutButtons(dialogHeader(ctx), content, window)
	dlg.Resize(fyne.NewSize(450, 220))
	dlg.Show()
	return dlg
}

// ShowLogViewerWindow displays the log file in a read-only monospace view with a refresh button
func ShowLogViewerWindow(logPath string) {
	logText := widget.NewMultiLineEntry()
	logText.TextStyle = fyne.TextStyle{Monospace: true}
	logText.Wrapping = fyne.TextWrapBreak
	logText.Disable()

	scrollContainer := container.NewScroll(logText)
	logWindow := fyne.CurrentApp().NewWindow(locales.Translate("common.logviewer.header"))

	refreshBtn := widget.NewButtonWithIcon(
		locales.Translate("common.button.refresh"),
		theme.ViewRefreshIcon(),
		func() {
			loadLogContent(logPath, logText, scrollContainer)
		},
	)
	refreshBtn.Importance = widget.HighImportance

	closeBtn := widget.NewButtonWithIcon(
		locales.Translate("common.button.close"),
		theme.CancelIcon(),
		func() {
			logWindow.Close()
		},
	)

	content := container.NewBorder(
		nil,
		container.NewHBox(layout.NewSpacer(), refreshBtn, closeBtn),
		nil,
		nil,
		scrollContainer,
	)

	logWindow.SetContent(content)
	logWindow.Resize(fyne.NewSize(800, 600))
	logWindow.CenterOnScreen()

	loadLogContent(logPath, logText, scrollContainer)
	logWindow.Show()
}

func loadLogContent(logPath string, logText *widget.Entry, scrollContainer *container.Scroll) {
	content, err := os.ReadFile(logPath)
	if err != nil {
		logText.SetText(fmt.Sprintf(locales.Translate("common.err.readlog"), err))
		return
	}

	logText.SetText(string(content))

	lineCount := strings.Count(string(content), "\n")
	if lineCount > 0 {
		logText.CursorRow = lineCount
		logText.Refresh()

		// scroll once the new content has been laid out
		go func() {
			time.Sleep(100 * time.Millisecond)
			scrollContainer.ScrollToBottom()
		}()
	}
}
