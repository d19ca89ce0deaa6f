// modules/media_converter.go

// Package modules implements the application tabs.
package modules

import (
	"context"
	"fmt"
	"path/filepath"

	"MediaConverter/common"
	"MediaConverter/converter"
	"MediaConverter/locales"
	"MediaConverter/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MediaConverterModule is the conversion tab of one category
type MediaConverterModule struct {
	*ui.ModuleBase
	appCtx   context.Context
	category common.Category
	build    ConverterFactory
	prober   *converter.Prober

	content        fyne.CanvasObject
	inputEntry     *widget.Entry
	formatSelect   *widget.Select
	recursiveCheck *widget.Check
	submitBtn      *widget.Button
}

// ConverterFactory creates the converter of a category from the current settings
type ConverterFactory func(category common.Category) (converter.Converter, error)

// NewMediaConverterModule creates the tab converting files of category. build is called
// on every run so saved settings apply without a restart.
// prober may be nil, it is used to describe single audio and video inputs.
func NewMediaConverterModule(appCtx context.Context, window fyne.Window, configMgr *common.ConfigManager, errorHandler *common.ErrorHandler, category common.Category, build ConverterFactory, prober *converter.Prober) *MediaConverterModule {
	m := &MediaConverterModule{
		appCtx:   appCtx,
		category: category,
		build:    build,
		prober:   prober,
	}
	m.ModuleBase = ui.NewModuleBase(m.GetName(), window, configMgr, errorHandler)
	m.initializeUI()
	return m
}

// GetName returns the localized tab name
func (m *MediaConverterModule) GetName() string {
	return locales.Translate(string(m.category) + ".tab.name")
}

// GetIcon returns the tab icon
func (m *MediaConverterModule) GetIcon() fyne.Resource {
	switch m.category {
	case common.CategoryAudio:
		return theme.FileAudioIcon()
	case common.CategoryVideo:
		return theme.FileVideoIcon()
	}
	return theme.FileImageIcon()
}

// GetContent returns the tab content
func (m *MediaConverterModule) GetContent() fyne.CanvasObject {
	return m.content
}

func (m *MediaConverterModule) initializeUI() {
	settings := m.ConfigMgr.Settings()
	cat := string(m.category)

	description := ui.CreateDescriptionLabel(fmt.Sprintf(locales.Translate(cat+".label.info"), common.SupportedList(m.category)))

	m.inputEntry = widget.NewEntry()
	pathField := ui.CreatePathSelectionField(
		locales.Translate("common.browse.file"),
		locales.Translate("common.browse.folder"),
		locales.Translate(cat+".filter.name"),
		common.RecognizedExtensions(m.category),
		m.inputEntry,
	)

	m.formatSelect = widget.NewSelect(common.OutputFormats(m.category), nil)
	if last := settings.LastFormat(m.category); common.IsSupportedFormat(m.category, last) {
		m.formatSelect.SetSelected(common.CanonicalFormat(m.category, last))
	} else {
		m.formatSelect.SetSelectedIndex(0)
	}

	m.recursiveCheck = widget.NewCheck(locales.Translate("common.check.recursive"), nil)
	m.recursiveCheck.SetChecked(settings.LastRecursive(m.category))

	m.submitBtn = ui.CreateSubmitButtonWithIcon(locales.Translate("common.button.convert"), theme.MediaPlayIcon(), m.Start)

	form := widget.NewForm(
		widget.NewFormItem(locales.Translate("common.label.input"), pathField),
		widget.NewFormItem(locales.Translate("common.label.format"), m.formatSelect),
		widget.NewFormItem("", m.recursiveCheck),
	)

	moduleContent := container.NewVBox(
		description,
		widget.NewSeparator(),
		form,
		container.NewHBox(layout.NewSpacer(), m.submitBtn),
	)
	m.content = m.CreateModuleLayoutWithStatusMessages(moduleContent)
}

// Start validates the form and converts the input in the background
func (m *MediaConverterModule) Start() {
	input := common.NormalizePath(m.inputEntry.Text)
	if input == "" {
		m.AddWarningMessage(locales.Translate("common.err.noinput"))
		return
	}
	format := m.formatSelect.Selected
	if format == "" {
		m.AddWarningMessage(locales.Translate("common.err.noformat"))
		return
	}
	recursive := m.recursiveCheck.Checked

	if err := m.ConfigMgr.Update(func(s *common.Settings) {
		s.Remember(m.category, format, recursive)
	}); err != nil {
		m.Logger.Warning("Failed to remember %s settings: %v", m.category, err)
	}

	ctx, queue, ok := m.StartOperation(m.appCtx, locales.Translate("common.dialog.converting"))
	if !ok {
		return
	}
	m.submitBtn.Disable()

	m.Go(common.OperationBatch, func() {
		summary := m.run(ctx, queue, input, format, recursive)
		m.FinishOperation(queue, summaryText(summary))
		m.submitBtn.Enable()
	}, func() {
		m.FinishOperation(queue, locales.Translate("common.status.failed"))
		m.submitBtn.Enable()
	})
}

func (m *MediaConverterModule) run(ctx context.Context, queue *common.LineQueue, input, format string, recursive bool) converter.Summary {
	reporter := common.LoggingReporter(m.Logger, queue)

	if m.prober != nil && common.FileExists(input) && common.MatchesCategory(m.category, input) {
		info, err := m.prober.Probe(ctx, input)
		if err == nil {
			common.Reportf(reporter, common.SeverityInfo, locales.Translate("common.status.probe"), filepath.Base(input), info.String())
		} else if !common.IsKind(err, common.KindCancelled) {
			m.Logger.Debug("Probe of '%s' failed: %v", input, err)
		}
	}

	conv, err := m.build(m.category)
	if err != nil {
		common.Reportf(reporter, common.SeverityCritical, "Error: %v", err)
		return converter.Summary{Err: err}
	}

	walker := converter.NewWalker(reporter, m.Logger, conv)
	walker.SetProgress(func(done, total int, current string) {
		progress := 1.0
		if total > 0 {
			progress = float64(done) / float64(total)
		}
		m.UpdateProgressStatus(progress, fmt.Sprintf(locales.Translate("common.status.progress"), done, total, filepath.Base(current)))
	})

	m.Logger.Info("GUI %s conversion: %s -> %s (recursive: %t)", m.category, input, format, recursive)
	return walker.Run(ctx, m.category, input, format, recursive)
}

func summaryText(s converter.Summary) string {
	switch {
	case s.Err != nil:
		return locales.Translate("common.status.failed")
	case s.Cancelled:
		return fmt.Sprintf(locales.Translate("common.status.cancelled"), s.Converted, s.Total)
	}
	return fmt.Sprintf(locales.Translate("common.status.completed"), s.Converted, s.Failed, s.Total)
}
