// modules/context_menu.go

package modules

import (
	"context"
	"fmt"
	"runtime"

	"MediaConverter/common"
	"MediaConverter/locales"
	"MediaConverter/shellmenu"
	"MediaConverter/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// RegistrarFactory builds a registrar that reports to the given reporter
type RegistrarFactory func(reporter common.Reporter) *shellmenu.Registrar

// ContextMenuModule registers and removes the Explorer context menu
type ContextMenuModule struct {
	*ui.ModuleBase
	appCtx       context.Context
	newRegistrar RegistrarFactory

	content       fyne.CanvasObject
	stateLabel    *widget.Label
	registerBtn   *widget.Button
	unregisterBtn *widget.Button
	legacyBtn     *widget.Button
}

// NewContextMenuModule creates the context menu tab
func NewContextMenuModule(appCtx context.Context, window fyne.Window, configMgr *common.ConfigManager, errorHandler *common.ErrorHandler, newRegistrar RegistrarFactory) *ContextMenuModule {
	m := &ContextMenuModule{
		appCtx:       appCtx,
		newRegistrar: newRegistrar,
	}
	m.ModuleBase = ui.NewModuleBase(m.GetName(), window, configMgr, errorHandler)
	m.initializeUI()
	m.refreshState()
	return m
}

// GetName returns the localized tab name
func (m *ContextMenuModule) GetName() string {
	return locales.Translate("menu.tab.name")
}

// GetIcon returns the tab icon
func (m *ContextMenuModule) GetIcon() fyne.Resource {
	return theme.MenuIcon()
}

// GetContent returns the tab content
func (m *ContextMenuModule) GetContent() fyne.CanvasObject {
	return m.content
}

func (m *ContextMenuModule) initializeUI() {
	description := ui.CreateDescriptionLabel(fmt.Sprintf(locales.Translate("menu.label.info"), shellmenu.MenuName))

	notes := container.NewVBox()
	if runtime.GOOS != "windows" {
		notes.Add(widget.NewLabel(locales.Translate("menu.label.dryrun")))
	} else if !shellmenu.IsElevated() {
		notice := widget.NewLabel(locales.Translate("menu.label.noadmin"))
		notice.Wrapping = fyne.TextWrapWord
		notes.Add(notice)
	}

	m.stateLabel = widget.NewLabel("")

	m.registerBtn = ui.CreateSubmitButtonWithIcon(locales.Translate("menu.button.register"), theme.ContentAddIcon(), func() {
		m.runOperation(common.OperationRegister, func(ctx context.Context, r *shellmenu.Registrar) (shellmenu.Report, error) {
			return r.Register(ctx)
		})
	})
	m.unregisterBtn = widget.NewButtonWithIcon(locales.Translate("menu.button.unregister"), theme.ContentRemoveIcon(), func() {
		m.runOperation(common.OperationUnregister, func(ctx context.Context, r *shellmenu.Registrar) (shellmenu.Report, error) {
			return r.Unregister(ctx)
		})
	})
	m.legacyBtn = widget.NewButtonWithIcon(locales.Translate("menu.button.legacy"), theme.DeleteIcon(), func() {
		m.runOperation(common.OperationLegacy, func(ctx context.Context, r *shellmenu.Registrar) (shellmenu.Report, error) {
			return r.CleanLegacy(ctx), nil
		})
	})

	moduleContent := container.NewVBox(
		description,
		notes,
		widget.NewSeparator(),
		container.NewHBox(widget.NewLabel(locales.Translate("menu.label.state")), m.stateLabel),
		container.NewHBox(layout.NewSpacer(), m.legacyBtn, m.unregisterBtn, m.registerBtn),
	)
	m.content = m.CreateModuleLayoutWithStatusMessages(moduleContent)
}

func (m *ContextMenuModule) refreshState() {
	registered, err := m.newRegistrar(nil).Status()
	switch {
	case err != nil:
		m.Logger.Warning("Failed to read context menu state: %v", err)
		m.stateLabel.SetText(locales.Translate("menu.state.unknown"))
	case registered:
		m.stateLabel.SetText(locales.Translate("menu.state.registered"))
	default:
		m.stateLabel.SetText(locales.Translate("menu.state.missing"))
	}
}

func (m *ContextMenuModule) runOperation(operation string, fn func(context.Context, *shellmenu.Registrar) (shellmenu.Report, error)) {
	ctx, queue, ok := m.StartOperation(m.appCtx, locales.Translate("menu.dialog.title"))
	if !ok {
		return
	}
	controls := []fyne.Disableable{m.registerBtn, m.unregisterBtn, m.legacyBtn}
	ui.DisableModuleControls(controls...)

	m.Go(operation, func() {
		report, err := fn(ctx, m.newRegistrar(queue))

		status := locales.Translate("menu.status.done")
		switch {
		case err != nil:
			status = err.Error()
		case !report.OK():
			status = fmt.Sprintf(locales.Translate("menu.status.partial"), len(report.Failures), report.Targets)
			for _, failure := range report.Failures {
				m.Logger.Error("%s failed for %s: %v", operation, failure.Target, failure.Err)
			}
		}

		m.FinishOperation(queue, status)
		m.refreshState()
		ui.EnableModuleControls(controls...)
	}, func() {
		m.FinishOperation(queue, locales.Translate("common.status.failed"))
		ui.EnableModuleControls(controls...)
	})
}
