// ui/module_base.go

// Package ui holds the Fyne building blocks shared by the application tabs.
package ui

import (
	"context"
	"sync"

	"MediaConverter/common"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
)

// Module defines the interface that all tabs must implement
type Module interface {
	GetName() string
	GetIcon() fyne.Resource
	GetContent() fyne.CanvasObject
}

// ModuleBase provides common functionality for all modules.
// Background work reports through a common.LineQueue, so the status panel has a single writer.
type ModuleBase struct {
	ModuleName     string
	Window         fyne.Window
	ConfigMgr      *common.ConfigManager
	ErrorHandler   *common.ErrorHandler
	Logger         *common.Logger
	StatusMessages *StatusMessagesContainer
	ProgressDialog *ProgressDialog

	mutex   sync.Mutex
	cancel  context.CancelFunc
	running bool
}

// NewModuleBase initializes a new ModuleBase
func NewModuleBase(name string, window fyne.Window, configMgr *common.ConfigManager, errorHandler *common.ErrorHandler) *ModuleBase {
	if errorHandler == nil {
		panic("ErrorHandler cannot be nil")
	}

	return &ModuleBase{
		ModuleName:     name,
		Window:         window,
		ConfigMgr:      configMgr,
		ErrorHandler:   errorHandler,
		Logger:         errorHandler.GetLogger(),
		StatusMessages: NewStatusMessagesContainer(),
	}
}

// CreateModuleLayoutWithStatusMessages places the module content on top and lets the
// status messages fill the remaining space
func (m *ModuleBase) CreateModuleLayoutWithStatusMessages(moduleContent fyne.CanvasObject) fyne.CanvasObject {
	mainContent := container.NewVBox(moduleContent)
	return container.New(
		layout.NewBorderLayout(mainContent, nil, nil, nil),
		mainContent,
		m.StatusMessages,
	)
}

// StartOperation shows the progress dialog and returns the context and the status line
// queue of a new background operation. Stop in the dialog cancels the context.
// ok is false while another operation of this module is still running.
func (m *ModuleBase) StartOperation(parent context.Context, title string) (ctx context.Context, queue *common.LineQueue, ok bool) {
	m.mutex.Lock()
	if m.running {
		m.mutex.Unlock()
		return nil, nil, false
	}
	ctx, cancel := context.WithCancel(parent)
	pd := NewProgressDialog(m.Window, title, "", cancel)
	m.cancel = cancel
	m.running = true
	m.ProgressDialog = pd
	m.mutex.Unlock()

	pd.Show()

	queue = common.NewLineQueue(0, m.StatusMessages.AddStatusLine)
	return ctx, queue, true
}

// UpdateProgressStatus updates the progress dialog
func (m *ModuleBase) UpdateProgressStatus(progress float64, statusText string) {
	m.mutex.Lock()
	pd := m.ProgressDialog
	m.mutex.Unlock()

	if pd != nil {
		pd.UpdateProgress(progress)
		pd.UpdateStatus(statusText)
	}
}

// FinishOperation drains the queue and turns the progress dialog into a completed state
func (m *ModuleBase) FinishOperation(queue *common.LineQueue, statusText string) {
	if queue != nil {
		queue.Close()
	}

	m.mutex.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.running = false
	pd := m.ProgressDialog
	m.mutex.Unlock()

	if pd != nil {
		pd.UpdateProgress(1.0)
		pd.UpdateStatus(statusText)
		pd.MarkCompleted()
	}
}

// Go runs fn on a new goroutine. A panic is reported through the error handler
// and onPanic runs afterwards so the caller can restore its controls.
func (m *ModuleBase) Go(operation string, fn func(), onPanic func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				m.ErrorHandler.HandlePanic(m.ModuleName, operation, r)
				if onPanic != nil {
					onPanic()
				}
			}
		}()
		fn()
	}()
}

// AddWarningMessage adds a warning message to the status messages container
func (m *ModuleBase) AddWarningMessage(message string) {
	m.StatusMessages.AddMessage(common.SeverityWarning, message)
}
