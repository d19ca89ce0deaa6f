// ui/status_messages.go

package ui

import (
	"sync"

	"MediaConverter/common"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// maxStatusMessages bounds the panel, the oldest rows are dropped first
const maxStatusMessages = 2000

// StatusMessage represents a single status message with its severity and content
type StatusMessage struct {
	Level   common.Severity
	Content string
}

// StatusMessagesContainer is a widget that displays status messages with icons
type StatusMessagesContainer struct {
	widget.BaseWidget
	mutex     sync.Mutex
	messages  []StatusMessage
	container *fyne.Container
	scroll    *container.Scroll
}

// NewStatusMessagesContainer creates a new status messages container
func NewStatusMessagesContainer() *StatusMessagesContainer {
	smc := &StatusMessagesContainer{}
	smc.ExtendBaseWidget(smc)
	smc.container = container.NewVBox()
	smc.scroll = container.NewScroll(smc.container)

	// Keeps the panel usable at the default 700px window height
	smc.scroll.SetMinSize(fyne.NewSize(0, 320))
	return smc
}

// CreateRenderer is a private method to Fyne which links this widget to its renderer
func (smc *StatusMessagesContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(smc.scroll)
}

func severityIcon(level common.Severity) fyne.Resource {
	switch level {
	case common.SeverityWarning:
		return theme.WarningIcon()
	case common.SeverityError, common.SeverityCritical:
		return theme.ErrorIcon()
	}
	return theme.InfoIcon()
}

// AddMessage appends a row and scrolls to it
func (smc *StatusMessagesContainer) AddMessage(level common.Severity, content string) {
	if level == common.SeverityDebug {
		return
	}

	smc.mutex.Lock()
	defer smc.mutex.Unlock()

	smc.messages = append(smc.messages, StatusMessage{Level: level, Content: content})

	messageLabel := widget.NewLabel(content)
	messageLabel.Alignment = fyne.TextAlignLeading
	messageLabel.Wrapping = fyne.TextWrapWord
	messageLabel.TextStyle.Bold = level.IsProblem()

	row := container.NewBorder(nil, nil, widget.NewIcon(severityIcon(level)), nil, messageLabel)
	smc.container.Add(row)

	if len(smc.messages) > maxStatusMessages {
		smc.messages = smc.messages[1:]
		smc.container.Remove(smc.container.Objects[0])
	}

	smc.scroll.ScrollToBottom()
	smc.Refresh()
}

// AddStatusLine adds a line delivered by a common.LineQueue
func (smc *StatusMessagesContainer) AddStatusLine(line common.StatusLine) {
	smc.AddMessage(line.Level, line.Message)
}

// ClearMessages removes all messages from the container
func (smc *StatusMessagesContainer) ClearMessages() {
	smc.mutex.Lock()
	defer smc.mutex.Unlock()

	smc.messages = nil
	smc.container.RemoveAll()
	smc.Refresh()
}

// GetMessages returns a copy of all messages
func (smc *StatusMessagesContainer) GetMessages() []StatusMessage {
	smc.mutex.Lock()
	defer smc.mutex.Unlock()

	return append([]StatusMessage(nil), smc.messages...)
}
