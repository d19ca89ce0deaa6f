package ui

import (
	"fmt"
	"testing"

	"MediaConverter/common"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestStatusMessagesSkipDebug(t *testing.T) {
	test.NewTempApp(t)
	smc := NewStatusMessagesContainer()

	smc.AddMessage(common.SeverityDebug, "hidden")
	smc.AddMessage(common.SeverityInfo, "converted")
	smc.AddStatusLine(common.StatusLine{Level: common.SeverityError, Message: "failed"})

	assert.Equal(t, []StatusMessage{
		{Level: common.SeverityInfo, Content: "converted"},
		{Level: common.SeverityError, Content: "failed"},
	}, smc.GetMessages())
	assert.Len(t, smc.container.Objects, 2)
}

func TestStatusMessagesDropOldest(t *testing.T) {
	test.NewTempApp(t)
	smc := NewStatusMessagesContainer()

	for i := 0; i < maxStatusMessages+5; i++ {
		smc.AddMessage(common.SeverityInfo, fmt.Sprintf("line %d", i))
	}

	messages := smc.GetMessages()
	assert.Len(t, messages, maxStatusMessages)
	assert.Equal(t, "line 5", messages[0].Content)
	assert.Len(t, smc.container.Objects, maxStatusMessages)

	smc.ClearMessages()
	assert.Empty(t, smc.GetMessages())
	assert.Empty(t, smc.container.Objects)
}
