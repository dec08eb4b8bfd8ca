package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_AddAndMessages(t *testing.T) {
	h := NewHistory(10)
	h.Add(Message{Role: RoleUser, Content: "hello"})
	h.Add(Message{Role: RoleAssistant, Content: "hi"})

	messages := h.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, "hi", messages[1].Content)
}

func TestHistory_EvictsOldestWhenFull(t *testing.T) {
	h := NewHistory(4)
	for i := range 6 {
		h.Add(Message{Role: RoleUser, Content: fmt.Sprintf("msg-%d", i)})
	}

	messages := h.Messages()
	require.Len(t, messages, 4)
	assert.Equal(t, "msg-2", messages[0].Content)
	assert.Equal(t, "msg-5", messages[3].Content)
}

func TestHistory_UnboundedWhenZero(t *testing.T) {
	h := NewHistory(0)
	for i := range 100 {
		h.Add(Message{Role: RoleUser, Content: fmt.Sprintf("msg-%d", i)})
	}
	assert.Equal(t, 100, h.Len())
}

func TestHistory_MessagesReturnsCopy(t *testing.T) {
	h := NewHistory(10)
	h.Add(Message{Role: RoleUser, Content: "original"})

	messages := h.Messages()
	messages[0].Content = "mutated"

	assert.Equal(t, "original", h.Messages()[0].Content)
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(10)
	h.Add(Message{Role: RoleUser, Content: "hello"})
	h.Clear()
	assert.Equal(t, 0, h.Len())
}
