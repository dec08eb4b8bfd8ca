package chat

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a conversation.
type Message struct {
	Role    Role
	Content string
}

// History is a bounded conversation transcript. When the bound is exceeded
// the oldest messages are dropped, so the model always sees the most recent
// turns. Not safe for concurrent use; a Session owns exactly one History.
type History struct {
	messages    []Message
	maxMessages int
}

// NewHistory creates a History that keeps at most maxMessages messages.
// A non-positive bound keeps everything.
func NewHistory(maxMessages int) *History {
	return &History{maxMessages: maxMessages}
}

// Add appends a message, evicting the oldest messages if the transcript
// would exceed the bound.
func (h *History) Add(msg Message) {
	h.messages = append(h.messages, msg)
	if h.maxMessages > 0 && len(h.messages) > h.maxMessages {
		drop := len(h.messages) - h.maxMessages
		h.messages = append(h.messages[:0], h.messages[drop:]...)
	}
}

// Messages returns a copy of the transcript in order.
func (h *History) Messages() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of messages currently held.
func (h *History) Len() int {
	return len(h.messages)
}

// Clear discards the transcript.
func (h *History) Clear() {
	h.messages = h.messages[:0]
}
