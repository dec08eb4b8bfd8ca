package chat

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/Ru1vly/Eidos/internal/safety"
)

// defaultSystemPrompt keeps the assistant on topic. Sent as the system
// instruction with every request rather than stored in the transcript.
const defaultSystemPrompt = "You are a helpful assistant specialized in shell commands, " +
	"command-line tools, and system administration. Answer questions about " +
	"commands, explain what they do, and suggest safe alternatives. Keep " +
	"answers concise and practical."

// Options configures a Session. Zero values fall back to sane defaults.
type Options struct {
	// Model is the Gemini model name, e.g. "gemini-1.5-flash".
	Model string

	// MaxMessages bounds the transcript; older turns are evicted first.
	MaxMessages int

	// MaxInputLength bounds each user message, in Unicode code points.
	MaxInputLength int

	// SystemPrompt overrides the built-in system instruction.
	SystemPrompt string
}

// Session is a single conversation with the model. It validates user input,
// maintains the bounded transcript, and maps API failures to the package
// sentinels. Not safe for concurrent use.
type Session struct {
	client       Client
	model        string
	history      *History
	maxInput     int
	systemPrompt string
}

// NewSession creates a Session backed by the given client.
func NewSession(client Client, opts Options) *Session {
	model := opts.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	maxInput := opts.MaxInputLength
	if maxInput <= 0 {
		maxInput = 10000
	}
	prompt := opts.SystemPrompt
	if prompt == "" {
		prompt = defaultSystemPrompt
	}
	return &Session{
		client:       client,
		model:        model,
		history:      NewHistory(opts.MaxMessages),
		maxInput:     maxInput,
		systemPrompt: prompt,
	}
}

// Send submits one user message and returns the model's reply. The user
// message and the reply are committed to the transcript only on success, so
// a failed call can be retried without duplicate turns.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	if err := safety.CheckInput(text, s.maxInput); err != nil {
		return "", err
	}

	pending := Message{Role: RoleUser, Content: text}
	contents := toContents(append(s.history.Messages(), pending))

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(s.systemPrompt)},
		},
	}

	resp, err := s.client.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return "", mapAPIError(err)
	}

	reply, err := extractText(resp)
	if err != nil {
		return "", err
	}

	s.history.Add(pending)
	s.history.Add(Message{Role: RoleAssistant, Content: reply})
	return reply, nil
}

// History returns the session transcript.
func (s *Session) History() *History {
	return s.history
}

// toContents converts transcript messages to Gemini Content format.
func toContents(messages []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		if msg.Content == "" {
			continue
		}
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
		})
	}
	return contents
}

// extractText pulls the text of the first candidate out of a response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
