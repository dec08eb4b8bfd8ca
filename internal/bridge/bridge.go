// Package bridge dispatches requests to the subsystem that handles them.
// The request kinds form a closed set, so dispatch is an exhaustive switch
// over typed handler fields rather than a runtime registry.
package bridge

import (
	"context"
	"errors"
	"fmt"
)

// Request identifies the subsystem a piece of input is meant for.
type Request int

const (
	RequestCore Request = iota
	RequestChat
	RequestTranslate
)

// String returns the CLI-facing name of the request kind.
func (r Request) String() string {
	switch r {
	case RequestCore:
		return "core"
	case RequestChat:
		return "chat"
	case RequestTranslate:
		return "translate"
	default:
		return fmt.Sprintf("Request(%d)", int(r))
	}
}

// ParseRequest converts a CLI subcommand name into a Request.
func ParseRequest(name string) (Request, error) {
	switch name {
	case "core":
		return RequestCore, nil
	case "chat":
		return RequestChat, nil
	case "translate":
		return RequestTranslate, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRequest, name)
	}
}

// Sentinel errors for routing failures.
var (
	ErrUnknownRequest = errors.New("unknown request kind")
	ErrNoHandler      = errors.New("no handler registered for request")
)

// Handler processes one piece of input for a subsystem.
type Handler func(ctx context.Context, input string) error

// Bridge holds one handler per request kind. A nil field means the
// subsystem is not wired; routing to it is an error, not a panic.
type Bridge struct {
	Core      Handler
	Chat      Handler
	Translate Handler
}

// Route sends input to the handler for the request kind.
func (b *Bridge) Route(ctx context.Context, request Request, input string) error {
	var handler Handler
	switch request {
	case RequestCore:
		handler = b.Core
	case RequestChat:
		handler = b.Chat
	case RequestTranslate:
		handler = b.Translate
	default:
		return fmt.Errorf("%w: %s", ErrUnknownRequest, request)
	}

	if handler == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, request)
	}
	return handler(ctx, input)
}
