package chat

import (
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Sentinel errors for chat failures.
var (
	ErrMissingAPIKey      = errors.New("GEMINI_API_KEY environment variable is required")
	ErrEmptyResponse      = errors.New("empty response from model")
	ErrContentBlocked     = errors.New("content blocked by safety filters")
	ErrAuthentication     = errors.New("authentication failed")
	ErrRateLimit          = errors.New("rate limit exceeded")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// mapAPIError maps Gemini API errors to the package sentinels so callers can
// branch with errors.Is instead of inspecting HTTP codes.
func mapAPIError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Code {
	case 401, 403:
		return fmt.Errorf("%w: %s", ErrAuthentication, apiErr.Message)
	case 429:
		return fmt.Errorf("%w: %s", ErrRateLimit, apiErr.Message)
	case 400:
		return fmt.Errorf("%w: %s", ErrInvalidRequest, apiErr.Message)
	case 500, 502, 503, 504:
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, apiErr.Message)
	default:
		return fmt.Errorf("API error %d: %s", apiErr.Code, apiErr.Message)
	}
}
