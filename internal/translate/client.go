package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"
)

// Env variable names for the LibreTranslate endpoint.
const (
	EnvBaseURL = "LIBRETRANSLATE_URL"
	EnvAPIKey  = "LIBRETRANSLATE_API_KEY"
)

// DefaultBaseURL is the public LibreTranslate instance, used when no
// endpoint is configured. The public instance is rate limited.
const DefaultBaseURL = "https://libretranslate.com"

// translateRequest is the LibreTranslate POST /translate body.
type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

// translateResponse covers both response shapes the API produces. A success
// fills TranslatedText; a failure fills Error.
type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// Client is a LibreTranslate HTTP client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// ClientOptions configures a Client. Zero values fall back to defaults.
type ClientOptions struct {
	BaseURL        string
	APIKey         string
	RequestTimeout time.Duration
	ConnectTimeout time.Duration
}

// NewClient creates a Client for a LibreTranslate endpoint.
func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	connectTimeout := opts.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  opts.APIKey,
		http: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
	}
}

// NewClientFromEnv creates a Client from LIBRETRANSLATE_URL and
// LIBRETRANSLATE_API_KEY, falling back to the public instance.
func NewClientFromEnv() *Client {
	return NewClient(ClientOptions{
		BaseURL: os.Getenv(EnvBaseURL),
		APIKey:  os.Getenv(EnvAPIKey),
	})
}

// Translate sends text to the /translate endpoint and returns the translated
// text. source and target are ISO 639-1 codes.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	body, err := json.Marshal(translateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: c.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("encoding translate request: %w", err)
	}

	url := c.baseURL + "/translate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling translate API: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading translate response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(data))
	}

	var parsed translateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decoding translate response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrTranslationFailed, parsed.Error)
	}
	if parsed.TranslatedText == "" {
		return "", ErrEmptyTranslation
	}
	return parsed.TranslatedText, nil
}

// TranslateToEnglish translates text into English unless it already is.
func (c *Client) TranslateToEnglish(ctx context.Context, text, source string) (string, error) {
	if source == "en" {
		return text, nil
	}
	return c.Translate(ctx, text, source, "en")
}

// TranslateFromEnglish translates English text into the target language.
func (c *Client) TranslateFromEnglish(ctx context.Context, text, target string) (string, error) {
	if target == "en" {
		return text, nil
	}
	return c.Translate(ctx, text, "en", target)
}
