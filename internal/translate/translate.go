// Package translate detects the language of user text and translates it
// through a LibreTranslate endpoint.
package translate

import "context"

// Result describes one detect-and-translate pass.
type Result struct {
	Original      string `json:"original"`
	Translated    string `json:"translated"`
	SourceLang    string `json:"source_lang"`
	TargetLang    string `json:"target_lang"`
	WasTranslated bool   `json:"was_translated"`
}

// Service combines detection with the HTTP client.
type Service struct {
	client     *Client
	targetLang string
}

// NewService creates a Service translating into targetLang.
func NewService(client *Client, targetLang string) *Service {
	if targetLang == "" {
		targetLang = "en"
	}
	return &Service{client: client, targetLang: targetLang}
}

// DetectAndTranslate detects the source language and translates the text
// into the service's target language. Text already in the target language is
// returned as-is with WasTranslated false.
func (s *Service) DetectAndTranslate(ctx context.Context, text string) (Result, error) {
	source, err := DetectLanguage(text)
	if err != nil {
		return Result{}, err
	}

	if source == s.targetLang {
		return Result{
			Original:      text,
			Translated:    text,
			SourceLang:    source,
			TargetLang:    s.targetLang,
			WasTranslated: false,
		}, nil
	}

	translated, err := s.client.Translate(ctx, text, source, s.targetLang)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Original:      text,
		Translated:    translated,
		SourceLang:    source,
		TargetLang:    s.targetLang,
		WasTranslated: true,
	}, nil
}
