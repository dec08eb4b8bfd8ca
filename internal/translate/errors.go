package translate

import "errors"

// Sentinel errors for translation failures.
var (
	ErrDetectionFailed     = errors.New("could not detect language")
	ErrTranslationFailed   = errors.New("translation failed")
	ErrUnexpectedStatus    = errors.New("translation API request failed")
	ErrEmptyTranslation    = errors.New("translation API returned no text")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
