package translate

import (
	"fmt"
	"strings"
	"unicode"
)

// minConfidence is the stopword-hit ratio a language must reach before the
// detector commits to it. Below this the text is too short or too ambiguous.
const minConfidence = 0.25

// stopwords maps ISO 639-1 language codes to their most frequent function
// words. Detection scores each language by the fraction of input tokens found
// in its set; function words are frequent enough that even short sentences
// score well in their own language and poorly in the others.
var stopwords = map[string]map[string]struct{}{
	"en": wordSet("the a an and or but is are was were be been to of in on at for with from this that it you i not do does how what"),
	"es": wordSet("el la los las un una y o pero es son fue que de en por para con como esta este esto no se lo hola cómo qué"),
	"fr": wordSet("le la les un une et ou mais est sont était que de dans sur pour avec ce cette il elle vous je ne pas comment bonjour"),
	"de": wordSet("der die das ein eine und oder aber ist sind war zu von in auf für mit diese dieser es sie ich nicht wie was hallo"),
	"pt": wordSet("o a os as um uma e ou mas é são foi que de em por para com como este esta isso não se olá você"),
	"it": wordSet("il la i le un una e o ma è sono era che di in su per con questo questa non si io come cosa ciao"),
}

func wordSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

// detectionOrder fixes the iteration order so ties break deterministically.
var detectionOrder = []string{"en", "es", "fr", "de", "pt", "it"}

// DetectLanguage returns the ISO 639-1 code of the language the text is most
// likely written in. Detection is heuristic; text with too few recognizable
// function words yields ErrDetectionFailed.
func DetectLanguage(text string) (string, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return "", fmt.Errorf("%w: no words in input", ErrDetectionFailed)
	}

	best := ""
	bestScore := 0.0
	for _, lang := range detectionOrder {
		set := stopwords[lang]
		hits := 0
		for _, tok := range tokens {
			if _, ok := set[tok]; ok {
				hits++
			}
		}
		score := float64(hits) / float64(len(tokens))
		if score > bestScore {
			best = lang
			bestScore = score
		}
	}

	if bestScore < minConfidence {
		return "", fmt.Errorf("%w: confidence %.2f below %.2f", ErrDetectionFailed, bestScore, minConfidence)
	}
	return best, nil
}

// IsEnglish reports whether the text is detected as English. Detection
// failure counts as not English.
func IsEnglish(text string) bool {
	lang, err := DetectLanguage(text)
	return err == nil && lang == "en"
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
