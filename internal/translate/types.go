package translate

import (
	"fmt"

	"golang.org/x/text/language"
)

// Request is the body of a translation call against the backend. The API
// key is optional; when absent the server falls back to its own quota.
type Request struct {
	SubtitleID   int64  `json:"subtitle_id"`
	TargetLang   string `json:"target_lang"`
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
}

// Result carries translated caption text in canonical format, ready for
// cue extraction, plus a cache-hit indicator.
type Result struct {
	TranslatedVTT string `json:"translated_vtt"`
	SourceLang    string `json:"source_lang"`
	TargetLang    string `json:"target_lang"`
	Cached        bool   `json:"cached"`
	SegmentCount  int    `json:"segment_count,omitempty"`
}

// Error is a typed translation failure. Message is the server-provided
// text and is shown to the user verbatim, scoped to the requesting track.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// SupportedLanguages lists the translation targets the backend accepts.
var SupportedLanguages = map[string]string{
	"vi": "Vietnamese",
	"en": "English",
	"de": "German",
	"fr": "French",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
}

// ValidateTargetLang checks a target code against the supported set and
// makes sure it is a well-formed language tag.
func ValidateTargetLang(code string) error {
	if _, ok := SupportedLanguages[code]; !ok {
		return fmt.Errorf("unsupported target_lang %q", code)
	}
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("invalid target_lang %q: %w", code, err)
	}
	return nil
}
