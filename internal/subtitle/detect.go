package subtitle

import (
	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// DetectLanguage guesses the dominant language of a cue sequence by
// majority vote over per-cue detection.
func DetectLanguage(cues []Cue) language.Tag {
	code := DetectLanguageCode(cues)
	if code == "" {
		return language.Und
	}
	return language.Make(code)
}

// DetectLanguageCode returns the ISO 639-1 code of the dominant language,
// or "" when the sequence is empty or detection produced nothing usable.
func DetectLanguageCode(cues []Cue) string {
	if len(cues) == 0 {
		return ""
	}

	counts := make(map[string]int)
	for _, cue := range cues {
		code := whatlanggo.DetectLang(cue.Text).Iso6391()
		if code == "" {
			continue
		}
		counts[code]++
	}

	var top string
	var topCount int
	for code, count := range counts {
		if count > topCount {
			top = code
			topCount = count
		}
	}
	return top
}
