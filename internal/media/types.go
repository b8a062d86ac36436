package media

import (
	"fmt"
	"strings"
)

// Item is the media entity the surrounding data-loading layer fetches
// once per player view and hands to the engine. The engine never mutates
// it.
type Item struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	StreamURL       string     `json:"stream_url"`
	MimeType        string     `json:"mime_type,omitempty"`
	DurationSeconds float64    `json:"duration_seconds,omitempty"`
	Subtitles       []Subtitle `json:"subtitles"`
}

// Subtitle is one caption asset known to the media item.
type Subtitle struct {
	ID          int64  `json:"id"`
	Language    string `json:"language"`
	Label       string `json:"label"`
	SubtitleURL string `json:"subtitle_url"`
	IsDefault   bool   `json:"is_default"`
}

// DisplayLabel prefers the editorial label, falling back to the language
// code.
func (s Subtitle) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Language
}

func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("media item id is required")
	}
	if strings.TrimSpace(i.StreamURL) == "" {
		return fmt.Errorf("media item stream_url is required")
	}
	return nil
}

// SubtitleByID finds a caption asset in the item's subtitle list.
func (i Item) SubtitleByID(id int64) (Subtitle, bool) {
	for _, s := range i.Subtitles {
		if s.ID == id {
			return s, true
		}
	}
	return Subtitle{}, false
}

// DefaultSubtitle returns the asset flagged as default, else the first
// listed one.
func (i Item) DefaultSubtitle() (Subtitle, bool) {
	if len(i.Subtitles) == 0 {
		return Subtitle{}, false
	}
	for _, s := range i.Subtitles {
		if s.IsDefault {
			return s, true
		}
	}
	return i.Subtitles[0], true
}
