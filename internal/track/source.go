package track

import (
	"fmt"
	"strings"

	"dualsub/internal/translate"
)

// SourceType discriminates the track source union.
type SourceType string

const (
	SourceNone      SourceType = "none"
	SourceServer    SourceType = "server"
	SourceFile      SourceType = "file"
	SourceTranslate SourceType = "translate"
)

// Source describes where a track's captions come from. Exactly one
// variant is active at a time, selected by Type; the other variants'
// fields are ignored. File content is held in memory only and never
// leaves the process.
type Source struct {
	Type SourceType `json:"type"`

	// Server variant
	SubtitleID int64 `json:"subtitle_id,omitempty"`

	// Server and Translate variants
	Label string `json:"label,omitempty"`

	// File variant
	FileName string `json:"file_name,omitempty"`
	Content  string `json:"content,omitempty"`

	// Translate variant
	TargetLang string `json:"target_lang,omitempty"`
}

// None is the disabled source; it contributes no cues.
func None() Source {
	return Source{Type: SourceNone}
}

func (s Source) Validate() error {
	switch s.Type {
	case SourceNone:
		return nil
	case SourceServer:
		if s.SubtitleID <= 0 {
			return fmt.Errorf("server source requires subtitle_id")
		}
		return nil
	case SourceFile:
		if strings.TrimSpace(s.FileName) == "" {
			return fmt.Errorf("file source requires file_name")
		}
		if s.Content == "" {
			return fmt.Errorf("file source requires content")
		}
		return nil
	case SourceTranslate:
		return translate.ValidateTargetLang(s.TargetLang)
	default:
		return fmt.Errorf("unknown source type %q", s.Type)
	}
}

// Describe renders a short human label for UI state lines.
func (s Source) Describe() string {
	switch s.Type {
	case SourceServer:
		if s.Label != "" {
			return s.Label
		}
		return fmt.Sprintf("subtitle #%d", s.SubtitleID)
	case SourceFile:
		return s.FileName
	case SourceTranslate:
		if s.Label != "" {
			return s.Label
		}
		return s.TargetLang
	default:
		return "off"
	}
}
