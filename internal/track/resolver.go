package track

import (
	"context"
	"fmt"

	"dualsub/internal/media"
	"dualsub/internal/subtitle"
	"dualsub/internal/translate"
	"dualsub/pkg/log"
)

// Resolution is the outcome of turning a selected source into a cue
// sequence.
type Resolution struct {
	Cues     []subtitle.Cue
	Language string // detected ISO 639-1 code, "" when unknown
	Cached   bool   // translation served from the backend cache
}

// Resolver turns a Source value into a cue sequence. Fetch and translate
// resolutions hit the network; none and file resolve locally.
type Resolver struct {
	fetcher    media.TextFetcher
	translator translate.Translator
	apiKey     func() string // current device API key, read per attempt
}

func NewResolver(fetcher media.TextFetcher, translator translate.Translator, apiKey func() string) *Resolver {
	if apiKey == nil {
		apiKey = func() string { return "" }
	}
	return &Resolver{
		fetcher:    fetcher,
		translator: translator,
		apiKey:     apiKey,
	}
}

// Resolve resolves src against the media item. ref is the derived
// reference subtitle used by translate sources; it may be nil when the
// item carries no server captions.
//
// A fetch failure on a server source degrades to an empty sequence so the
// player stays usable without captions. Translation failures are returned
// to the caller so the track can keep its prior cues and display the
// message.
func (r *Resolver) Resolve(ctx context.Context, src Source, item media.Item, ref *media.Subtitle) (*Resolution, error) {
	switch src.Type {
	case SourceNone:
		return &Resolution{}, nil

	case SourceFile:
		cues := subtitle.Extract(src.Content)
		return &Resolution{
			Cues:     cues,
			Language: subtitle.DetectLanguageCode(cues),
		}, nil

	case SourceServer:
		sub, ok := item.SubtitleByID(src.SubtitleID)
		if !ok {
			log.Warn("Subtitle %d is not listed on media %s", src.SubtitleID, item.ID)
			return &Resolution{}, nil
		}
		text, err := r.fetcher.FetchText(ctx, sub.SubtitleURL)
		if err != nil {
			log.Error("Failed to fetch subtitle %d for media %s: %v", src.SubtitleID, item.ID, err)
			return &Resolution{}, nil
		}
		cues := subtitle.Extract(text)
		return &Resolution{
			Cues:     cues,
			Language: subtitle.DetectLanguageCode(cues),
		}, nil

	case SourceTranslate:
		return r.resolveTranslate(ctx, src, ref)

	default:
		return nil, fmt.Errorf("unknown source type %q", src.Type)
	}
}

func (r *Resolver) resolveTranslate(ctx context.Context, src Source, ref *media.Subtitle) (*Resolution, error) {
	if ref == nil {
		return nil, fmt.Errorf("no reference subtitle available for translation")
	}

	// The backend would answer a same-language request from its cache
	// anyway; skip the round trip when the reference metadata already
	// matches the target.
	if ref.Language != "" && ref.Language == src.TargetLang {
		text, err := r.fetcher.FetchText(ctx, ref.SubtitleURL)
		if err != nil {
			return nil, fmt.Errorf("fetch reference subtitle: %w", err)
		}
		cues := subtitle.Extract(text)
		return &Resolution{
			Cues:     cues,
			Language: subtitle.DetectLanguageCode(cues),
			Cached:   true,
		}, nil
	}

	result, err := r.translator.Translate(ctx, translate.Request{
		SubtitleID:   ref.ID,
		TargetLang:   src.TargetLang,
		GeminiAPIKey: r.apiKey(),
	})
	if err != nil {
		return nil, err
	}

	cues := subtitle.Extract(result.TranslatedVTT)
	return &Resolution{
		Cues:     cues,
		Language: result.TargetLang,
		Cached:   result.Cached,
	}, nil
}
