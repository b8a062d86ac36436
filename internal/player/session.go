package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dualsub/internal/media"
	"dualsub/internal/subtitle"
	"dualsub/internal/track"
	"dualsub/pkg/log"
)

// Session is the engine state behind one player view: two independent
// caption tracks synchronized against the view's playback clock. Track
// sources live for the life of the session and are discarded with it.
type Session struct {
	ID string

	item     media.Item
	resolver *track.Resolver
	track1   *track.Track
	track2   *track.Track

	mu          sync.Mutex
	currentTime float64
	duration    float64
	playing     bool
	lastActive  time.Time
}

// TimeUpdate is one playback clock tick from the media element. Duration
// zero means unchanged.
type TimeUpdate struct {
	CurrentTime float64 `json:"current_time"`
	Duration    float64 `json:"duration,omitempty"`
	Playing     bool    `json:"playing"`
}

// Snapshot is the render-ready view of a session.
type Snapshot struct {
	ID          string         `json:"id"`
	Media       media.Item     `json:"media"`
	CurrentTime float64        `json:"current_time"`
	Duration    float64        `json:"duration"`
	Playing     bool           `json:"playing"`
	Track1      track.Snapshot `json:"track1"`
	Track2      track.Snapshot `json:"track2"`
	Overlay     Overlay        `json:"overlay"`
}

func newSession(id string, item media.Item, resolver *track.Resolver, startPosition float64) *Session {
	s := &Session{
		ID:          id,
		item:        item,
		resolver:    resolver,
		track1:      track.New(),
		track2:      track.New(),
		currentTime: startPosition,
		duration:    item.DurationSeconds,
		lastActive:  time.Now(),
	}

	// Track 1 auto-selects the item's default server caption so the
	// common single-subtitle case needs no interaction.
	if def, ok := item.DefaultSubtitle(); ok {
		_ = s.SetTrackSource(1, track.Source{
			Type:       track.SourceServer,
			SubtitleID: def.ID,
			Label:      def.DisplayLabel(),
		})
	}
	return s
}

func (s *Session) trackByNumber(n int) (*track.Track, error) {
	switch n {
	case 1:
		return s.track1, nil
	case 2:
		return s.track2, nil
	default:
		return nil, fmt.Errorf("track number must be 1 or 2, got %d", n)
	}
}

// SetTrackSource installs a new source on a track and kicks off its
// resolution. None and file sources resolve inline; server and translate
// sources resolve in the background while playback continues. Whatever
// resolution was previously in flight for the track is superseded and its
// eventual result will be dropped.
func (s *Session) SetTrackSource(n int, src track.Source) error {
	tr, err := s.trackByNumber(n)
	if err != nil {
		return err
	}
	if err := src.Validate(); err != nil {
		return err
	}
	s.touch()

	gen := tr.Begin(src)

	switch src.Type {
	case track.SourceNone, track.SourceFile:
		res, err := s.resolver.Resolve(context.Background(), src, s.item, nil)
		if err != nil {
			tr.Fail(gen, err.Error())
			return nil
		}
		tr.Commit(gen, res)
	default:
		go s.resolveAsync(tr, gen, src)
	}
	return nil
}

func (s *Session) resolveAsync(tr *track.Track, gen uint64, src track.Source) {
	// The reference subtitle is derived fresh on every attempt so it
	// reflects the latest server selections on either track.
	ref := s.referenceSubtitle()

	res, err := s.resolver.Resolve(context.Background(), src, s.item, ref)
	if err != nil {
		if !tr.Fail(gen, err.Error()) {
			log.Debug("Dropping stale resolution failure for session %s: %v", s.ID, err)
		}
		return
	}
	if !tr.Commit(gen, res) {
		log.Debug("Dropping stale resolution result for session %s", s.ID)
	}
}

// referenceSubtitle derives the caption asset translations read from:
// Track 1's server selection, else Track 2's, else the item's first
// listed subtitle, else none.
func (s *Session) referenceSubtitle() *media.Subtitle {
	for _, tr := range []*track.Track{s.track1, s.track2} {
		src := tr.Source()
		if src.Type == track.SourceServer {
			if sub, ok := s.item.SubtitleByID(src.SubtitleID); ok {
				return &sub
			}
		}
	}
	if len(s.item.Subtitles) > 0 {
		sub := s.item.Subtitles[0]
		return &sub
	}
	return nil
}

// UpdateTime advances the playback clock.
func (s *Session) UpdateTime(update TimeUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentTime = update.CurrentTime
	if update.Duration > 0 {
		s.duration = update.Duration
	}
	s.playing = update.Playing
	s.lastActive = time.Now()
}

// SeekToCue moves the clock to a transcript cue's start and resumes
// playback. The index addresses the current primary track's cue list.
func (s *Session) SeekToCue(index int) (float64, error) {
	primary, _ := s.transcriptTracks()
	for _, cue := range primary {
		if cue.Index == index {
			s.mu.Lock()
			s.currentTime = cue.Start
			s.playing = true
			s.lastActive = time.Now()
			s.mu.Unlock()
			return cue.Start, nil
		}
	}
	return 0, fmt.Errorf("no transcript cue with index %d", index)
}

// transcriptTracks picks the primary and secondary cue lists: Track 1
// leads when it has content, Track 2 otherwise, and the secondary
// annotation only appears when both tracks are populated.
func (s *Session) transcriptTracks() (primary, secondary []subtitle.Cue) {
	cues1 := s.track1.Cues()
	cues2 := s.track2.Cues()
	if len(cues1) > 0 {
		if len(cues2) > 0 {
			return cues1, cues2
		}
		return cues1, nil
	}
	return cues2, nil
}

// Transcript builds the merged transcript with active-entry flags.
func (s *Session) Transcript() []Entry {
	primary, secondary := s.transcriptTracks()

	s.mu.Lock()
	now := s.currentTime
	s.mu.Unlock()

	return BuildTranscript(primary, secondary, ActiveCue(now, primary))
}

// Snapshot derives the overlay and track state for rendering. Active cues
// are recomputed from scratch on every call.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	now := s.currentTime
	duration := s.duration
	playing := s.playing
	s.mu.Unlock()

	return Snapshot{
		ID:          s.ID,
		Media:       s.item,
		CurrentTime: now,
		Duration:    duration,
		Playing:     playing,
		Track1:      s.track1.Snapshot(),
		Track2:      s.track2.Snapshot(),
		Overlay: Overlay{
			Track1: ActiveCue(now, s.track1.Cues()),
			Track2: ActiveCue(now, s.track2.Cues()),
		},
	}
}

// Position returns the media id and current playback position.
func (s *Session) Position() (string, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.item.ID, s.currentTime
}

// LastActive reports the last time the session saw any interaction.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}
