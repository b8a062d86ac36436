package track

import (
	"sync"

	"dualsub/internal/subtitle"
)

// Track holds one caption lane's state: the selected source, the cue
// sequence it resolved to, and the bookkeeping that keeps stale async
// resolutions from committing.
//
// Every source change bumps the generation counter; a resolution captures
// the generation it started under and may only commit while that
// generation is still current. A superseded resolution's result is
// dropped silently, so only the most recently selected source can win.
type Track struct {
	mu         sync.Mutex
	source     Source
	generation uint64
	cues       []subtitle.Cue
	language   string
	loading    bool
	errMsg     string
	cached     bool
}

// Snapshot is a render-ready copy of track state.
type Snapshot struct {
	Source   Source         `json:"source"`
	Cues     []subtitle.Cue `json:"-"`
	CueCount int            `json:"cue_count"`
	Language string         `json:"language,omitempty"`
	Loading  bool           `json:"loading"`
	Error    string         `json:"error,omitempty"`
	Cached   bool           `json:"cached,omitempty"`
}

func New() *Track {
	return &Track{source: None()}
}

// Begin records a new source selection and returns the generation token
// the resolution must present to commit.
func (t *Track) Begin(src Source) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.source = src
	t.generation++
	t.loading = true
	t.errMsg = ""
	return t.generation
}

// Commit installs a resolution result. It reports false, changing
// nothing, when the track has moved on to a newer source.
func (t *Track) Commit(gen uint64, res *Resolution) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.generation {
		return false
	}
	t.cues = res.Cues
	t.language = res.Language
	t.cached = res.Cached
	t.loading = false
	t.errMsg = ""
	return true
}

// Fail records a resolution failure. Prior cues are kept so the track
// degrades instead of blanking, and the message is surfaced near the
// track's controls. Stale failures are dropped like stale results.
func (t *Track) Fail(gen uint64, msg string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.generation {
		return false
	}
	t.loading = false
	t.errMsg = msg
	return true
}

// Source returns the currently selected source.
func (t *Track) Source() Source {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.source
}

// Cues returns the committed cue sequence. Cues are immutable after
// extraction, so sharing the slice is safe.
func (t *Track) Cues() []subtitle.Cue {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cues
}

func (t *Track) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		Source:   t.source,
		Cues:     t.cues,
		CueCount: len(t.cues),
		Language: t.language,
		Loading:  t.loading,
		Error:    t.errMsg,
		Cached:   t.cached,
	}
}
