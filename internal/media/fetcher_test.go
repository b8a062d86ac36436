package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_FetchText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHi\n"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second)
	text, err := f.FetchText(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, text, "WEBVTT")
}

func TestHTTPFetcher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second)
	_, err := f.FetchText(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPFetcher_CollapsesConcurrentRequests(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte("body"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(5 * time.Second)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := f.FetchText(context.Background(), srv.URL)
			assert.NoError(t, err)
			assert.Equal(t, "body", text)
		}()
	}

	// Let the goroutines pile onto the in-flight request before releasing.
	require.Eventually(t, func() bool {
		return hits.Load() >= 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
}

func TestItem_DefaultSubtitle(t *testing.T) {
	item := Item{
		ID:        "m1",
		StreamURL: "http://example.com/v.mp4",
		Subtitles: []Subtitle{
			{ID: 1, Language: "en"},
			{ID: 2, Language: "vi", IsDefault: true},
		},
	}

	def, ok := item.DefaultSubtitle()
	require.True(t, ok)
	assert.Equal(t, int64(2), def.ID)

	item.Subtitles[1].IsDefault = false
	def, ok = item.DefaultSubtitle()
	require.True(t, ok)
	assert.Equal(t, int64(1), def.ID)

	empty := Item{ID: "m2", StreamURL: "u"}
	_, ok = empty.DefaultSubtitle()
	assert.False(t, ok)
}

func TestItem_Validate(t *testing.T) {
	assert.Error(t, Item{}.Validate())
	assert.Error(t, Item{ID: "x"}.Validate())
	assert.NoError(t, Item{ID: "x", StreamURL: "http://example.com/v"}.Validate())
}
