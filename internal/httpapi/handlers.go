package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dualsub/internal/media"
	"dualsub/internal/player"
	"dualsub/internal/subtitle"
	"dualsub/internal/track"
	"dualsub/internal/translate"
	"dualsub/pkg/icron"
)

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var item media.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	session, err := s.manager.Create(item)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, session.Snapshot())
}

// handleSessionSubtree dispatches /api/sessions/{id} and everything below
// it: tracks/{1|2}/source, tracks/{1|2}/vtt, time, seek, transcript,
// stream.
func (s *Server) handleSessionSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/sessions/"), "/")
	parts := strings.Split(rest, "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "missing session id")
		return
	}

	session, ok := s.manager.Get(parts[0])
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	switch {
	case len(parts) == 1:
		s.handleSession(w, r, session)
	case len(parts) == 2 && parts[1] == "time":
		s.handleTime(w, r, session)
	case len(parts) == 2 && parts[1] == "seek":
		s.handleSeek(w, r, session)
	case len(parts) == 2 && parts[1] == "transcript":
		s.handleTranscript(w, r, session)
	case len(parts) == 2 && parts[1] == "stream":
		s.handleSessionStream(w, r, session)
	case len(parts) == 3 && parts[1] == "tracks":
		s.handleTrack(w, r, session, parts[2], "")
	case len(parts) == 4 && parts[1] == "tracks":
		s.handleTrack(w, r, session, parts[2], parts[3])
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request, session *player.Session) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, session.Snapshot())
	case http.MethodDelete:
		s.manager.Delete(session.ID)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleTime(w http.ResponseWriter, r *http.Request, session *player.Session) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var update player.TimeUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	session.UpdateTime(update)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

type seekRequest struct {
	Index int `json:"index"`
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request, session *player.Session) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req seekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	position, err := session.SeekToCue(req.Index)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"position": position,
		"playing":  true,
	})
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request, session *player.Session) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": session.Transcript(),
	})
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request, session *player.Session, trackPart, action string) {
	n, err := strconv.Atoi(trackPart)
	if err != nil || (n != 1 && n != 2) {
		writeError(w, http.StatusNotFound, "no such track")
		return
	}

	switch action {
	case "source":
		s.handleTrackSource(w, r, session, n)
	case "vtt":
		s.handleTrackVTT(w, r, session, n)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleTrackSource(w http.ResponseWriter, r *http.Request, session *player.Session, n int) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var src track.Source
	if err := json.NewDecoder(r.Body).Decode(&src); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := session.SetTrackSource(n, src); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, session.Snapshot())
}

func (s *Server) handleTrackVTT(w http.ResponseWriter, r *http.Request, session *player.Session, n int) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	snap := session.Snapshot()
	cues := snap.Track1.Cues
	if n == 2 {
		cues = snap.Track2.Cues
	}
	if len(cues) == 0 {
		writeError(w, http.StatusNotFound, "track has no cues")
		return
	}
	w.Header().Set("Content-Type", "text/vtt; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(subtitle.WriteCanonical(cues)))
}

type settingsResponse struct {
	GeminiAPIKey       string            `json:"gemini_api_key"`
	SupportedLanguages map[string]string `json:"supported_languages"`
}

type settingsRequest struct {
	GeminiAPIKey string `json:"gemini_api_key"`
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if s.settings == nil {
		writeError(w, http.StatusNotImplemented, "settings store is not configured")
		return
	}

	switch r.Method {
	case http.MethodGet:
		key, err := s.settings.GeminiAPIKey()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, settingsResponse{
			GeminiAPIKey:       key,
			SupportedLanguages: translate.SupportedLanguages,
		})
	case http.MethodPut:
		var req settingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := s.settings.SetGeminiAPIKey(req.GeminiAPIKey); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		key, err := s.settings.GeminiAPIKey()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, settingsResponse{
			GeminiAPIKey:       key,
			SupportedLanguages: translate.SupportedLanguages,
		})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := map[string]any{
		"status":   "ok",
		"sessions": s.manager.Count(),
	}
	if s.janitorCronExpr != "" {
		if info, err := icron.GetTriggerInfo(s.janitorCronExpr, time.Now()); err == nil {
			resp["janitor"] = map[string]any{
				"expression":      info.Expression,
				"last":            info.Last,
				"next":            info.Next,
				"time_until_next": info.TimeUntilNext.String(),
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}
