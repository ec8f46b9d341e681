package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/reactorsim/pkg/buildinfo"
	"github.com/matzehuels/reactorsim/pkg/httputil"
	"github.com/matzehuels/reactorsim/pkg/observability"
	"github.com/matzehuels/reactorsim/pkg/pipeline"
	"github.com/matzehuels/reactorsim/pkg/reactor"
	"github.com/matzehuels/reactorsim/pkg/session"
	"github.com/matzehuels/reactorsim/pkg/sim"
)

// SessionResponse describes a session and the frame for its current progress.
type SessionResponse struct {
	ID    string        `json:"id"`
	State sim.State     `json:"state"`
	Label string        `json:"label"`
	Armed bool          `json:"armed"`
	Frame reactor.Frame `json:"frame"`
}

func newSessionResponse(sess *session.Session) SessionResponse {
	st, armed := sess.Player.Snapshot()
	return SessionResponse{
		ID:    sess.ID,
		State: st,
		Label: st.Label(),
		Armed: armed,
		Frame: reactor.Compute(st.Progress),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  buildinfo.Version,
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	p, err := httputil.QueryProgress(r, "progress", reactor.MinProgress)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reactor.Compute(p))
}

func (s *Server) handleScene(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := httputil.QueryProgress(r, "progress", reactor.MinProgress)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		scale, err := httputil.QueryScale(r, "scale", pipeline.DefaultScale)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		s.writeScene(w, r, p, format, scale)
	}
}

func (s *Server) writeScene(w http.ResponseWriter, r *http.Request, progress float64, format string, scale float64) {
	res, err := s.runner.Render(r.Context(), pipeline.Options{
		Progress: progress,
		Formats:  []string{format},
		Scale:    scale,
	})
	if err != nil {
		s.logger.Error("render failed", "format", format, "progress", progress, "error", err)
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	httputil.WriteBytes(w, pipeline.ContentTypes[format], res.Artifacts[format])
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	p, err := httputil.QueryProgress(r, "progress", reactor.MinProgress)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	opts := []sim.Option{
		sim.WithLogger(s.logger),
		sim.WithState(sim.State{Progress: p}),
	}
	if s.playerInterval > 0 {
		opts = append(opts, sim.WithInterval(s.playerInterval))
	}
	sess := s.sessions.Create(opts...)
	observability.Server().OnSession(r.Context(), sess.ID, "create")

	w.Header().Set("Location", "/sessions/"+sess.ID)
	httputil.WriteJSON(w, http.StatusCreated, newSessionResponse(sess))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"sessions": s.sessions.IDs()})
}

// session resolves the {id} URL parameter, writing the error response when
// the session does not exist.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) handleSessionScene(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	s.writeScene(w, r, sess.Player.State().Progress, pipeline.FormatSVG, pipeline.DefaultScale)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	st := sess.Player.Toggle()
	observability.Server().OnSession(r.Context(), sess.ID, "toggle")
	s.logger.Debug("session toggled", "id", sess.ID, "mode", st.Mode, "progress", st.Progress)
	httputil.WriteJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) handleScrub(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("value") == "" {
		httputil.WriteError(w, errMissingValue)
		return
	}
	v, err := httputil.QueryProgress(r, "value", 0)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sess.Player.Scrub(v)
	observability.Server().OnSession(r.Context(), sess.ID, "scrub")
	httputil.WriteJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	observability.Server().OnSession(r.Context(), id, "delete")
	w.WriteHeader(http.StatusNoContent)
}
