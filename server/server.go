// Package server exposes the scoring engine and result history over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/veracity-pipeline/history"
	"github.com/maastricht-university/veracity-pipeline/scoring"
)

// Store is the subset of history.Store the API uses.
type Store interface {
	Save(ctx context.Context, r history.Record) error
	List(ctx context.Context, limit int) ([]history.Record, error)
	Get(ctx context.Context, id string) (history.Record, error)
}

type Server struct {
	engine *scoring.Engine
	store  Store
	log    logrus.FieldLogger
}

// New builds the API. store may be nil, in which case results are not kept
// and the history routes answer 503.
func New(engine *scoring.Engine, store Store, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{engine: engine, store: store, log: log}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Post("/predict", s.predict)
		r.Get("/describe", s.describe)
		r.Get("/results", s.listResults)
		r.Get("/results/{id}", s.getResult)
	})
	return r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request")
	})
}

type predictReq struct {
	FacialEmotion     json.RawMessage `json:"facial_emotion"`
	BodyLanguageScore any             `json:"body_language_score"`
	AudioScore        any             `json:"audio_score"`
}

func (s *Server) predict(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var in predictReq
	if err := dec.Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res := s.engine.PredictAny(in.FacialEmotion, in.BodyLanguageScore, in.AudioScore)
	out := history.NewRecord("api", res)
	if s.store != nil {
		if err := s.store.Save(r.Context(), out); err != nil {
			s.log.WithError(err).Warn("could not save result history")
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) describe(w http.ResponseWriter, r *http.Request) {
	table, ok := scoring.TableFor(r.URL.Query().Get("kind"))
	if !ok {
		writeErr(w, http.StatusBadRequest, "kind must be body or audio")
		return
	}
	score, err := strconv.ParseFloat(r.URL.Query().Get("score"), 64)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "score must be a number")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"score":       score,
		"description": scoring.Describe(score, table),
	})
}

func (s *Server) listResults(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeErr(w, http.StatusServiceUnavailable, "history disabled")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.log.WithError(err).Error("list results")
		writeErr(w, http.StatusInternalServerError, "could not list results")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) getResult(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeErr(w, http.StatusServiceUnavailable, "history disabled")
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, history.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "result not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("get result")
		writeErr(w, http.StatusInternalServerError, "could not load result")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.log.WithField("addr", addr).Info("api listening")
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
