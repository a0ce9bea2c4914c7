package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teatak/wordlike/ngram"
	"github.com/teatak/wordlike/scorer"
	"github.com/teatak/wordlike/util"
)

// maxGramLen bounds the n accepted by /grams.
const maxGramLen = 16

const (
	defaultMaxWords     = 1000
	defaultMaxBodyBytes = 1 << 20
)

// Server answers scoring requests against a fixed scorer.
type Server struct {
	scorer       *scorer.Scorer
	logger       *slog.Logger
	maxWords     int
	maxBodyBytes int64
	validate     *validator.Validate
	mux          *http.ServeMux
}

// Options configures a Server.
type Options struct {
	Logger       *slog.Logger
	MaxWords     int
	MaxBodyBytes int64
}

// New creates a server over sc.
func New(sc *scorer.Scorer, opts Options) *Server {
	s := &Server{
		scorer:       sc,
		logger:       opts.Logger,
		maxWords:     opts.MaxWords,
		maxBodyBytes: opts.MaxBodyBytes,
		validate:     validator.New(),
		mux:          http.NewServeMux(),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.maxWords <= 0 {
		s.maxWords = defaultMaxWords
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = defaultMaxBodyBytes
	}

	s.handle("POST /score", "score", s.handleScore)
	s.handle("POST /rank", "rank", s.handleRank)
	s.handle("GET /grams", "grams", s.handleGrams)
	s.handle("GET /healthz", "healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "lengths": s.scorer.Sizes()})
	})
	s.mux.Handle("GET /metrics", promhttp.Handler())
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", slog.String("addr", addr), slog.Any("lengths", s.scorer.Sizes()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Request/Response types
type ScoreRequest struct {
	Words []string `json:"words" validate:"required,min=1,dive,required"`
}

type WordScore struct {
	Word       string             `json:"word"`
	Key        float64            `json:"key"`
	Components []scorer.Component `json:"components"`
}

type ScoreResponse struct {
	Scores []WordScore `json:"scores"`
}

type RankRequest struct {
	Words []string `json:"words" validate:"required_without=Text,dive,required"`
	Text  string   `json:"text" validate:"required_without=Words"`
	Fold  bool     `json:"fold"`
	Limit int      `json:"limit" validate:"gte=0"`
}

type RankResponse struct {
	Ranking []scorer.Ranked `json:"ranking"`
}

type GramsResponse struct {
	Word  string   `json:"word"`
	N     int      `json:"n"`
	Count int      `json:"count"`
	Grams []string `json:"grams"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Words) > s.maxWords {
		s.fail(w, r, http.StatusRequestEntityTooLarge, fmt.Errorf("at most %d words per request", s.maxWords))
		return
	}

	resp := ScoreResponse{Scores: make([]WordScore, len(req.Words))}
	for i, word := range req.Words {
		components := s.scorer.Breakdown(word)
		resp.Scores[i] = WordScore{Word: word, Key: scorer.KeyOf(components), Components: components}
	}
	wordsScored.Add(float64(len(req.Words)))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if !s.decode(w, r, &req) {
		return
	}
	words := req.Words
	if len(words) == 0 {
		words = util.Words(req.Text, req.Fold)
	}
	if len(words) == 0 {
		s.fail(w, r, http.StatusBadRequest, errors.New("no words to rank"))
		return
	}
	if len(words) > s.maxWords {
		s.fail(w, r, http.StatusRequestEntityTooLarge, fmt.Errorf("at most %d words per request", s.maxWords))
		return
	}

	ranking := s.scorer.Rank(words)
	if req.Limit > 0 && req.Limit < len(ranking) {
		ranking = ranking[:req.Limit]
	}
	wordsScored.Add(float64(len(words)))
	writeJSON(w, http.StatusOK, RankResponse{Ranking: ranking})
}

func (s *Server) handleGrams(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	n := 3
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxGramLen {
			s.fail(w, r, http.StatusBadRequest, fmt.Errorf("n must be an integer between 1 and %d", maxGramLen))
			return
		}
		n = v
	}

	resp := GramsResponse{Word: word, N: n, Count: ngram.Count(word, n), Grams: []string{}}
	for g := range ngram.Grams(word, n) {
		resp.Grams = append(resp.Grams, g.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err))
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			err = fmt.Errorf("field %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		s.fail(w, r, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	id := requestID(r)
	s.logger.Warn("request failed",
		slog.String("request_id", id),
		slog.String("path", r.URL.Path),
		slog.Int("status", code),
		slog.String("error", err.Error()),
	)
	writeJSON(w, code, errorResponse{Error: err.Error(), RequestID: id})
}

// handle registers h under pattern wrapped with request ID, metrics and logging.
func (s *Server) handle(pattern, route string, h http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)

		elapsed := time.Since(start)
		requestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		s.logger.Debug("handled request",
			slog.String("request_id", id),
			slog.String("route", route),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", elapsed),
		)
	})
}

const requestIDHeader = "X-Request-ID"

func requestID(r *http.Request) string {
	return r.Header.Get(requestIDHeader)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
