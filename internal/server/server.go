package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chatcal/chatcal/internal/agent"
	"github.com/chatcal/chatcal/internal/database"
	"github.com/chatcal/chatcal/internal/llm"
)

const sessionCookieName = "chatcal_session"

// Authorizer completes the calendar backend's OAuth flow. *gcal.Client
// satisfies it.
type Authorizer interface {
	ExchangeCode(ctx context.Context, code string) error
	IsAuthenticated() bool
}

type Server struct {
	db        *database.DB
	completer llm.Completer
	calendar  agent.CalendarService
	auth      Authorizer
	httpSrv   *http.Server
	port      int
	log       zerolog.Logger

	windowSize    int
	lookaheadDays int
	location      *time.Location

	mu       sync.Mutex
	sessions map[string]*session
}

// session pairs an analyzer with the mutex that serializes its messages.
// The agent core requires callers to process one message at a time per
// conversation; the lock enforces that for concurrent browser requests.
type session struct {
	mu       sync.Mutex
	analyzer *agent.Analyzer
}

// Config holds everything the server needs to build per-session analyzers.
type Config struct {
	DB            *database.DB
	Completer     llm.Completer
	Calendar      agent.CalendarService
	Auth          Authorizer // optional
	Port          int
	WindowSize    int
	LookaheadDays int
	Location      *time.Location
	Logger        zerolog.Logger
}

func New(cfg Config) *Server {
	s := &Server{
		db:            cfg.DB,
		completer:     cfg.Completer,
		calendar:      cfg.Calendar,
		auth:          cfg.Auth,
		port:          cfg.Port,
		log:           cfg.Logger.With().Str("component", "server").Logger(),
		windowSize:    cfg.WindowSize,
		lookaheadDays: cfg.LookaheadDays,
		location:      cfg.Location,
		sessions:      make(map[string]*session),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second, // generation can be slow on local models
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealthCheck)
	mux.HandleFunc("GET /{$}", s.handleChatPage)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /clear", s.handleClear)
	mux.HandleFunc("GET /oauth/callback", s.handleOAuthCallback)
}

// Start begins serving HTTP requests (blocking).
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("starting HTTP server")
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// getSession returns the session for the request's cookie, creating the
// session (and cookie) on first contact.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) *session {
	var id string
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		id = cookie.Value
	} else {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{analyzer: s.newAnalyzer(id)}
		s.sessions[id] = sess
	}
	return sess
}

// newAnalyzer builds the analyzer for a session, restoring any conversation
// persisted under the same session id so a returning browser picks up where
// it left off after a process restart.
func (s *Server) newAnalyzer(sessionID string) *agent.Analyzer {
	var history []agent.Turn
	if records, err := s.db.GetTurns(sessionID); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to load persisted conversation")
	} else {
		for _, rec := range records {
			history = append(history, agent.Turn{User: rec.UserText, Assistant: rec.AssistantText})
		}
	}

	return agent.NewAnalyzer(agent.AnalyzerConfig{
		History:       history,
		Completer:     s.completer,
		Calendar:      s.calendar,
		Store:         s.db,
		SessionID:     sessionID,
		WindowSize:    s.windowSize,
		LookaheadDays: s.lookaheadDays,
		Location:      s.location,
		Logger:        s.log,
	})
}

// resetSession rotates the caller's session cookie, starting a fresh
// conversation. Persisted history for the old session is kept for audit.
func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		s.mu.Lock()
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    uuid.NewString(),
		Path:     "/",
		HttpOnly: true,
	})
}
