package server

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/chatcal/chatcal/internal/agent"
)

var chatPageTemplate = template.Must(template.New("chat").Parse(`<!DOCTYPE html>
<html>
<head>
	<title>Calendar Agent</title>
	<style>
		body { font-family: Arial, sans-serif; margin: 40px; max-width: 720px; }
		form { margin: 20px 0; }
		input[type="text"] { padding: 8px; width: 420px; }
		button { padding: 8px 16px; }
		.turn { margin: 10px 0; padding: 10px; border: 1px solid #ccc; border-radius: 5px; white-space: pre-wrap; }
		.clear-btn { margin-left: 10px; }
	</style>
</head>
<body>
	<h2>Calendar Agent</h2>
	<div class="conversation">
		{{range .Turns}}<div class="turn"><strong>You:</strong> {{.User}}
<strong>Assistant:</strong> {{.Assistant}}</div>
		{{end}}
	</div>
	<form action="/chat" method="post">
		<input type="text" name="command" required placeholder="Schedule, delete, or just ask..." autofocus />
		<button type="submit">Send</button>
	</form>
	<form action="/clear" method="post" style="display: inline;">
		<button type="submit" class="clear-btn">Clear Conversation</button>
	</form>
</body>
</html>
`))

type chatPageData struct {
	Turns []agent.Turn
}

func (s *Server) renderChatPage(w http.ResponseWriter, turns []agent.Turn) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chatPageTemplate.Execute(w, chatPageData{Turns: turns}); err != nil {
		s.log.Error().Err(err).Msg("failed to render chat page")
	}
}

func (s *Server) handleChatPage(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)

	sess.mu.Lock()
	turns := sess.analyzer.History()
	sess.mu.Unlock()

	s.renderChatPage(w, turns)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form")
		return
	}
	command := r.FormValue("command")
	if command == "" {
		respondError(w, http.StatusBadRequest, "no command provided")
		return
	}

	// One message at a time per conversation.
	sess.mu.Lock()
	sess.analyzer.ProcessMessage(r.Context(), command)
	turns := sess.analyzer.History()
	sess.mu.Unlock()

	s.renderChatPage(w, turns)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.resetSession(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleOAuthCallback receives the authorization code Google redirects to
// and completes the token exchange.
func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	if s.auth == nil {
		respondError(w, http.StatusServiceUnavailable, "calendar authorization not configured")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "no authorization code received")
		return
	}

	if err := s.auth.ExchangeCode(r.Context(), code); err != nil {
		s.log.Error().Err(err).Msg("failed to exchange authorization code")
		respondError(w, http.StatusInternalServerError, "failed to complete authorization")
		return
	}

	s.log.Info().Msg("calendar authorization completed")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	status := map[string]any{
		"status":     "healthy",
		"generation": "unconfigured",
		"calendar":   "unconfigured",
	}
	if s.completer != nil && s.completer.IsConfigured() {
		status["generation"] = "configured"
	}
	if s.auth != nil {
		if s.auth.IsAuthenticated() {
			status["calendar"] = "connected"
		} else {
			status["calendar"] = "unauthorized"
		}
	}

	respondJSON(w, http.StatusOK, status)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
