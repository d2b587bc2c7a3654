package server

import (
	"fmt"
	"net/http"
)

// ConnectHandler starts the OAuth2 handshake: it validates the user and
// redirects the browser to the provider's authorize endpoint.
func (s *Server) ConnectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userId")
		if userID == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Missing userId query param"})
			return
		}

		redirectURI, err := s.deps.Flow.BeginAuthorization(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		http.Redirect(w, r, redirectURI, http.StatusFound)
	}
}

// CallbackHandler resumes the handshake when the provider redirects back.
// On success the browser is sent to the dashboard.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.deps.Flow.CompleteAuthorization(r.Context(), r.URL.String())
		if err != nil {
			writeError(w, err)
			return
		}

		dashboardURL := fmt.Sprintf("%s?userId=%s&connected=true", s.config.GetDashboardURL(), conn.UserID)
		http.Redirect(w, r, dashboardURL, http.StatusFound)
	}
}

// DisconnectHandler deletes the user's QuickBooks connections.
func (s *Server) DisconnectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Flow.Disconnect(r.Context(), r.PathValue("userId")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Disconnected from QuickBooks"})
	}
}
