package api

import (
	"net/http"

	"github.com/shopboxapp/shopbox-client/internal/http/response"
)

// tenantContext feeds every request path into the session so tenant
// extraction and ownership resolution track navigation. Infrastructure
// endpoints are exempt.
func (s *Server) tenantContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health", "/metrics":
			next.ServeHTTP(w, r)
			return
		}
		s.session.SetPath(r.Context(), r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// requireOwner gates owner-only screens. The flag is a UI affordance;
// the backend re-validates every mutation it receives.
func (s *Server) requireOwner(w http.ResponseWriter) bool {
	if !s.session.IsOwner() {
		response.Forbidden(w, "Owner access required", s.logger)
		return false
	}
	return true
}
