package api

import (
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// route binds an endpoint to its access policy.
type route struct {
	method  string
	pattern string
	policy  auth.Policy
	handler http.HandlerFunc
}

// authRoutes is the /auth route table. Static segments take precedence over
// {id} in chi, so /profile never reaches the admin lookup.
func (s *Server) authRoutes() []route {
	admin := auth.RequireRoles(models.RoleAdmin)

	return []route{
		{http.MethodPost, "/register", auth.Public(), s.handleRegister},
		{http.MethodPost, "/login", auth.Public(), s.handleLogin},
		{http.MethodGet, "/profile", auth.Authenticated(), s.handleProfile},
		{http.MethodGet, "/moderator/dashboard", auth.RequireRoles(models.RoleAdmin, models.RoleModerator), s.handleModeratorDashboard},
		{http.MethodGet, "/user/dashboard", auth.RequireRoles(models.RoleUser), s.handleUserDashboard},
		{http.MethodGet, "/", admin, s.handleListUsers},
		{http.MethodGet, "/{id}", admin, s.handleGetUser},
		{http.MethodPatch, "/{id}", admin, s.handleUpdateUser},
		{http.MethodDelete, "/{id}", admin, s.handleDeleteUser},
	}
}

// Handler builds the full HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllow, "method not allowed")
	})

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		for _, rt := range s.authRoutes() {
			r.With(s.guard(rt.policy)).Method(rt.method, rt.pattern, rt.handler)
		}
	})

	return r
}
