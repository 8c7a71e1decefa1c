package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-chi/chi/v5"
)

const (
	moderatorDashboardMessage = "Welcome to moderator dashboard"
	userDashboardMessage      = "Welcome to user dashboard"
)

// bind decodes and validates a request body. It writes the error response
// itself and reports whether the handler should continue.
func bind(w http.ResponseWriter, r *http.Request, v validation.Validatable) bool {
	if err := decodeJSON(r, v); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	if err := v.Validate(); err != nil {
		var fields validation.Errors
		if errors.As(err, &fields) {
			writeValidationError(w, fields)
			return false
		}
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return false
	}
	return true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !bind(w, r, &req) {
		s.metrics.Registrations.WithLabelValues("invalid").Inc()
		return
	}

	res, err := s.auth.Register(r.Context(), req.input())
	if err != nil {
		s.metrics.Registrations.WithLabelValues(outcomeLabel(err)).Inc()
		writeServiceError(w, err)
		return
	}

	s.metrics.Registrations.WithLabelValues("created").Inc()
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !bind(w, r, &req) {
		s.metrics.Logins.WithLabelValues("invalid").Inc()
		return
	}

	res, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.metrics.Logins.WithLabelValues(outcomeLabel(err)).Inc()
		writeServiceError(w, err)
		return
	}

	s.metrics.Logins.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, identityFrom(r.Context()))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.auth.FindAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.auth.FindOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if !bind(w, r, &req) {
		return
	}

	user, err := s.auth.Update(r.Context(), chi.URLParam(r, "id"), req.patch())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleModeratorDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"message": moderatorDashboardMessage})
}

func (s *Server) handleUserDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": userDashboardMessage,
		"user":    identityFrom(r.Context()),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		return "conflict"
	case errors.Is(err, common.ErrAccountDeactivated):
		return "deactivated"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, common.ErrorValidation):
		return "invalid"
	default:
		return "error"
	}
}

// compile-time check that the concrete service satisfies the handler contract
var _ AuthService = (*services.AuthService)(nil)
