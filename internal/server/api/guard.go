package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// guard enforces policy on every request to the wrapped handler. Public
// routes skip token handling entirely; otherwise the bearer token is verified,
// the subject is resolved against the store and auth.Authorize decides.
func (s *Server) guard(policy auth.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if policy.Public {
				next.ServeHTTP(w, r)
				return
			}

			identity := s.authenticate(r)
			if err := auth.Authorize(identity, policy); err != nil {
				s.metrics.Decisions.WithLabelValues(decisionLabel(err)).Inc()
				writeServiceError(w, err)
				return
			}
			s.metrics.Decisions.WithLabelValues("allowed").Inc()

			ctx := context.WithValue(r.Context(), ctxKeyIdentity, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate returns the caller's identity or nil. Token failures are
// logged by kind and otherwise treated the same.
func (s *Server) authenticate(r *http.Request) *models.Identity {
	token, ok := bearerToken(r)
	if !ok {
		return nil
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		kind := "unknown"
		var te *auth.TokenError
		if errors.As(err, &te) {
			kind = string(te.Kind)
		}
		s.metrics.TokenFailures.WithLabelValues(kind).Inc()
		s.logger.Debug(r.Context(), "token rejected", "kind", kind, "request_id", r.Context().Value(ctxKeyRequestID))
		return nil
	}

	return s.identities.Resolve(r.Context(), claims.Subject)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func decisionLabel(err error) string {
	if errors.Is(err, common.ErrorForbidden) {
		return "forbidden"
	}
	return "unauthenticated"
}

// identityFrom returns the identity stored by guard, or nil on public routes.
func identityFrom(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(ctxKeyIdentity).(*models.Identity)
	return id
}
