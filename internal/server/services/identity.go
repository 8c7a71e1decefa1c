package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
)

// IdentityResolver turns a verified token subject into the caller's current
// identity, read fresh from the store.
type IdentityResolver struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewIdentityResolver(m repomanager.RepositoryManager, logger logging.Logger) *IdentityResolver {
	return &IdentityResolver{repomanager: m, logger: logger.With("module", "identity")}
}

// Resolve returns nil when the user is missing, inactive, or cannot be read.
// Store faults are logged and never returned.
func (r *IdentityResolver) Resolve(ctx context.Context, userID string) *models.Identity {
	user, err := r.repomanager.Users().FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			r.logger.Warn(ctx, "identity lookup failed", "user_id", userID, "error", err)
		}
		return nil
	}
	if !user.IsActive {
		r.logger.Debug(ctx, "inactive user presented a token", "user_id", userID)
		return nil
	}

	return &models.Identity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    append([]models.Role(nil), user.Roles...),
	}
}
