// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, login and the administrative user
// operations, hashing passwords and minting session tokens on the way.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
)

// PasswordHasher hashes and checks passwords. Implemented by auth.Hasher.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, digest string) bool
}

// TokenIssuer mints session tokens. Implemented by auth.TokenIssuer.
type TokenIssuer interface {
	Issue(subject, email string, roles []models.Role) (string, error)
}

// RegisterInput is the already-validated registration payload.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Roles    []models.Role
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string            `json:"access_token"`
	User        models.PublicUser `json:"user"`
}

// AuthService provides authentication and user administration:
// - Register: create users and mint a token
// - Login: verify credentials and mint a token
// - FindAll, FindOne, Update, Remove: admin operations over the user store
type AuthService struct {
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	logger      logging.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer, logger logging.Logger) *AuthService {
	return &AuthService{
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "auth_service"),
	}
}

// Register creates a user and returns a token for it. A user holding the same
// email or username yields common.ErrorAlreadyExists and nothing is written.
// The lookup, the hash and the insert share one store transaction; the
// store's unique constraints still decide races between concurrent callers.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	roles := in.Roles
	if roles == nil {
		roles = models.DefaultRoles()
	} else if err := checkRoles(roles); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.repomanager.InTx(ctx, func(ctx context.Context, repo users.Repository) error {
		_, err := repo.FindByEmailOrUsername(ctx, in.Email, in.Username)
		if err == nil {
			return common.ErrorAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		hash, err := s.hasher.Hash(ctx, in.Password)
		if err != nil {
			return err
		}

		user, err = repo.Create(ctx, models.NewUser{
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: hash,
			Roles:        roles,
		})
		return err
	})
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorAlreadyExists):
		return nil, fmt.Errorf("%w: user with this email or username already exists", common.ErrorAlreadyExists)
	case errors.Is(err, common.ErrorValidation), ctx.Err() != nil:
		return nil, err
	default:
		s.logger.Error(ctx, "register failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return s.issue(ctx, user)
}

// Login checks email and password. Unknown email and wrong password both
// yield common.ErrInvalidCredentials; a deactivated account yields
// common.ErrAccountDeactivated before the password is checked.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repomanager.Users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "login lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if !user.IsActive {
		return nil, common.ErrAccountDeactivated
	}

	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

// FindAll returns every user without password hashes.
func (s *AuthService) FindAll(ctx context.Context) ([]models.UserView, error) {
	list, err := s.repomanager.Users().ListAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "list users failed", "error", err)
		return nil, common.ErrorInternal
	}

	views := make([]models.UserView, 0, len(list))
	for _, u := range list {
		views = append(views, u.View())
	}
	return views, nil
}

// FindOne returns one user or common.ErrorNotFound.
func (s *AuthService) FindOne(ctx context.Context, id string) (*models.UserView, error) {
	user, err := s.repomanager.Users().FindByID(ctx, id)
	if err != nil {
		return nil, s.storeError(ctx, "find user", id, err)
	}
	view := user.View()
	return &view, nil
}

// Update applies patch to the user. A plaintext password in the patch is
// hashed first; only the supplied fields change.
func (s *AuthService) Update(ctx context.Context, id string, patch models.UserPatch) (*models.UserView, error) {
	if patch.Roles != nil {
		if err := checkRoles(patch.Roles); err != nil {
			return nil, err
		}
	}
	if patch.Password != nil {
		hash, err := s.hasher.Hash(ctx, *patch.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
		patch.Password = nil
	}

	user, err := s.repomanager.Users().UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, s.storeError(ctx, "update user", id, err)
	}

	s.logger.Info(ctx, "user updated", "user_id", user.ID)
	view := user.View()
	return &view, nil
}

// Remove deletes the user or returns common.ErrorNotFound.
func (s *AuthService) Remove(ctx context.Context, id string) error {
	deleted, err := s.repomanager.Users().DeleteByID(ctx, id)
	if err != nil {
		return s.storeError(ctx, "remove user", id, err)
	}
	if !deleted {
		return common.ErrorNotFound
	}

	s.logger.Info(ctx, "user removed", "user_id", id)
	return nil
}

// --- helpers below ---

func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email, user.Roles)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}
	return &AuthResult{AccessToken: token, User: user.Public()}, nil
}

// storeError passes domain errors through and hides everything else.
func (s *AuthService) storeError(ctx context.Context, op, id string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrorNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return fmt.Errorf("%w: user with this email or username already exists", common.ErrorAlreadyExists)
	}
	s.logger.Error(ctx, op+" failed", "user_id", id, "error", err)
	return common.ErrorInternal
}

// checkRoles rejects an explicit role set that is empty or names a role
// outside the closed enumeration. A nil set means "not provided".
func checkRoles(roles []models.Role) error {
	if len(roles) == 0 {
		return fmt.Errorf("%w: roles must not be empty", common.ErrorValidation)
	}
	for _, r := range roles {
		if !r.IsValid() {
			return fmt.Errorf("%w: unknown role %q", common.ErrorValidation, r)
		}
	}
	return nil
}
