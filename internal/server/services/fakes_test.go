package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
)

// fakeHasher is a cheap reversible stand-in for bcrypt.
type fakeHasher struct {
	calls int
}

func (h *fakeHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	h.calls++
	if plaintext == "" {
		return "", common.ErrorValidation
	}
	return "hashed:" + plaintext, nil
}

func (h *fakeHasher) Verify(ctx context.Context, plaintext, digest string) bool {
	return strings.TrimPrefix(digest, "hashed:") == plaintext && strings.HasPrefix(digest, "hashed:")
}

type fakeIssuer struct {
	err error
}

func (f *fakeIssuer) Issue(subject, email string, roles []models.Role) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + subject, nil
}

var errStoreDown = errors.New("connection refused")

// brokenUsers fails every call with errStoreDown.
type brokenUsers struct{}

func (brokenUsers) FindByEmailOrUsername(context.Context, string, string) (*models.User, error) {
	return nil, errStoreDown
}
func (brokenUsers) Create(context.Context, models.NewUser) (*models.User, error) {
	return nil, errStoreDown
}
func (brokenUsers) FindByID(context.Context, string) (*models.User, error) { return nil, errStoreDown }
func (brokenUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, errStoreDown
}
func (brokenUsers) UpdateByID(context.Context, string, models.UserPatch) (*models.User, error) {
	return nil, errStoreDown
}
func (brokenUsers) DeleteByID(context.Context, string) (bool, error) { return false, errStoreDown }
func (brokenUsers) ListAll(context.Context) ([]*models.User, error)  { return nil, errStoreDown }

type brokenManager struct {
	*repomanager.InMemoryRepositoryManager
}

func (brokenManager) Users() users.Repository { return brokenUsers{} }

func (brokenManager) InTx(ctx context.Context, fn func(ctx context.Context, repo users.Repository) error) error {
	return fn(ctx, brokenUsers{})
}

func newBrokenManager() brokenManager {
	return brokenManager{repomanager.NewInMemoryRepositoryManager()}
}
