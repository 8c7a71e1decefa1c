package users

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. It enforces the same
// uniqueness rules as the database schema and hands out copies only.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*models.User), now: time.Now}
}

// conflict must be called with the lock held. skipID excludes the row being updated.
func (r *MemoryRepository) conflict(username, email, skipID string) error {
	for id, u := range r.users {
		if id == skipID {
			continue
		}
		if username != "" && u.Username == username {
			return fmt.Errorf("%w: username", common.ErrorAlreadyExists)
		}
		if email != "" && u.Email == email {
			return fmt.Errorf("%w: email", common.ErrorAlreadyExists)
		}
	}
	return nil
}

func (r *MemoryRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return u.Clone(), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Create(ctx context.Context, user models.NewUser) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.conflict(user.Username, user.Email, ""); err != nil {
		return nil, err
	}

	roles := append([]models.Role(nil), user.Roles...)
	if len(roles) == 0 {
		roles = models.DefaultRoles()
	}

	now := r.now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Roles:        roles,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u

	return u.Clone(), nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) UpdateByID(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch.IsEmpty() {
		return current.Clone(), nil
	}

	var username, email string
	if patch.Username != nil {
		username = *patch.Username
	}
	if patch.Email != nil {
		email = *patch.Email
	}
	if err := r.conflict(username, email, id); err != nil {
		return nil, err
	}

	u := current.Clone()
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Roles != nil {
		u.Roles = append([]models.Role(nil), patch.Roles...)
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}
	u.UpdatedAt = r.now().UTC()
	r.users[id] = u

	return u.Clone(), nil
}

func (r *MemoryRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, u.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
