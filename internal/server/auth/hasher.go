package auth

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// HashCost is the bcrypt work factor used for every new digest.
const HashCost = bcrypt.DefaultCost

// Hasher produces and checks bcrypt password digests. bcrypt is CPU bound,
// so at most `concurrency` operations run at once; callers beyond that wait
// on a semaphore and give up when their context is done.
type Hasher struct {
	sem  *semaphore.Weighted
	cost int
}

// NewHasher returns a Hasher. concurrency <= 0 means GOMAXPROCS.
func NewHasher(concurrency int) *Hasher {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &Hasher{sem: semaphore.NewWeighted(int64(concurrency)), cost: HashCost}
}

// Hash returns a salted bcrypt digest of plaintext.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: password must not be empty", common.ErrorValidation)
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password is too long", common.ErrorValidation)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Malformed digests,
// mismatches and cancelled waits all report false.
func (h *Hasher) Verify(ctx context.Context, plaintext, digest string) bool {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
