package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const uniqueViolation = "23505"

const userColumns = `id, username, email, password_hash, roles::text, is_active, created_at, updated_at`

// PostgresRepository stores users in the "users" table. Roles live in a
// TEXT[] column; reads cast it to its text form and decode it with pgtype.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u     models.User
		roles []string
	)

	// pgtype.Map is not safe for concurrent use
	m := pgtype.NewMap()
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, m.SQLScanner(&roles), &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	u.Roles, err = models.RolesFromStrings(roles)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, err)
	}
	return &u, nil
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.ConstraintName)
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *PostgresRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE email = $1 OR username = $2
		 LIMIT 1`

	return r.queryOne(ctx, query, email, username)
}

func (r *PostgresRepository) Create(ctx context.Context, user models.NewUser) (*models.User, error) {
	roles := user.Roles
	if len(roles) == 0 {
		roles = models.DefaultRoles()
	}

	query :=
		`INSERT INTO users (username, email, password_hash, roles)
		 VALUES ($1, $2, $3, $4)
		 RETURNING ` + userColumns

	return r.queryOne(ctx, query, user.Username, user.Email, user.PasswordHash, models.RolesToStrings(roles))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	// the id column is uuid; anything else cannot match
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return r.queryOne(ctx, query, id)
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return r.queryOne(ctx, query, email)
}

// UpdateByID applies the non-nil fields of patch in a single statement.
// An empty patch returns the current row unchanged.
func (r *PostgresRepository) UpdateByID(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	sets := make([]string, 0, 6)
	args := make([]any, 0, 6)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Username != nil {
		add("username", *patch.Username)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		add("password_hash", *patch.PasswordHash)
	}
	if patch.Roles != nil {
		add("roles", models.RolesToStrings(patch.Roles))
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE users SET %s
		 WHERE id = $%d
		 RETURNING %s`, strings.Join(sets, ", "), len(args), userColumns)

	return r.queryOne(ctx, query, args...)
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
