package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storecore/commerce/internal/domain/entity"
	"github.com/storecore/commerce/internal/domain/errs"
	"github.com/storecore/commerce/internal/domain/repository"
	"github.com/storecore/commerce/internal/domain/valueobject"
)

const userColumns = `id, first_name, last_name, email, password_hash, role, active, email_verified, last_login_at, created_at, updated_at`

// UserRepository persists users with pgx, rebuilding the Email,
// Password and Role value objects on read.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, first_name, last_name, email, password_hash, role, active, email_verified, last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, u.ID, u.FirstName, u.LastName, u.Email.String(), u.Password.Hash(), u.Role.String(),
		u.Active, u.EmailVerified, u.LastLoginAt, u.CreatedAt, u.UpdatedAt)
	return err
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, password_hash = $4, role = $5,
		    active = $6, email_verified = $7, last_login_at = $8, updated_at = $9
		WHERE id = $10
	`, u.FirstName, u.LastName, u.Email.String(), u.Password.Hash(), u.Role.String(),
		u.Active, u.EmailVerified, u.LastLoginAt, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.Newf(errs.NotFound, "user %s not found", u.ID)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.Newf(errs.NotFound, "user %s not found", id)
	}
	return u, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.Newf(errs.NotFound, "user with email %s not found", email)
	}
	return u, err
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n)
	return n, err
}

func scanUser(row rowScanner) (*entity.User, error) {
	var (
		u     entity.User
		email string
		hash  string
		role  string
	)
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &email, &hash, &role,
		&u.Active, &u.EmailVerified, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	e, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, err
	}
	p, err := valueobject.NewPasswordFromHash(hash)
	if err != nil {
		return nil, err
	}
	rl, err := valueobject.NewRole(role)
	if err != nil {
		return nil, err
	}
	u.Email = e
	u.Password = p
	u.Role = rl
	return &u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
