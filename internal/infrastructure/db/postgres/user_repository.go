package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mka-platform/lms-api/internal/core/domain"
)

const uniqueViolation = "23505"

const userColumns = "id, email, password_hash, role, name, phone, location, about, skills, profile_pic, created_at, updated_at"

// UserRepository is the durable pgx-backed implementation of
// ports.UserRepository. Transport failures surface as
// domain.ErrStoreUnavailable so the service layer can engage its fallback.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role, name, phone, location, about, skills, profile_pic)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+userColumns,
		user.Email, user.PasswordHash, user.Role, user.Name, user.Phone,
		user.Location, user.About, user.Skills, user.ProfilePic,
	)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, classify("insert user", err)
	}
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classify("find user by id", err)
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classify("find user by email", err)
	}
	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, classify("list users", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, classify("scan user row", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list users", err)
	}
	return users, nil
}

func (r *UserRepository) UpdateByID(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	return r.update(ctx, "id", id, patch)
}

func (r *UserRepository) UpdateByEmail(ctx context.Context, email string, patch domain.UserPatch) (*domain.User, error) {
	return r.update(ctx, "email", email, patch)
}

func (r *UserRepository) update(ctx context.Context, keyColumn string, key any, patch domain.UserPatch) (*domain.User, error) {
	sets, args := patchClauses(patch)
	if len(sets) == 0 {
		// nothing to change; behave like a read so callers still get the record
		row := r.pool.QueryRow(ctx,
			fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, keyColumn), key)
		user, err := scanUser(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrUserNotFound
			}
			return nil, classify("update user", err)
		}
		return user, nil
	}

	args = append(args, key)
	query := fmt.Sprintf(
		`UPDATE users SET %s, updated_at = now() WHERE %s = $%d RETURNING %s`,
		strings.Join(sets, ", "), keyColumn, len(args), userColumns,
	)

	row := r.pool.QueryRow(ctx, query, args...)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classify("update user", err)
	}
	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, email, hash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE email = $2`, hash, email)
	if err != nil {
		return classify("update password", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return classify("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// patchClauses builds the SET fragments for the provided patch fields only.
func patchClauses(patch domain.UserPatch) ([]string, []any) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.About != nil {
		add("about", *patch.About)
	}
	if patch.Skills != nil {
		add("skills", patch.Skills)
	}
	if patch.ProfilePic != nil {
		add("profile_pic", *patch.ProfilePic)
	}
	return sets, args
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.Phone,
		&u.Location, &u.About, &u.Skills, &u.ProfilePic, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// classify separates transport failures from server-reported errors. If the
// server produced a PgError the database is reachable and the error is a
// genuine failure; anything else (dial errors, timeouts, closed pool) means
// the store is unavailable and the caller may fall back.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}
