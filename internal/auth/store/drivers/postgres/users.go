package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/project-nt/auth/internal/auth/domain"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, name, email, password_hash, cooperation_type, phone, techs, on_off, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CooperationType, u.Phone, u.Techs,
		u.OnOff, u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err, "create user")
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err, "get user by email")
	}
	return u, nil
}

func (r *usersRepo) FindUsersByEmailAndPhone(ctx context.Context, email, phone string) ([]domain.User, error) {
	return r.list(ctx, "find users by email and phone",
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND phone = $2 ORDER BY created_at, id`,
		email, phone)
}

func (r *usersRepo) FindUsersByNameAndPhone(ctx context.Context, name, phone string) ([]domain.User, error) {
	return r.list(ctx, "find users by name and phone",
		`SELECT `+userColumns+` FROM users WHERE name = $1 AND phone = $2 ORDER BY created_at, id`,
		name, phone)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, email, newHash string) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE email = $3`,
		newHash, time.Now().UTC(), email)
	if err != nil {
		return 0, oops.With("operation", "update password hash").Wrap(err)
	}
	return tag.RowsAffected(), nil
}

func (r *usersRepo) list(ctx context.Context, op, query string, args ...any) ([]domain.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, oops.With("operation", op).Wrap(err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, oops.With("operation", op).Wrap(err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", op).Wrap(err)
	}
	return out, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CooperationType,
		&u.Phone, &u.Techs, &u.OnOff, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
