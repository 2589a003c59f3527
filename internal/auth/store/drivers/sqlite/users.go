package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/project-nt/auth/internal/auth/domain"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, name, email, password_hash, cooperation_type, phone, techs, on_off, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CooperationType, u.Phone, u.Techs,
		mapStringPtr(u.OnOff), toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) FindUsersByEmailAndPhone(ctx context.Context, email, phone string) ([]domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE email = ? AND phone = ? ORDER BY created_at, id`, email, phone)
}

func (r *usersRepo) FindUsersByNameAndPhone(ctx context.Context, name, phone string) ([]domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE name = ? AND phone = ? ORDER BY created_at, id`, name, phone)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, email, newHash string) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE email = ?`,
		newHash, toMillis(time.Now()), email,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *usersRepo) list(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u                domain.User
		onOff            sql.NullString
		created, updated int64
	)
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CooperationType,
		&u.Phone, &u.Techs, &onOff, &created, &updated); err != nil {
		return domain.User{}, err
	}
	u.OnOff = mapNullStringPtr(onOff)
	u.CreatedAt = fromMillis(created)
	u.UpdatedAt = fromMillis(updated)
	return u, nil
}
