package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

type UserRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

const userColumns = `id, email, avatar, name, password, type, created_at, updated_at`

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var updatedAt sql.NullTime
	err := row.Scan(&user.ID, &user.Email, &user.Avatar, &user.Name, &user.Password,
		&user.Type, &user.CreatedAt, &updatedAt)
	if err != nil {
		return user, err
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		user.UpdatedAt = &t
	}
	return user, nil
}

// CreateUser expects user.Password to be hashed already.
func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        INSERT INTO users (id, email, avatar, name, password, type, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	user.ID = models.NewID()
	user.CreatedAt = time.Now().UTC()
	_, err := r.DB.ExecContext(ctx, r.Dialect.rebind(query),
		user.ID, user.Email, user.Avatar, user.Name, user.Password, string(user.Type), user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, models.ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user, err := scanUser(r.DB.QueryRowContext(ctx, r.Dialect.rebind(query), arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

// UpdateUser changes only the supplied fields. A supplied password must be hashed.
func (r *UserRepository) UpdateUser(ctx context.Context, id string, dto models.UpdateUserDto) (*models.User, error) {
	var a assignments
	if dto.Avatar != nil {
		a.set("avatar", *dto.Avatar)
	}
	if dto.Name != nil {
		a.set("name", *dto.Name)
	}
	if dto.Password != nil {
		a.set("password", *dto.Password)
	}
	if dto.Type != nil {
		a.set("type", string(*dto.Type))
	}
	if a.empty() {
		return r.GetUserByID(ctx, id)
	}
	a.set("updated_at", time.Now().UTC())

	query := `UPDATE users SET ` + a.clause() + ` WHERE id = ?`
	if _, err := r.DB.ExecContext(ctx, r.Dialect.rebind(query), append(a.args, id)...); err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	return r.GetUserByID(ctx, id)
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	user, err := r.GetUserByID(ctx, id)
	if err != nil || user == nil {
		return user, err
	}
	result, err := r.DB.ExecContext(ctx, r.Dialect.rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("delete user %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, nil
	}
	return user, nil
}

func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, r.Dialect.rebind(`SELECT COUNT(*) FROM users WHERE id = ?`), id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}
