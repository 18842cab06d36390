package repository

import (
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT company_id, email, password_hash, first_name, last_name, avatar, user_type, email_verified, is_blacklisted, created_at
		FROM users WHERE id = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.CompanyID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Avatar, &user.UserType, &user.EmailVerified, &user.IsBlacklisted, &user.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByEmail(email string) (*domain.User, error) {
	query := `
		SELECT id, company_id, password_hash, first_name, last_name, avatar, user_type, email_verified, is_blacklisted, created_at
		FROM users WHERE email = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	user := &domain.User{
		Email: email,
	}

	dst := []any{&user.ID, &user.CompanyID, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Avatar, &user.UserType, &user.EmailVerified, &user.IsBlacklisted, &user.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) CreateUser(user *domain.User) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO users (company_id, email, password_hash, first_name, last_name, avatar, user_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, email_verified, is_blacklisted, created_at
	`

	args := []any{user.CompanyID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Avatar, user.UserType}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.EmailVerified, &user.IsBlacklisted, &user.CreatedAt); err != nil {
		return err
	}

	return nil
}
