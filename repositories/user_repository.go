package repositories

import (
	"context"
	"time"

	"shophub/config"
	"shophub/models"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE email = $1", email).Scan(&count)
	return count > 0, err
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	return config.DB.QueryRow(ctx,
		`INSERT INTO users (email, password, full_name, phone, address, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at, updated_at`,
		user.Email, user.Password, user.FullName, user.Phone, user.Address, user.Role, now, now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := config.DB.QueryRow(ctx,
		`SELECT id, email, password, full_name, COALESCE(phone, ''), COALESCE(address, ''),
			role, created_at, updated_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &u.Phone, &u.Address, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := config.DB.QueryRow(ctx,
		`SELECT id, email, password, full_name, COALESCE(phone, ''), COALESCE(address, ''),
			role, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &u.Phone, &u.Address, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	_, err := config.DB.Exec(ctx,
		"UPDATE users SET full_name = $1, phone = $2, address = $3, updated_at = $4 WHERE id = $5",
		user.FullName, user.Phone, user.Address, time.Now(), user.ID)
	return err
}
