package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nird-backend/internal/domain"
	"nird-backend/internal/repository/models"
	"nird-backend/internal/util"
)

const selectUserQuery = `SELECT
		id "id",
		username "username",
		email "email",
		password_hash "password_hash",
		first_name "first_name",
		last_name "last_name",
		is_staff "is_staff",
		is_superuser "is_superuser",
		is_active "is_active",
		date_joined "date_joined",
		updated_at "updated_at"
	FROM users
	WHERE username = ?`

const insertUserQuery = `INSERT INTO users (id, username, email, password_hash, first_name, last_name, is_staff, is_superuser, is_active, date_joined, updated_at)
	VALUES (:id, :username, :email, :password_hash, :first_name, :last_name, :is_staff, :is_superuser, :is_active, :date_joined, :updated_at)`

// UserDatabaseAdapter implements domain.UserRepository using sqlx
type UserDatabaseAdapter struct {
	db DBTX
}

// NewUserDatabaseAdapter creates a new instance of UserDatabaseAdapter
func NewUserDatabaseAdapter(db DBTX) domain.UserRepository {
	return &UserDatabaseAdapter{db: db}
}

// GetUserByUsername implements domain.UserRepository
func (r *UserDatabaseAdapter) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	exec := GetExecutor(ctx, r.db)

	var user models.User
	err := exec.GetContext(ctx, &user, exec.Rebind(selectUserQuery), util.NormalizeKey(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return toDomainUser(&user), nil
}

// CreateUser implements domain.UserRepository
func (r *UserDatabaseAdapter) CreateUser(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	user.Username = util.NormalizeKey(user.Username)
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	now := time.Now()
	if user.DateJoined.IsZero() {
		user.DateJoined = now
	}
	user.UpdatedAt = now

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, insertUserQuery, fromDomainUser(user)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func toDomainUser(u *models.User) *domain.User {
	if u == nil {
		return nil
	}
	return &domain.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    util.NullStringToString(u.FirstName),
		LastName:     util.NullStringToString(u.LastName),
		IsStaff:      u.IsStaff,
		IsSuperuser:  u.IsSuperuser,
		IsActive:     u.IsActive,
		DateJoined:   u.DateJoined,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    util.StringToNullString(u.FirstName),
		LastName:     util.StringToNullString(u.LastName),
		IsStaff:      u.IsStaff,
		IsSuperuser:  u.IsSuperuser,
		IsActive:     u.IsActive,
		DateJoined:   u.DateJoined,
		UpdatedAt:    u.UpdatedAt,
	}
}
