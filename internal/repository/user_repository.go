package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"blogapi/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByValidResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error)
	SetResetToken(ctx context.Context, id uint, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByValidResetToken matches a stored reset token hash whose expiry is still
// in the future.
func (r *userRepository) FindByValidResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("reset_token_hash = ? AND reset_token_expires_at > ?", tokenHash, now).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetResetToken writes only the reset columns, skipping full-record hooks and
// validation.
func (r *userRepository) SetResetToken(ctx context.Context, id uint, tokenHash string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token_hash":       tokenHash,
			"reset_token_expires_at": expiresAt,
		}).Error
}

// ClearResetToken nulls out any pending reset state.
func (r *userRepository) ClearResetToken(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token_hash":       nil,
			"reset_token_expires_at": nil,
		}).Error
}
