package gorm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/poyobook/poyobook/internal/core/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithBoard inserts the user and their board in one transaction. A
// duplicate username or email rolls the whole thing back; a user can never
// exist without a board.
func (r *UserRepository) CreateWithBoard(ctx context.Context, user *domain.User, board *domain.Board) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ur := userRow{
			Username:     user.Username,
			PasswordHash: user.PasswordHash,
			Email:        user.Email,
			Verified:     user.Verified,
			APIKey:       user.APIKey,
			Tier:         user.Tier,
			Admin:        user.Admin,
			CreatedAt:    user.CreatedAt,
		}
		if err := tx.Create(&ur).Error; err != nil {
			return err
		}

		br := boardRow{
			UserID:           ur.ID,
			Type:             string(board.Type),
			Name:             board.Name,
			Domain:           board.Domain,
			Tier:             board.Tier,
			BrushColor:       board.BrushColor,
			BackgroundColor:  board.BackgroundColor,
			ShowCaptcha:      board.ShowCaptcha,
			ShowNames:        board.ShowNames,
			ShowDescriptions: board.ShowDescriptions,
			OnIndex:          board.OnIndex,
			CreatedAt:        board.CreatedAt,
			LastUpdated:      board.LastUpdated,
		}
		if err := tx.Create(&br).Error; err != nil {
			return err
		}

		user.ID = ur.ID
		board.ID = br.ID
		board.UserID = ur.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userRow{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
