package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *gorm.DB
}

var _ domain.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreateUser gets an existing user or creates a new one. Profile fields
// and the chat id are refreshed when they changed.
func (r *UserRepository) GetOrCreateUser(ctx context.Context, telegramID, chatID int64, username, firstName, lastName string) (*domain.User, error) {
	var user domain.User
	result := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user)
	if result.Error == nil {
		if user.ChatID != chatID || user.Username != username || user.FirstName != firstName || user.LastName != lastName {
			user.ChatID = chatID
			user.Username = username
			user.FirstName = firstName
			user.LastName = lastName
			if err := r.db.WithContext(ctx).Save(&user).Error; err != nil {
				return nil, apperrors.NewDatabaseError(err)
			}
		}
		return &user, nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewDatabaseError(result.Error)
	}

	user = domain.User{
		TelegramID: telegramID,
		ChatID:     chatID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
	}

	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return &user, nil
}

// GetUserByTelegramID gets a user by their Telegram ID
func (r *UserRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		return nil, notFoundOr(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

// notFoundOr maps gorm's not-found error to notFound and wraps anything else
// as a database error.
func notFoundOr(err error, notFound *apperrors.AppError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.NewDatabaseError(err)
}
