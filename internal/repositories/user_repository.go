package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	model "task-tracker.com/task-tracker/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

var ErrUserNotFound = errors.New("user not found")

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Save creates the user or replaces the password hash of an existing one.
func (r *UserRepository) Save(ctx context.Context, username, hashedPassword string) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("username = ?", username).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = model.User{Username: username, HashedPassword: hashedPassword, CreatedAt: utcNow()}
			return tx.Create(&user).Error
		case err != nil:
			return err
		}

		user.HashedPassword = hashedPassword
		return tx.Model(&user).Update("hashed_password", hashedPassword).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
