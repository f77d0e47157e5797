package store

import (
	"context"
	"fmt"
	"strings"

	"kitchenos/models"
)

// CreateUser inserts an account. Emails are stored lower-cased.
func (s *Gorm) CreateUser(ctx context.Context, user *models.User) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

// FindUserByEmail looks an account up by its email address.
func (s *Gorm) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
