package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "guardrails/internal/errors"
	"guardrails/internal/models"
)

// userService handles the read-only user directory.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// ListUsers returns every user with their linked employee name, ordered by
// role then username.
func (s *userService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users := []models.UserSummary{}
	err := s.db.WithContext(ctx).
		Table("users u").
		Select("u.id, u.username, u.role, u.department, e.name AS employee_name").
		Joins("LEFT JOIN employees e ON u.employee_id = e.id").
		Order("u.role, u.username").
		Scan(&users).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFetchUsers, err)
	}
	return users, nil
}
