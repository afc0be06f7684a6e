package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/formpilot/autofill-backend/internal/dtos"
	"github.com/formpilot/autofill-backend/internal/models"
)

type IdentityService struct {
	DB *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{DB: db}
}

// RecordLogin upserts the identity keyed on email. Repeated logins keep a
// single row and overwrite name, picture and last_login.
func (s *IdentityService) RecordLogin(user *dtos.GoogleUser) error {
	identity := models.Identity{
		Email:     user.Email,
		Name:      user.Name,
		Picture:   user.Picture,
		LastLogin: time.Now().UTC(),
	}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "picture", "last_login", "updated_at"}),
	}).Create(&identity).Error
}

// Exists reports whether a login was ever recorded for the email.
func (s *IdentityService) Exists(email string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Identity{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
