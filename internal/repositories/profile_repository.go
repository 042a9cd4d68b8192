package repositories

import (
	"errors"

	"evalyze_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	FindByUserID(userID string) (*models.Profile, error)
	// Save upserts by user ID: exactly one profile per user.
	Save(profile *models.Profile) error
	FindByCompanyID(companyID string) ([]models.Profile, error)
	FindAll() ([]models.Profile, error)
	DeleteByUserID(userID string) error
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) FindByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Save(profile *models.Profile) error {
	var existing models.Profile
	err := r.db.Where("user_id = ?", profile.UserID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(profile).Error
		}
		return err
	}

	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	return r.db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) FindByCompanyID(companyID string) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Where("company_id = ?", companyID).
		Order("updated_at DESC").Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) FindAll() ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Order("updated_at DESC").Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepositoryImpl) DeleteByUserID(userID string) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Profile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
