package repositories

import (
	"errors"

	"evalyze_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobRoleNotFound = errors.New("job role not found")

type JobRoleRepository interface {
	FindByID(id string) (*models.JobRole, error)
	FindByCompanyID(companyID string) ([]models.JobRole, error)
	FindAll() ([]models.JobRole, error)
	Create(role *models.JobRole) error
	Update(role *models.JobRole) error
	Delete(id string) error
}

type JobRoleRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRoleRepository(db *gorm.DB) JobRoleRepository {
	return &JobRoleRepositoryImpl{db: db}
}

func (r *JobRoleRepositoryImpl) FindByID(id string) (*models.JobRole, error) {
	var role models.JobRole
	err := r.db.First(&role, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *JobRoleRepositoryImpl) FindByCompanyID(companyID string) ([]models.JobRole, error) {
	var roles []models.JobRole
	err := r.db.Where("company_id = ?", companyID).
		Order("created_at DESC").Find(&roles).Error
	return roles, err
}

func (r *JobRoleRepositoryImpl) FindAll() ([]models.JobRole, error) {
	var roles []models.JobRole
	err := r.db.Order("created_at DESC").Find(&roles).Error
	return roles, err
}

func (r *JobRoleRepositoryImpl) Create(role *models.JobRole) error {
	return r.db.Create(role).Error
}

func (r *JobRoleRepositoryImpl) Update(role *models.JobRole) error {
	result := r.db.Model(role).Updates(map[string]interface{}{
		"title":        role.Title,
		"description":  role.Description,
		"requirements": role.Requirements,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobRoleNotFound
	}
	return nil
}

func (r *JobRoleRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.JobRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobRoleNotFound
	}
	return nil
}
