package repositories

import (
	"errors"

	"evalyze_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyRepository interface {
	FindByID(id string) (*models.Company, error)
	FindByName(name string) (*models.Company, error)
	Create(company *models.Company) error
	Update(company *models.Company) error
	Delete(id string) error
	FindAll() ([]models.Company, error)
}

type CompanyRepositoryImpl struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &CompanyRepositoryImpl{db: db}
}

func (r *CompanyRepositoryImpl) FindByID(id string) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindByName(name string) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

func (r *CompanyRepositoryImpl) Update(company *models.Company) error {
	result := r.db.Model(company).Updates(map[string]interface{}{
		"name":        company.Name,
		"description": company.Description,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Company{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepositoryImpl) FindAll() ([]models.Company, error) {
	var companies []models.Company
	err := r.db.Order("created_at DESC").Find(&companies).Error
	return companies, err
}
