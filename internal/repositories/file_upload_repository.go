package repositories

import (
	"errors"
	"time"

	"evalyze_backend/internal/models"

	"gorm.io/gorm"
)

var ErrFileNotFound = errors.New("file not found")

type FileUploadRepository interface {
	Create(file *models.FileUpload) error
	FindByID(id string) (*models.FileUpload, error)
	FindByUserID(userID string) ([]models.FileUpload, error)
	FindOlderThan(cutoff time.Time) ([]models.FileUpload, error)
	Delete(id string) error
	CountByUserID(userID string) (int64, error)
	TotalSizeByUserID(userID string) (int64, error)
}

type FileUploadRepositoryImpl struct {
	db *gorm.DB
}

func NewFileUploadRepository(db *gorm.DB) FileUploadRepository {
	return &FileUploadRepositoryImpl{db: db}
}

func (r *FileUploadRepositoryImpl) Create(file *models.FileUpload) error {
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	return r.db.Create(file).Error
}

func (r *FileUploadRepositoryImpl) FindByID(id string) (*models.FileUpload, error) {
	var file models.FileUpload
	err := r.db.First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *FileUploadRepositoryImpl) FindByUserID(userID string) ([]models.FileUpload, error) {
	var files []models.FileUpload
	err := r.db.Where("user_id = ?", userID).
		Order("uploaded_at DESC").Find(&files).Error
	return files, err
}

func (r *FileUploadRepositoryImpl) FindOlderThan(cutoff time.Time) ([]models.FileUpload, error) {
	var files []models.FileUpload
	err := r.db.Where("uploaded_at < ?", cutoff).Find(&files).Error
	return files, err
}

func (r *FileUploadRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.FileUpload{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}

func (r *FileUploadRepositoryImpl) CountByUserID(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.FileUpload{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *FileUploadRepositoryImpl) TotalSizeByUserID(userID string) (int64, error) {
	var total int64
	err := r.db.Model(&models.FileUpload{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(file_size), 0)").
		Scan(&total).Error
	return total, err
}
