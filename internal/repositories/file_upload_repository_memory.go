package repositories

import (
	"sort"
	"sync"
	"time"

	"evalyze_backend/internal/models"
)

type MemoryFileUploadRepository struct {
	mu    sync.RWMutex
	files map[string]*models.FileUpload
}

func NewMemoryFileUploadRepository() *MemoryFileUploadRepository {
	return &MemoryFileUploadRepository{files: make(map[string]*models.FileUpload)}
}

func (r *MemoryFileUploadRepository) Create(file *models.FileUpload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&file.BaseModel)
	if file.UploadedAt.IsZero() {
		file.UploadedAt = time.Now()
	}
	stored := *file
	r.files[file.ID] = &stored
	return nil
}

func (r *MemoryFileUploadRepository) FindByID(id string) (*models.FileUpload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	file, ok := r.files[id]
	if !ok {
		return nil, ErrFileNotFound
	}
	out := *file
	return &out, nil
}

func (r *MemoryFileUploadRepository) FindByUserID(userID string) ([]models.FileUpload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.FileUpload
	for _, file := range r.files {
		if file.UserID == userID {
			out = append(out, *file)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

func (r *MemoryFileUploadRepository) FindOlderThan(cutoff time.Time) ([]models.FileUpload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.FileUpload
	for _, file := range r.files {
		if file.UploadedAt.Before(cutoff) {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (r *MemoryFileUploadRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[id]; !ok {
		return ErrFileNotFound
	}
	delete(r.files, id)
	return nil
}

func (r *MemoryFileUploadRepository) CountByUserID(userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, file := range r.files {
		if file.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *MemoryFileUploadRepository) TotalSizeByUserID(userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, file := range r.files {
		if file.UserID == userID {
			total += file.FileSize
		}
	}
	return total, nil
}
