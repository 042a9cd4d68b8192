package repositories

import (
	"sort"
	"sync"
	"time"

	"evalyze_backend/internal/models"
)

type MemoryCompanyRepository struct {
	mu        sync.RWMutex
	companies map[string]*models.Company
}

func NewMemoryCompanyRepository() *MemoryCompanyRepository {
	return &MemoryCompanyRepository{companies: make(map[string]*models.Company)}
}

func (r *MemoryCompanyRepository) FindByID(id string) (*models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	company, ok := r.companies[id]
	if !ok {
		return nil, ErrCompanyNotFound
	}
	out := *company
	return &out, nil
}

func (r *MemoryCompanyRepository) FindByName(name string) (*models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, company := range r.companies {
		if company.Name == name {
			out := *company
			return &out, nil
		}
	}
	return nil, ErrCompanyNotFound
}

func (r *MemoryCompanyRepository) Create(company *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&company.BaseModel)
	stored := *company
	r.companies[company.ID] = &stored
	return nil
}

func (r *MemoryCompanyRepository) Update(company *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.companies[company.ID]
	if !ok {
		return ErrCompanyNotFound
	}
	existing.Name = company.Name
	existing.Description = company.Description
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryCompanyRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.companies[id]; !ok {
		return ErrCompanyNotFound
	}
	delete(r.companies, id)
	return nil
}

func (r *MemoryCompanyRepository) FindAll() ([]models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Company, 0, len(r.companies))
	for _, company := range r.companies {
		out = append(out, *company)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
