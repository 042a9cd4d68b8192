package repositories

import (
	"sort"
	"sync"
	"time"

	"evalyze_backend/internal/models"
)

type MemoryJobRoleRepository struct {
	mu    sync.RWMutex
	roles map[string]*models.JobRole
}

func NewMemoryJobRoleRepository() *MemoryJobRoleRepository {
	return &MemoryJobRoleRepository{roles: make(map[string]*models.JobRole)}
}

func (r *MemoryJobRoleRepository) FindByID(id string) (*models.JobRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[id]
	if !ok {
		return nil, ErrJobRoleNotFound
	}
	return copyJobRole(role), nil
}

func (r *MemoryJobRoleRepository) FindByCompanyID(companyID string) ([]models.JobRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.JobRole
	for _, role := range r.roles {
		if role.CompanyID != nil && *role.CompanyID == companyID {
			out = append(out, *copyJobRole(role))
		}
	}
	sortJobRoles(out)
	return out, nil
}

func (r *MemoryJobRoleRepository) FindAll() ([]models.JobRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.JobRole, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *copyJobRole(role))
	}
	sortJobRoles(out)
	return out, nil
}

func (r *MemoryJobRoleRepository) Create(role *models.JobRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&role.BaseModel)
	r.roles[role.ID] = copyJobRole(role)
	return nil
}

func (r *MemoryJobRoleRepository) Update(role *models.JobRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.roles[role.ID]
	if !ok {
		return ErrJobRoleNotFound
	}
	existing.Title = role.Title
	existing.Description = role.Description
	existing.Requirements = models.CloneJSONMap(role.Requirements)
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryJobRoleRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roles[id]; !ok {
		return ErrJobRoleNotFound
	}
	delete(r.roles, id)
	return nil
}

func copyJobRole(role *models.JobRole) *models.JobRole {
	out := *role
	out.Requirements = models.CloneJSONMap(role.Requirements)
	if role.CompanyID != nil {
		companyID := *role.CompanyID
		out.CompanyID = &companyID
	}
	return &out
}

func sortJobRoles(roles []models.JobRole) {
	sort.Slice(roles, func(i, j int) bool {
		return roles[i].CreatedAt.After(roles[j].CreatedAt)
	})
}
