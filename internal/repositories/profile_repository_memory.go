package repositories

import (
	"sort"
	"sync"
	"time"

	"evalyze_backend/internal/models"
)

// MemoryProfileRepository keys profiles by user ID, which makes the
// one-profile-per-user invariant structural.
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile // keyed by UserID
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{profiles: make(map[string]*models.Profile)}
}

func (r *MemoryProfileRepository) FindByUserID(userID string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return copyProfile(profile), nil
}

func (r *MemoryProfileRepository) Save(profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		profile.UpdatedAt = time.Now()
	} else {
		stamp(&profile.BaseModel)
	}

	r.profiles[profile.UserID] = copyProfile(profile)
	return nil
}

func (r *MemoryProfileRepository) FindByCompanyID(companyID string) ([]models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Profile
	for _, profile := range r.profiles {
		if profile.CompanyID != nil && *profile.CompanyID == companyID {
			out = append(out, *copyProfile(profile))
		}
	}
	sortProfiles(out)
	return out, nil
}

func (r *MemoryProfileRepository) FindAll() ([]models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		out = append(out, *copyProfile(profile))
	}
	sortProfiles(out)
	return out, nil
}

func (r *MemoryProfileRepository) DeleteByUserID(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[userID]; !ok {
		return ErrProfileNotFound
	}
	delete(r.profiles, userID)
	return nil
}

func copyProfile(p *models.Profile) *models.Profile {
	out := *p
	out.ProfileData = models.CloneJSONMap(p.ProfileData)
	if p.CompanyID != nil {
		companyID := *p.CompanyID
		out.CompanyID = &companyID
	}
	return &out
}

func sortProfiles(profiles []models.Profile) {
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].UpdatedAt.After(profiles[j].UpdatedAt)
	})
}
