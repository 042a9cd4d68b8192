package repositories

import (
	"sort"
	"sync"
	"time"

	"evalyze_backend/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository is the mock-mode stand-in used when no database DSN
// is configured. Same contract as the GORM implementation, state held in a
// mutex-guarded map.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*models.User)}
}

func (r *MemoryUserRepository) FindByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return copyUser(user), nil
}

func (r *MemoryUserRepository) FindByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) FindByActivationCode(code string) (*models.User, error) {
	if code == "" {
		return nil, ErrUserNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ActivationCode == code {
			return copyUser(user), nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrUserAlreadyExists
		}
	}

	stamp(&user.BaseModel)
	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *MemoryUserRepository) Save(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			user.ID = existing.ID
			user.CreatedAt = existing.CreatedAt
			user.UpdatedAt = time.Now()
			r.users[user.ID] = copyUser(user)
			return nil
		}
	}

	stamp(&user.BaseModel)
	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *MemoryUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return ErrUserNotFound
	}

	existing.FullName = user.FullName
	existing.TelegramChatID = user.TelegramChatID
	existing.Status = user.Status
	existing.RoleID = user.RoleID
	existing.CompanyID = user.CompanyID
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepository) UpdateStatus(userID string, status models.UserStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Status = status
	user.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepository) SetJobRole(userID, jobRoleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	roleID := jobRoleID
	user.RoleID = &roleID
	user.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepository) Delete(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *MemoryUserRepository) FindAll(limit, offset int) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		all = append(all, *copyUser(user))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return paginate(all, limit, offset), nil
}

func (r *MemoryUserRepository) CountAll() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func copyUser(u *models.User) *models.User {
	out := *u
	if u.Company != nil {
		company := *u.Company
		out.Company = &company
	}
	out.Profile = nil
	return &out
}

// stamp fills the identity fields gorm hooks would otherwise set.
func stamp(m *models.BaseModel) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
