package repositories

import (
	"testing"

	"evalyze_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository_CreateAndFind(t *testing.T) {
	repo := NewMemoryUserRepository()

	user := &models.User{
		Email:          "a@example.com",
		FullName:       "A",
		ActivationCode: "EMP-a",
		Status:         models.UserStatusActive,
	}
	require.NoError(t, repo.Create(user))
	require.NotEmpty(t, user.ID)

	byID, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", byID.Email)

	byEmail, err := repo.FindByEmail("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byCode, err := repo.FindByActivationCode("EMP-a")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byCode.ID)
}

func TestMemoryUserRepository_CreateDuplicateEmail(t *testing.T) {
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(&models.User{Email: "dup@example.com", ActivationCode: "EMP-1"}))
	err := repo.Create(&models.User{Email: "dup@example.com", ActivationCode: "EMP-2"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestMemoryUserRepository_SaveUpsertsByEmail(t *testing.T) {
	repo := NewMemoryUserRepository()

	first := &models.User{Email: "up@example.com", FullName: "First", ActivationCode: "EMP-up"}
	require.NoError(t, repo.Save(first))

	second := &models.User{Email: "up@example.com", FullName: "Second", ActivationCode: "EMP-up"}
	require.NoError(t, repo.Save(second))

	// Same identity, updated fields, no second row.
	assert.Equal(t, first.ID, second.ID)
	count, err := repo.CountAll()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := repo.FindByEmail("up@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Second", stored.FullName)
}

func TestMemoryUserRepository_EmptyActivationCodeNeverMatches(t *testing.T) {
	repo := NewMemoryUserRepository()
	require.NoError(t, repo.Create(&models.User{Email: "nocode@example.com"}))

	_, err := repo.FindByActivationCode("")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryUserRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryUserRepository()
	require.NoError(t, repo.Create(&models.User{Email: "copy@example.com", FullName: "Original", ActivationCode: "EMP-copy"}))

	fetched, err := repo.FindByEmail("copy@example.com")
	require.NoError(t, err)
	fetched.FullName = "Mutated"

	again, err := repo.FindByEmail("copy@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Original", again.FullName)
}

func TestMemoryUserRepository_FindAllPagination(t *testing.T) {
	repo := NewMemoryUserRepository()
	for _, email := range []string{"1@x.com", "2@x.com", "3@x.com"} {
		require.NoError(t, repo.Create(&models.User{Email: email, ActivationCode: "EMP-" + email}))
	}

	page, err := repo.FindAll(2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := repo.FindAll(2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	none, err := repo.FindAll(2, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryProfileRepository_SaveUpsertsByUserID(t *testing.T) {
	repo := NewMemoryProfileRepository()

	first := &models.Profile{UserID: "u1", ProfileData: models.JSONMap{"a": "1"}, Status: models.ProfileStatusPending}
	require.NoError(t, repo.Save(first))

	second := &models.Profile{UserID: "u1", ProfileData: models.JSONMap{"a": "2"}, Status: models.ProfileStatusCompleted}
	require.NoError(t, repo.Save(second))

	assert.Equal(t, first.ID, second.ID)

	stored, err := repo.FindByUserID("u1")
	require.NoError(t, err)
	assert.Equal(t, "2", stored.ProfileData["a"])
	assert.Equal(t, models.ProfileStatusCompleted, stored.Status)

	all, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryProfileRepository_DataIsNotAliased(t *testing.T) {
	repo := NewMemoryProfileRepository()
	require.NoError(t, repo.Save(&models.Profile{UserID: "u1", ProfileData: models.JSONMap{"k": "v"}}))

	fetched, err := repo.FindByUserID("u1")
	require.NoError(t, err)
	fetched.ProfileData["k"] = "mutated"

	again, err := repo.FindByUserID("u1")
	require.NoError(t, err)
	assert.Equal(t, "v", again.ProfileData["k"])
}
