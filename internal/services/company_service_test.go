package services

import (
	"testing"

	"evalyze_backend/internal/dto"
	"evalyze_backend/internal/models"
	"evalyze_backend/internal/repositories"
	"evalyze_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompanyService(t *testing.T) CompanyService {
	t.Helper()
	return NewCompanyService(
		repositories.NewMemoryCompanyRepository(),
		repositories.NewMemoryJobRoleRepository(),
	)
}

func TestCompanyCRUD(t *testing.T) {
	s := newCompanyService(t)

	created, err := s.CreateCompany(&dto.CreateCompanyRequest{Name: "Acme", Description: "Widgets"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := s.GetCompanyByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", fetched.Name)

	updated, err := s.UpdateCompany(created.ID, &dto.UpdateCompanyRequest{Description: "Better widgets"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, "Better widgets", updated.Description)

	all, err := s.GetAllCompanies()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.DeleteCompany(created.ID))
	_, err = s.GetCompanyByID(created.ID)
	assert.ErrorIs(t, err, apperrors.ErrCompanyNotFound)
}

func TestCreateCompany_DuplicateName(t *testing.T) {
	s := newCompanyService(t)

	_, err := s.CreateCompany(&dto.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = s.CreateCompany(&dto.CreateCompanyRequest{Name: "Acme"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestJobRoleCRUD(t *testing.T) {
	s := newCompanyService(t)

	company, err := s.CreateCompany(&dto.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	role, err := s.CreateJobRole(company.ID, &dto.CreateJobRoleRequest{
		Title:       "Backend Engineer",
		Description: "Builds services",
		Requirements: models.JSONMap{
			"languages": []interface{}{"go"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, role.CompanyID)
	assert.Equal(t, company.ID, *role.CompanyID)

	roles, err := s.GetCompanyJobRoles(company.ID)
	require.NoError(t, err)
	assert.Len(t, roles, 1)

	updated, err := s.UpdateJobRole(role.ID, &dto.UpdateJobRoleRequest{Title: "Senior Backend Engineer"})
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", updated.Title)
	assert.Equal(t, "Builds services", updated.Description)

	require.NoError(t, s.DeleteJobRole(role.ID))
	_, err = s.GetJobRoleByID(role.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobRoleNotFound)
}

func TestCreateJobRole_UnknownCompany(t *testing.T) {
	s := newCompanyService(t)

	_, err := s.CreateJobRole("missing-company", &dto.CreateJobRoleRequest{Title: "Ghost Role"})
	assert.ErrorIs(t, err, apperrors.ErrCompanyNotFound)
}

func TestCreateJobRole_WithoutCompany(t *testing.T) {
	s := newCompanyService(t)

	role, err := s.CreateJobRole("", &dto.CreateJobRoleRequest{Title: "Freelance Role"})
	require.NoError(t, err)
	assert.Nil(t, role.CompanyID)
	assert.NotNil(t, role.Requirements)
}
