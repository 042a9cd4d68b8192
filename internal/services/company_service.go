package services

import (
	"evalyze_backend/internal/dto"
	"evalyze_backend/internal/models"
	"evalyze_backend/internal/repositories"
	"evalyze_backend/pkg/apperrors"
)

type CompanyService interface {
	CreateCompany(req *dto.CreateCompanyRequest) (*models.Company, error)
	GetCompanyByID(id string) (*models.Company, error)
	GetAllCompanies() ([]models.Company, error)
	UpdateCompany(id string, req *dto.UpdateCompanyRequest) (*models.Company, error)
	DeleteCompany(id string) error

	CreateJobRole(companyID string, req *dto.CreateJobRoleRequest) (*models.JobRole, error)
	GetJobRoleByID(id string) (*models.JobRole, error)
	GetCompanyJobRoles(companyID string) ([]models.JobRole, error)
	GetAllJobRoles() ([]models.JobRole, error)
	UpdateJobRole(id string, req *dto.UpdateJobRoleRequest) (*models.JobRole, error)
	DeleteJobRole(id string) error
}

type CompanyServiceImpl struct {
	companyRepo repositories.CompanyRepository
	jobRoleRepo repositories.JobRoleRepository
}

func NewCompanyService(
	companyRepo repositories.CompanyRepository,
	jobRoleRepo repositories.JobRoleRepository,
) CompanyService {
	return &CompanyServiceImpl{
		companyRepo: companyRepo,
		jobRoleRepo: jobRoleRepo,
	}
}

func (s *CompanyServiceImpl) CreateCompany(req *dto.CreateCompanyRequest) (*models.Company, error) {
	if _, err := s.companyRepo.FindByName(req.Name); err == nil {
		return nil, apperrors.ErrConflict(nil, "company", "Company with this name already exists")
	} else if !apperrors.Is(err, repositories.ErrCompanyNotFound) {
		return nil, apperrors.InternalError(err)
	}

	company := &models.Company{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.companyRepo.Create(company); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return company, nil
}

func (s *CompanyServiceImpl) GetCompanyByID(id string) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return company, nil
}

func (s *CompanyServiceImpl) GetAllCompanies() ([]models.Company, error) {
	companies, err := s.companyRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return companies, nil
}

func (s *CompanyServiceImpl) UpdateCompany(id string, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.GetCompanyByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		company.Name = req.Name
	}
	if req.Description != "" {
		company.Description = req.Description
	}

	if err := s.companyRepo.Update(company); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return company, nil
}

func (s *CompanyServiceImpl) DeleteCompany(id string) error {
	if err := s.companyRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return apperrors.ErrCompanyNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CompanyServiceImpl) CreateJobRole(companyID string, req *dto.CreateJobRoleRequest) (*models.JobRole, error) {
	role := &models.JobRole{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
	}
	if role.Requirements == nil {
		role.Requirements = models.JSONMap{}
	}

	if companyID != "" {
		if _, err := s.GetCompanyByID(companyID); err != nil {
			return nil, err
		}
		role.CompanyID = &companyID
	}

	if err := s.jobRoleRepo.Create(role); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return role, nil
}

func (s *CompanyServiceImpl) GetJobRoleByID(id string) (*models.JobRole, error) {
	role, err := s.jobRoleRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobRoleNotFound) {
			return nil, apperrors.ErrJobRoleNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return role, nil
}

func (s *CompanyServiceImpl) GetCompanyJobRoles(companyID string) ([]models.JobRole, error) {
	roles, err := s.jobRoleRepo.FindByCompanyID(companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return roles, nil
}

func (s *CompanyServiceImpl) GetAllJobRoles() ([]models.JobRole, error) {
	roles, err := s.jobRoleRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return roles, nil
}

func (s *CompanyServiceImpl) UpdateJobRole(id string, req *dto.UpdateJobRoleRequest) (*models.JobRole, error) {
	role, err := s.GetJobRoleByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		role.Title = req.Title
	}
	if req.Description != "" {
		role.Description = req.Description
	}
	if req.Requirements != nil {
		role.Requirements = req.Requirements
	}

	if err := s.jobRoleRepo.Update(role); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return role, nil
}

func (s *CompanyServiceImpl) DeleteJobRole(id string) error {
	if err := s.jobRoleRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrJobRoleNotFound) {
			return apperrors.ErrJobRoleNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}
