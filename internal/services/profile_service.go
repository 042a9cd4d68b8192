package services

import (
	"context"
	"encoding/json"
	"strings"

	"evalyze_backend/internal/dto"
	"evalyze_backend/internal/logger"
	"evalyze_backend/internal/models"
	"evalyze_backend/internal/repositories"
	"evalyze_backend/pkg/apperrors"
)

type ProfileService interface {
	CreateOrUpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	GetProfileByUserID(userID string) (*dto.ProfileResponse, error)
	GetCompanyProfiles(companyID string) ([]dto.ProfileResponse, error)
	GetAllProfiles() ([]dto.ProfileResponse, error)
	UpdateProfileStatus(userID string, status models.ProfileStatus) (*dto.ProfileResponse, error)
	FindProfileByEmail(email string) (*dto.ProfileByEmailResponse, error)
	CreateEmployeeProfile(req *dto.CreateEmployeeProfileRequest) (*dto.CreateEmployeeProfileResponse, error)
	AssignJobRole(userID, jobRoleID string) (*dto.AssignJobRoleResponse, error)
	AssignJobRoleFlexible(req *dto.AssignJobRoleFlexibleRequest) (*dto.AssignJobRoleResponse, error)
	GenerateAIProfile(userID string) (*dto.GenerateAIProfileResponse, error)
	AnalyzeCompetencies(req *dto.CompetencyAnalysisRequest) (string, error)
}

type ProfileServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	companyRepo repositories.CompanyRepository
	jobRoleRepo repositories.JobRoleRepository
	webhooks    WebhookDispatcher
}

func NewProfileService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	companyRepo repositories.CompanyRepository,
	jobRoleRepo repositories.JobRoleRepository,
	webhooks WebhookDispatcher,
) ProfileService {
	return &ProfileServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		companyRepo: companyRepo,
		jobRoleRepo: jobRoleRepo,
		webhooks:    webhooks,
	}
}

// CreateOrUpdateProfile merges the submitted document into the user's
// profile, creating the profile on first write. The user must exist.
func (s *ProfileServiceImpl) CreateOrUpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.findOrNewProfile(user)
	if err != nil {
		return nil, err
	}

	profile.MergeProfileData(req.ProfileData)
	if err := s.profileRepo.Save(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewProfileResponse(profile), nil
}

func (s *ProfileServiceImpl) GetProfileByUserID(userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewProfileResponse(profile), nil
}

func (s *ProfileServiceImpl) GetCompanyProfiles(companyID string) ([]dto.ProfileResponse, error) {
	profiles, err := s.profileRepo.FindByCompanyID(companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return mapProfiles(profiles), nil
}

func (s *ProfileServiceImpl) GetAllProfiles() ([]dto.ProfileResponse, error) {
	profiles, err := s.profileRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return mapProfiles(profiles), nil
}

func (s *ProfileServiceImpl) UpdateProfileStatus(userID string, status models.ProfileStatus) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	profile.Status = status
	if err := s.profileRepo.Save(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewProfileResponse(profile), nil
}

// FindProfileByEmail looks a profile up by the owner's email. A user
// without a profile gets an empty PENDING one created on the fly; an
// unknown email is a 404.
func (s *ProfileServiceImpl) FindProfileByEmail(email string) (*dto.ProfileByEmailResponse, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	profile, err := s.findOrNewProfile(user)
	if err != nil {
		return nil, err
	}
	if profile.ID == "" {
		if err := s.profileRepo.Save(profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	resp := &dto.ProfileByEmailResponse{
		UserID:        user.ID,
		EmployeeEmail: user.Email,
		EmployeeName:  user.FullName,
		ProfileData:   profile.ProfileData,
		Status:        string(profile.Status),
		IsVerified:    profile.IsCompleted(),
		CompanyID:     profile.CompanyID,
	}
	if user.Company != nil {
		resp.CompanyName = user.Company.Name
	}
	return resp, nil
}

// CreateEmployeeProfile is the public onboarding path: it upserts the user
// under the default company and writes a completed profile from the career
// questionnaire.
func (s *ProfileServiceImpl) CreateEmployeeProfile(req *dto.CreateEmployeeProfileRequest) (*dto.CreateEmployeeProfileResponse, error) {
	company, err := s.findOrCreateDefaultCompany()
	if err != nil {
		return nil, err
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(req.EmployeeEmail))
	user, err := s.userRepo.FindByEmail(normalizedEmail)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
		user = &models.User{
			Email:          normalizedEmail,
			FullName:       req.EmployeeName,
			ActivationCode: generateActivationCode(),
			Status:         models.UserStatusInvited,
			CompanyID:      &company.ID,
		}
		if err := s.userRepo.Save(user); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	profile, err := s.findOrNewProfile(user)
	if err != nil {
		return nil, err
	}
	profile.MergeProfileData(models.JSONMap{
		"currentPosition":         req.CurrentPosition,
		"currentSkills":           req.CurrentSkills,
		"currentResponsibilities": req.CurrentResponsibilities,
		"desiredPosition":         req.DesiredPosition,
		"desiredSkills":           req.DesiredSkills,
		"careerGoals":             req.CareerGoals,
	})
	profile.Status = models.ProfileStatusCompleted
	if err := s.profileRepo.Save(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CreateEmployeeProfileResponse{
		Message:       "Employee profile created successfully",
		UserID:        user.ID,
		EmployeeEmail: user.Email,
		EmployeeName:  user.FullName,
		Status:        string(profile.Status),
	}, nil
}

// AssignJobRole links a job role to the user and completes the profile with
// the role snapshot. The assignment webhook fires afterwards; its failure
// never rolls the assignment back.
func (s *ProfileServiceImpl) AssignJobRole(userID, jobRoleID string) (*dto.AssignJobRoleResponse, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	return s.assignRole(user, jobRoleID)
}

// AssignJobRoleFlexible resolves the target user by activation code first,
// then by email.
func (s *ProfileServiceImpl) AssignJobRoleFlexible(req *dto.AssignJobRoleFlexibleRequest) (*dto.AssignJobRoleResponse, error) {
	var user *models.User
	var err error

	if req.ActivationCode != "" {
		user, err = s.userRepo.FindByActivationCode(strings.TrimSpace(req.ActivationCode))
		if err != nil && !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}
	if user == nil && req.Email != "" {
		user, err = s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil && !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return s.assignRole(user, req.JobRoleID)
}

func (s *ProfileServiceImpl) assignRole(user *models.User, jobRoleID string) (*dto.AssignJobRoleResponse, error) {
	role, err := s.jobRoleRepo.FindByID(jobRoleID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobRoleNotFound) {
			return nil, apperrors.ErrJobRoleNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.SetJobRole(user.ID, role.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	profile, err := s.findOrNewProfile(user)
	if err != nil {
		return nil, err
	}
	profile.SetJobRoleData(role)
	if err := s.profileRepo.Save(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Non-critical notification: the assignment stands even when the
	// automation flow is down.
	event := &JobRoleAssignmentEvent{
		UserID:             user.ID,
		UserEmail:          user.Email,
		UserName:           user.FullName,
		ActivationCode:     user.ActivationCode,
		JobRoleID:          role.ID,
		JobRoleTitle:       role.Title,
		JobRoleDescription: role.Description,
		ProfileData:        serializeProfileData(profile.ProfileData),
		CompanyName:        s.companyNameOf(user),
	}
	if _, err := s.webhooks.SendJobRoleAssignment(context.Background(), event); err != nil {
		logger.Warn("job role assignment webhook failed", "userId", user.ID, "jobRoleId", role.ID, "error", err)
	}

	return &dto.AssignJobRoleResponse{
		Message:      "Job role assigned successfully",
		UserID:       user.ID,
		UserEmail:    user.Email,
		JobRoleID:    role.ID,
		JobRoleTitle: role.Title,
		Status:       "success",
	}, nil
}

// GenerateAIProfile asks the automation flow to draft a profile for the
// user. Unlike the assignment hook this one is the whole point of the
// operation, so a webhook failure is surfaced.
func (s *ProfileServiceImpl) GenerateAIProfile(userID string) (*dto.GenerateAIProfileResponse, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.findOrNewProfile(user)
	if err != nil {
		return nil, err
	}
	if profile.ID == "" {
		if err := s.profileRepo.Save(profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	event := &AIProfileEvent{
		UserID:         user.ID,
		UserEmail:      user.Email,
		UserName:       user.FullName,
		ProfileData:    serializeProfileData(profile.ProfileData),
		CompanyName:    s.companyNameOf(user),
		ActivationCode: user.ActivationCode,
		TelegramChatID: user.TelegramChatID,
		Status:         string(profile.Status),
	}
	response, err := s.webhooks.SendAIProfileGeneration(context.Background(), event)
	if err != nil {
		return nil, err
	}

	return &dto.GenerateAIProfileResponse{
		Message:         "AI profile generation triggered",
		UserID:          user.ID,
		UserEmail:       user.Email,
		ActivationCode:  user.ActivationCode,
		Status:          string(profile.Status),
		WebhookResponse: response,
	}, nil
}

// AnalyzeCompetencies forwards the analysis request to the automation flow
// and returns the remote response body.
func (s *ProfileServiceImpl) AnalyzeCompetencies(req *dto.CompetencyAnalysisRequest) (string, error) {
	event := &CompetencyAnalysisEvent{
		UserEmail:   req.UserEmail,
		UserName:    req.UserName,
		ProfileData: req.ProfileData,
		CompanyName: req.CompanyName,
	}

	if user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(req.UserEmail))); err == nil {
		event.UserID = user.ID
		if event.CompanyName == "" {
			event.CompanyName = s.companyNameOf(user)
		}
	}

	return s.webhooks.SendCompetencyAnalysis(context.Background(), event)
}

func (s *ProfileServiceImpl) findUser(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// findOrNewProfile returns the user's profile, or a fresh unsaved PENDING
// one (ID empty) when none exists yet.
func (s *ProfileServiceImpl) findOrNewProfile(user *models.User) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(user.ID)
	if err == nil {
		return profile, nil
	}
	if !apperrors.Is(err, repositories.ErrProfileNotFound) {
		return nil, apperrors.InternalError(err)
	}
	return &models.Profile{
		UserID:      user.ID,
		ProfileData: models.JSONMap{},
		CompanyID:   user.CompanyID,
		Status:      models.ProfileStatusPending,
	}, nil
}

func (s *ProfileServiceImpl) findOrCreateDefaultCompany() (*models.Company, error) {
	company, err := s.companyRepo.FindByName(models.DefaultCompanyName)
	if err == nil {
		return company, nil
	}
	if !apperrors.Is(err, repositories.ErrCompanyNotFound) {
		return nil, apperrors.InternalError(err)
	}
	company = &models.Company{Name: models.DefaultCompanyName}
	if err := s.companyRepo.Create(company); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return company, nil
}

func (s *ProfileServiceImpl) companyNameOf(user *models.User) string {
	if user.Company != nil {
		return user.Company.Name
	}
	if user.CompanyID != nil {
		if company, err := s.companyRepo.FindByID(*user.CompanyID); err == nil {
			return company.Name
		}
	}
	return ""
}

func serializeProfileData(data models.JSONMap) string {
	if len(data) == 0 {
		return "{}"
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func mapProfiles(profiles []models.Profile) []dto.ProfileResponse {
	out := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, *dto.NewProfileResponse(&profiles[i]))
	}
	return out
}
