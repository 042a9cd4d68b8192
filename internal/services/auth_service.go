package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"evalyze_backend/internal/auth"
	"evalyze_backend/internal/dto"
	"evalyze_backend/internal/email"
	"evalyze_backend/internal/logger"
	"evalyze_backend/internal/models"
	"evalyze_backend/internal/repositories"
	"evalyze_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	LoginWithActivationCode(code string) (*dto.AuthResponse, error)
	VerifyActivationCode(code string) (*dto.UserResponse, error)
	CreateEmployee(creatorID string, req *dto.CreateEmployeeRequest) (*dto.CreateEmployeeResponse, error)
	GetUserByID(userID string) (*dto.UserResponse, error)
	GetUserByEmail(email string) (*dto.UserResponse, error)
	UpdateUser(userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	profileRepo   repositories.ProfileRepository
	companyRepo   repositories.CompanyRepository
	emailProvider email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	companyRepo repositories.CompanyRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		companyRepo:   companyRepo,
		emailProvider: emailProvider,
	}
}

// Register creates an account. COMPANY accounts get (or create) a company
// record; every account gets an activation code and an empty PENDING
// profile.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.FindByEmail(normalizedEmail); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:          normalizedEmail,
		FullName:       req.FullName,
		ActivationCode: generateActivationCode(),
		Status:         models.UserStatusActive,
	}

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.PasswordHash = hash
	}

	if req.Role == models.APIRoleCompany {
		user.Status = models.UserStatusCompany
		company, err := s.findOrCreateCompany(companyNameFor(req))
		if err != nil {
			return nil, err
		}
		user.CompanyID = &company.ID
		user.Company = company
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	profile := &models.Profile{
		UserID:      user.ID,
		ProfileData: models.JSONMap{},
		CompanyID:   user.CompanyID,
		Status:      models.ProfileStatusPending,
	}
	if err := s.profileRepo.Save(profile); err != nil {
		logger.Error("failed to create profile for new user", "userId", user.ID, "error", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.APIRole())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		User:    dto.NewUserResponse(user),
		Token:   token,
		Message: "Registration successful",
	}, nil
}

// Login authenticates by email. Accounts created without a password accept
// any password; once a hash is set it is enforced.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentialsErr
		}
		return nil, apperrors.InternalError(err)
	}

	if user.PasswordHash != "" && !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentialsErr
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.APIRole())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		User:    dto.NewUserResponse(user),
		Token:   token,
		Message: "Login successful",
	}, nil
}

// LoginWithActivationCode authenticates an employee by the code from the
// invitation. The first successful login flips invited -> active.
func (s *AuthServiceImpl) LoginWithActivationCode(code string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByActivationCode(strings.TrimSpace(code))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidActivationCode
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Status == models.UserStatusInvited {
		if err := s.userRepo.UpdateStatus(user.ID, models.UserStatusActive); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.Status = models.UserStatusActive
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.APIRole())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		User:    dto.NewUserResponse(user),
		Token:   token,
		Message: "Login successful",
	}, nil
}

// VerifyActivationCode resolves a code to its user without logging in.
func (s *AuthServiceImpl) VerifyActivationCode(code string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByActivationCode(strings.TrimSpace(code))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidActivationCode
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// CreateEmployee registers an invited employee under the creating company
// account and sends the invitation with the activation code. Mail failure
// is logged, not surfaced; the code is also returned in the response.
func (s *AuthServiceImpl) CreateEmployee(creatorID string, req *dto.CreateEmployeeRequest) (*dto.CreateEmployeeResponse, error) {
	creator, err := s.userRepo.FindByID(creatorID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !creator.IsCompany() {
		return nil, apperrors.ErrCompanyAccountRequired
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.FindByEmail(normalizedEmail); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	employee := &models.User{
		Email:          normalizedEmail,
		FullName:       req.FullName,
		TelegramChatID: req.TelegramChatID,
		ActivationCode: generateActivationCode(),
		Status:         models.UserStatusInvited,
		CompanyID:      creator.CompanyID,
		Company:        creator.Company,
	}
	if err := s.userRepo.Create(employee); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	companyName := ""
	if creator.Company != nil {
		companyName = creator.Company.Name
	}
	if err := s.emailProvider.SendInvitation(employee.Email, employee.FullName, employee.ActivationCode, companyName); err != nil {
		logger.Error("failed to send invitation email", "email", employee.Email, "error", err)
	}

	return &dto.CreateEmployeeResponse{
		Employee:       dto.NewUserResponse(employee),
		Message:        "Employee created successfully",
		ActivationCode: employee.ActivationCode,
	}, nil
}

func (s *AuthServiceImpl) GetUserByID(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *AuthServiceImpl) GetUserByEmail(email string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *AuthServiceImpl) UpdateUser(userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.TelegramChatID != "" {
		user.TelegramChatID = req.TelegramChatID
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *AuthServiceImpl) findOrCreateCompany(name string) (*models.Company, error) {
	company, err := s.companyRepo.FindByName(name)
	if err == nil {
		return company, nil
	}
	if !apperrors.Is(err, repositories.ErrCompanyNotFound) {
		return nil, apperrors.InternalError(err)
	}

	company = &models.Company{Name: name}
	if err := s.companyRepo.Create(company); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return company, nil
}

func companyNameFor(req *dto.RegisterRequest) string {
	if req.CompanyName != "" {
		return req.CompanyName
	}
	return req.FullName
}

// generateActivationCode builds an EMP-prefixed code unique enough for a
// unique index: millisecond timestamp plus random suffix.
func generateActivationCode() string {
	return fmt.Sprintf("EMP-%d-%s", time.Now().UnixMilli(), randomHex(9))
}

func randomHex(length int) string {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)[:length]
}
