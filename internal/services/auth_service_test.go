package services

import (
	"strings"
	"testing"

	"evalyze_backend/internal/config"
	"evalyze_backend/internal/dto"
	"evalyze_backend/internal/models"
	"evalyze_backend/internal/repositories"
	"evalyze_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmailProvider records invitations instead of sending them.
type stubEmailProvider struct {
	invitations []string
	failSend    bool
}

func (s *stubEmailProvider) Send(to, subject, body string) error { return nil }

func (s *stubEmailProvider) SendInvitation(to, fullName, activationCode, companyName string) error {
	if s.failSend {
		return assert.AnError
	}
	s.invitations = append(s.invitations, to)
	return nil
}

func (s *stubEmailProvider) Validate() error { return nil }

type authFixture struct {
	service     AuthService
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	companyRepo repositories.CompanyRepository
	email       *stubEmailProvider
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg

	userRepo := repositories.NewMemoryUserRepository()
	profileRepo := repositories.NewMemoryProfileRepository()
	companyRepo := repositories.NewMemoryCompanyRepository()
	emailProvider := &stubEmailProvider{}

	return &authFixture{
		service:     NewAuthService(userRepo, profileRepo, companyRepo, emailProvider),
		userRepo:    userRepo,
		profileRepo: profileRepo,
		companyRepo: companyRepo,
		email:       emailProvider,
	}
}

func TestRegister_Employee(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.service.Register(&dto.RegisterRequest{
		Email:    "Emp@Example.com",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "emp@example.com", resp.User.Email)
	assert.Equal(t, models.APIRoleEmployee, resp.User.Role)
	assert.Equal(t, string(models.UserStatusActive), resp.User.Status)
	assert.True(t, strings.HasPrefix(resp.User.ActivationCode, "EMP-"))

	// An empty PENDING profile is created alongside.
	profile, err := f.profileRepo.FindByUserID(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProfileStatusPending, profile.Status)
}

func TestRegister_CompanyCreatesCompanyRecord(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.service.Register(&dto.RegisterRequest{
		Email:       "boss@acme.com",
		FullName:    "Boss",
		Role:        models.APIRoleCompany,
		CompanyName: "Acme",
	})
	require.NoError(t, err)

	assert.Equal(t, models.APIRoleCompany, resp.User.Role)
	assert.Equal(t, "Acme", resp.User.CompanyName)

	company, err := f.companyRepo.FindByName("Acme")
	require.NoError(t, err)
	require.NotNil(t, resp.User.CompanyID)
	assert.Equal(t, company.ID, *resp.User.CompanyID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(&dto.RegisterRequest{Email: "dup@example.com", FullName: "One"})
	require.NoError(t, err)

	_, err = f.service.Register(&dto.RegisterRequest{Email: "dup@example.com", FullName: "Two"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin_PasswordlessAcceptsAnyPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(&dto.RegisterRequest{Email: "nopass@example.com", FullName: "No Pass"})
	require.NoError(t, err)

	resp, err := f.service.Login(&dto.LoginRequest{Email: "nopass@example.com", Password: "whatever"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_EnforcesPasswordWhenSet(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(&dto.RegisterRequest{
		Email:    "secure@example.com",
		FullName: "Secure",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = f.service.Login(&dto.LoginRequest{Email: "secure@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentialsErr)

	resp, err := f.service.Login(&dto.LoginRequest{Email: "secure@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(&dto.LoginRequest{Email: "ghost@example.com", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentialsErr)
}

func TestLoginWithActivationCode_FlipsInvitedToActive(t *testing.T) {
	f := newAuthFixture(t)

	invited := &models.User{
		Email:          "invited@example.com",
		FullName:       "Invited",
		ActivationCode: "EMP-test-code",
		Status:         models.UserStatusInvited,
	}
	require.NoError(t, f.userRepo.Create(invited))

	resp, err := f.service.LoginWithActivationCode("EMP-test-code")
	require.NoError(t, err)
	assert.Equal(t, string(models.UserStatusActive), resp.User.Status)

	stored, err := f.userRepo.FindByID(invited.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, stored.Status)
}

func TestLoginWithActivationCode_Invalid(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.LoginWithActivationCode("EMP-nope")
	assert.ErrorIs(t, err, apperrors.ErrInvalidActivationCode)
}

func TestVerifyActivationCode(t *testing.T) {
	f := newAuthFixture(t)

	user := &models.User{
		Email:          "verify@example.com",
		FullName:       "Verify Me",
		ActivationCode: "EMP-verify",
		Status:         models.UserStatusInvited,
	}
	require.NoError(t, f.userRepo.Create(user))

	resp, err := f.service.VerifyActivationCode("EMP-verify")
	require.NoError(t, err)
	assert.Equal(t, "verify@example.com", resp.Email)

	// Verification alone does not activate the account.
	stored, err := f.userRepo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusInvited, stored.Status)
}

func TestCreateEmployee(t *testing.T) {
	f := newAuthFixture(t)

	company, err := f.service.Register(&dto.RegisterRequest{
		Email:       "hr@acme.com",
		FullName:    "HR",
		Role:        models.APIRoleCompany,
		CompanyName: "Acme",
	})
	require.NoError(t, err)

	resp, err := f.service.CreateEmployee(company.User.ID, &dto.CreateEmployeeRequest{
		Email:    "newhire@acme.com",
		FullName: "New Hire",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.ActivationCode, "EMP-"))
	assert.Equal(t, string(models.UserStatusInvited), resp.Employee.Status)
	assert.Equal(t, company.User.CompanyID, resp.Employee.CompanyID)
	assert.Contains(t, f.email.invitations, "newhire@acme.com")
}

func TestCreateEmployee_RequiresCompanyAccount(t *testing.T) {
	f := newAuthFixture(t)

	employee, err := f.service.Register(&dto.RegisterRequest{Email: "plain@example.com", FullName: "Plain"})
	require.NoError(t, err)

	_, err = f.service.CreateEmployee(employee.User.ID, &dto.CreateEmployeeRequest{
		Email:    "other@example.com",
		FullName: "Other",
	})
	assert.ErrorIs(t, err, apperrors.ErrCompanyAccountRequired)
}

func TestCreateEmployee_MailFailureIsNotFatal(t *testing.T) {
	f := newAuthFixture(t)
	f.email.failSend = true

	company, err := f.service.Register(&dto.RegisterRequest{
		Email:    "hr2@acme.com",
		FullName: "HR Two",
		Role:     models.APIRoleCompany,
	})
	require.NoError(t, err)

	resp, err := f.service.CreateEmployee(company.User.ID, &dto.CreateEmployeeRequest{
		Email:    "quiet@acme.com",
		FullName: "Quiet Hire",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ActivationCode)
}

func TestUpdateUser(t *testing.T) {
	f := newAuthFixture(t)

	reg, err := f.service.Register(&dto.RegisterRequest{Email: "upd@example.com", FullName: "Before"})
	require.NoError(t, err)

	updated, err := f.service.UpdateUser(reg.User.ID, &dto.UpdateUserRequest{
		FullName:       "After",
		TelegramChatID: "12345",
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.FullName)
	assert.Equal(t, "12345", updated.TelegramChatID)
}

func TestGetUserByID_NotFound(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.GetUserByID("missing-id")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(&dto.RegisterRequest{Email: "lookup@example.com", FullName: "Lookup"})
	require.NoError(t, err)

	user, err := f.service.GetUserByEmail("  LOOKUP@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "lookup@example.com", user.Email)

	_, err = f.service.GetUserByEmail("absent@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
