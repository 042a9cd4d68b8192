package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"evalyze_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp boots the whole application in mock mode against a fake
// webhook endpoint.
func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hooks := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(hooks.Close)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Webhooks.AnalyzeCompetencies = hooks.URL
	cfg.Webhooks.AssignJobRole = hooks.URL
	cfg.Webhooks.GenerateAIProfile = hooks.URL
	cfg.Webhooks.TimeoutSeconds = 5
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.BaseURL = "/api/files"
	cfg.Upload.MaxSize = 1024 * 1024
	cfg.Upload.MaxFilesPerCall = 10
	cfg.Upload.AllowedTypes = []string{"text/plain"}
	cfg.Upload.RetentionDays = 30
	config.AppConfig = cfg

	router, _ := SetupRouter(cfg, nil)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	parsed := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &parsed)
	}
	return rec, parsed
}

func TestHealthEndpoint_MockMode(t *testing.T) {
	router := newTestApp(t)

	rec, body := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "mock", body["mode"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRegisterLoginAndMe(t *testing.T) {
	router := newTestApp(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "flow@example.com",
		"fullName": "Flow Tester",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	rec, body = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "flow@example.com",
		"password": "anything",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, body = doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "flow@example.com", body["email"])
	assert.Equal(t, "EMPLOYEE", body["role"])
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	router := newTestApp(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRouteRejectsInvalidToken(t *testing.T) {
	router := newTestApp(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/profile/me", "not-a-real-token", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateEmployeeRequiresCompanyRole(t *testing.T) {
	router := newTestApp(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "worker@example.com",
		"fullName": "Worker",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	token := body["token"].(string)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/auth/create-employee", token, map[string]interface{}{
		"email":    "colleague@example.com",
		"fullName": "Colleague",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestFullAssignmentFlow(t *testing.T) {
	router := newTestApp(t)

	// Company account.
	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":       "hr@acme.com",
		"fullName":    "HR",
		"role":        "COMPANY",
		"companyName": "Acme",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	companyToken := body["token"].(string)

	// Invite an employee.
	rec, body = doJSON(t, router, http.MethodPost, "/api/auth/create-employee", companyToken, map[string]interface{}{
		"email":    "hire@acme.com",
		"fullName": "New Hire",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	activationCode := body["activationCode"].(string)
	require.NotEmpty(t, activationCode)

	// A job role for the company.
	companyID := companyIDFromToken(t, router, companyToken)
	rec, body = doJSON(t, router, http.MethodPost, "/api/companies/"+companyID+"/job-roles", companyToken, map[string]interface{}{
		"title":       "Backend Engineer",
		"description": "Builds the API",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	jobRoleID := body["id"].(string)

	// Flexible assignment by activation code requires a token.
	rec, _ = doJSON(t, router, http.MethodPost, "/api/profile/assign-job-role-flexible", "", map[string]interface{}{
		"jobRoleId":      jobRoleID,
		"activationCode": activationCode,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body = doJSON(t, router, http.MethodPost, "/api/profile/assign-job-role-flexible", companyToken, map[string]interface{}{
		"jobRoleId":      jobRoleID,
		"activationCode": activationCode,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Backend Engineer", body["jobRoleTitle"])

	// The employee's profile is now completed.
	rec, body = doJSON(t, router, http.MethodGet, "/api/profile/email/hire@acme.com", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "COMPLETED", body["status"])
	assert.Equal(t, true, body["isVerified"])

	// Activation code login flips the account to active.
	rec, body = doJSON(t, router, http.MethodPost, "/api/auth/login/activation-code", "", map[string]interface{}{
		"activationCode": activationCode,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "active", user["status"])
}

func TestProfileByEmail_UnknownUserIs404(t *testing.T) {
	router := newTestApp(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/profile/email/nobody@example.com", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhookConfigEndpoint(t *testing.T) {
	router := newTestApp(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email":    "hooks@example.com",
		"fullName": "Hooks",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	token := body["token"].(string)

	rec, body = doJSON(t, router, http.MethodGet, "/api/webhooks/config", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["analyzeCompetencies"])
	assert.Equal(t, float64(5), body["timeoutSeconds"])
}

func companyIDFromToken(t *testing.T, router *gin.Engine, token string) string {
	t.Helper()
	rec, body := doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	companyID, _ := body["companyId"].(string)
	require.NotEmpty(t, companyID)
	return companyID
}
