package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"evalyze_backend/internal/config"
	"evalyze_backend/internal/dto"
	"evalyze_backend/internal/logger"
	"evalyze_backend/pkg/apperrors"
)

// Webhook event actions understood by the n8n automation flows.
const (
	ActionAnalyzeCompetencies = "analyze_competencies"
	ActionAssignJobRole       = "assign_job_role"
	ActionGenerateAIProfile   = "generate_ai_profile"
)

// CompetencyAnalysisEvent is the payload of the analyze_competencies hook.
type CompetencyAnalysisEvent struct {
	UserID      string
	UserEmail   string
	UserName    string
	ProfileData string
	CompanyName string
}

// JobRoleAssignmentEvent is the payload of the assign_job_role hook, fired
// as a side effect of the profile state transition.
type JobRoleAssignmentEvent struct {
	UserID             string
	UserEmail          string
	UserName           string
	ActivationCode     string
	JobRoleID          string
	JobRoleTitle       string
	JobRoleDescription string
	ProfileData        string
	CompanyName        string
}

// AIProfileEvent is the payload of the generate_ai_profile hook.
type AIProfileEvent struct {
	UserID         string
	UserEmail      string
	UserName       string
	ProfileData    string
	CompanyName    string
	ActivationCode string
	TelegramChatID string
	Status         string
}

// WebhookDispatcher posts business events to the external automation
// service. Fire-and-forget semantics: one POST, fixed timeout, no retry.
type WebhookDispatcher interface {
	SendCompetencyAnalysis(ctx context.Context, event *CompetencyAnalysisEvent) (string, error)
	SendJobRoleAssignment(ctx context.Context, event *JobRoleAssignmentEvent) (string, error)
	SendAIProfileGeneration(ctx context.Context, event *AIProfileEvent) (string, error)
	Test(ctx context.Context, url string) *dto.WebhookTestResult
	TestAll(ctx context.Context) map[string]*dto.WebhookTestResult
	Config() *dto.WebhookConfigResponse
}

type HTTPWebhookDispatcher struct {
	client              *http.Client
	analyzeCompetencies string
	assignJobRole       string
	generateAIProfile   string
	timeout             time.Duration
}

func NewWebhookDispatcher(cfg *config.Config) *HTTPWebhookDispatcher {
	timeout := time.Duration(cfg.Webhooks.TimeoutSeconds) * time.Second
	return &HTTPWebhookDispatcher{
		client:              &http.Client{Timeout: timeout},
		analyzeCompetencies: cfg.Webhooks.AnalyzeCompetencies,
		assignJobRole:       cfg.Webhooks.AssignJobRole,
		generateAIProfile:   cfg.Webhooks.GenerateAIProfile,
		timeout:             timeout,
	}
}

func (d *HTTPWebhookDispatcher) SendCompetencyAnalysis(ctx context.Context, event *CompetencyAnalysisEvent) (string, error) {
	payload := map[string]interface{}{
		"action":      ActionAnalyzeCompetencies,
		"userId":      event.UserID,
		"userEmail":   event.UserEmail,
		"userName":    event.UserName,
		"profileData": event.ProfileData,
		"companyName": event.CompanyName,
	}
	return d.send(ctx, ActionAnalyzeCompetencies, d.analyzeCompetencies, payload)
}

func (d *HTTPWebhookDispatcher) SendJobRoleAssignment(ctx context.Context, event *JobRoleAssignmentEvent) (string, error) {
	payload := map[string]interface{}{
		"action":             ActionAssignJobRole,
		"userId":             event.UserID,
		"userEmail":          event.UserEmail,
		"userName":           event.UserName,
		"activationCode":     event.ActivationCode,
		"jobRoleId":          event.JobRoleID,
		"jobRoleTitle":       event.JobRoleTitle,
		"jobRoleDescription": event.JobRoleDescription,
		"profileData":        event.ProfileData,
		"companyName":        event.CompanyName,
	}
	return d.send(ctx, ActionAssignJobRole, d.assignJobRole, payload)
}

func (d *HTTPWebhookDispatcher) SendAIProfileGeneration(ctx context.Context, event *AIProfileEvent) (string, error) {
	payload := map[string]interface{}{
		"action":         ActionGenerateAIProfile,
		"userId":         event.UserID,
		"userEmail":      event.UserEmail,
		"userName":       event.UserName,
		"profileData":    event.ProfileData,
		"companyName":    event.CompanyName,
		"activationCode": event.ActivationCode,
		"telegramChatId": event.TelegramChatID,
		"status":         event.Status,
	}
	return d.send(ctx, ActionGenerateAIProfile, d.generateAIProfile, payload)
}

// Test posts a probe payload to an arbitrary URL and reports the outcome
// instead of failing.
func (d *HTTPWebhookDispatcher) Test(ctx context.Context, url string) *dto.WebhookTestResult {
	payload := map[string]interface{}{
		"action": "test",
	}

	response, err := d.send(ctx, "test", url, payload)
	if err != nil {
		return &dto.WebhookTestResult{
			Success: false,
			Error:   err.Error(),
			Message: "Webhook test failed",
		}
	}

	return &dto.WebhookTestResult{
		Success:  true,
		Response: response,
		Message:  "Webhook test successful",
	}
}

func (d *HTTPWebhookDispatcher) TestAll(ctx context.Context) map[string]*dto.WebhookTestResult {
	return map[string]*dto.WebhookTestResult{
		"analyzeCompetencies": d.Test(ctx, d.analyzeCompetencies),
		"assignJobRole":       d.Test(ctx, d.assignJobRole),
		"generateAIProfile":   d.Test(ctx, d.generateAIProfile),
	}
}

func (d *HTTPWebhookDispatcher) Config() *dto.WebhookConfigResponse {
	return &dto.WebhookConfigResponse{
		AnalyzeCompetencies: d.analyzeCompetencies,
		AssignJobRole:       d.assignJobRole,
		GenerateAIProfile:   d.generateAIProfile,
		TimeoutSeconds:      int(d.timeout / time.Second),
	}
}

// send posts the payload (with a timestamp added) and returns the remote
// response body. Any transport error or non-2xx status is an upstream
// error; retrying is left to the automation side.
func (d *HTTPWebhookDispatcher) send(ctx context.Context, action, url string, payload map[string]interface{}) (string, error) {
	payload["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		logger.WebhookLog(action, url, 0, time.Since(start), err)
		return "", apperrors.ErrUpstream(err, "webhook", "Failed to send webhook")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WebhookLog(action, url, resp.StatusCode, time.Since(start), err)
		return "", apperrors.ErrUpstream(err, "webhook", "Failed to read webhook response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
		logger.WebhookLog(action, url, resp.StatusCode, time.Since(start), err)
		return "", apperrors.ErrUpstream(err, "webhook", "Webhook rejected the event")
	}

	logger.WebhookLog(action, url, resp.StatusCode, time.Since(start), nil)
	return string(respBody), nil
}
