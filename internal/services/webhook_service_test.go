package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"evalyze_backend/internal/config"
	"evalyze_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatcherForURL(url string) *HTTPWebhookDispatcher {
	cfg := &config.Config{}
	cfg.Webhooks.AnalyzeCompetencies = url
	cfg.Webhooks.AssignJobRole = url
	cfg.Webhooks.GenerateAIProfile = url
	cfg.Webhooks.TimeoutSeconds = 5
	return NewWebhookDispatcher(cfg)
}

func TestSendJobRoleAssignment_PayloadShape(t *testing.T) {
	var received map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Write([]byte(`{"received":true}`))
	}))
	defer server.Close()

	d := newDispatcherForURL(server.URL)
	response, err := d.SendJobRoleAssignment(context.Background(), &JobRoleAssignmentEvent{
		UserID:       "u1",
		UserEmail:    "u1@example.com",
		UserName:     "User One",
		JobRoleID:    "r1",
		JobRoleTitle: "Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"received":true}`, response)

	assert.Equal(t, ActionAssignJobRole, received["action"])
	assert.Equal(t, "u1", received["userId"])
	assert.Equal(t, "u1@example.com", received["userEmail"])
	assert.Equal(t, "Engineer", received["jobRoleTitle"])

	ts, ok := received["timestamp"].(string)
	require.True(t, ok, "timestamp must be present")
	_, err = time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
}

func TestSendCompetencyAnalysis_Action(t *testing.T) {
	var received map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	d := newDispatcherForURL(server.URL)
	_, err := d.SendCompetencyAnalysis(context.Background(), &CompetencyAnalysisEvent{
		UserEmail: "a@example.com",
		UserName:  "A",
	})
	require.NoError(t, err)
	assert.Equal(t, ActionAnalyzeCompetencies, received["action"])
}

func TestSend_Non2xxIsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	d := newDispatcherForURL(server.URL)
	_, err := d.SendAIProfileGeneration(context.Background(), &AIProfileEvent{UserID: "u1"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPCode)
}

func TestSend_TransportErrorIsUpstreamError(t *testing.T) {
	d := newDispatcherForURL("http://127.0.0.1:1/unreachable")

	_, err := d.SendAIProfileGeneration(context.Background(), &AIProfileEvent{UserID: "u1"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPCode)
}

func TestWebhookTest_ReportsInsteadOfFailing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	}))
	defer server.Close()

	d := newDispatcherForURL(server.URL)

	ok := d.Test(context.Background(), server.URL)
	assert.True(t, ok.Success)
	assert.Equal(t, "pong", ok.Response)

	bad := d.Test(context.Background(), "http://127.0.0.1:1/unreachable")
	assert.False(t, bad.Success)
	assert.NotEmpty(t, bad.Error)
}

func TestTestAll_CoversAllEndpoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	d := newDispatcherForURL(server.URL)
	results := d.TestAll(context.Background())

	require.Len(t, results, 3)
	for name, result := range results {
		assert.True(t, result.Success, "endpoint %s", name)
	}
}

func TestWebhookConfig(t *testing.T) {
	d := newDispatcherForURL("http://example.com/hook")
	cfg := d.Config()

	assert.Equal(t, "http://example.com/hook", cfg.AnalyzeCompetencies)
	assert.Equal(t, "http://example.com/hook", cfg.AssignJobRole)
	assert.Equal(t, "http://example.com/hook", cfg.GenerateAIProfile)
	assert.Equal(t, 5, cfg.TimeoutSeconds)
}
