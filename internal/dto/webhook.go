package dto

type TestWebhookRequest struct {
	WebhookURL string `json:"webhookUrl" validate:"required,url"`
}

// CompetencyAnalysisRequest is the body of the manual analyze-competencies
// trigger. ProfileData travels as the serialized document string the
// automation flow expects.
type CompetencyAnalysisRequest struct {
	UserEmail   string `json:"userEmail" validate:"required,email"`
	UserName    string `json:"userName" validate:"required"`
	ProfileData string `json:"profileData"`
	CompanyName string `json:"companyName"`
}

type JobRoleAssignmentWebhookRequest struct {
	UserEmail          string `json:"userEmail" validate:"required,email"`
	UserName           string `json:"userName" validate:"required"`
	ActivationCode     string `json:"activationCode"`
	JobRoleID          string `json:"jobRoleId" validate:"required"`
	JobRoleTitle       string `json:"jobRoleTitle" validate:"required"`
	JobRoleDescription string `json:"jobRoleDescription"`
	ProfileData        string `json:"profileData"`
	CompanyName        string `json:"companyName"`
}

type AIProfileWebhookRequest struct {
	UserEmail      string `json:"userEmail" validate:"required,email"`
	UserName       string `json:"userName" validate:"required"`
	ProfileData    string `json:"profileData"`
	CompanyName    string `json:"companyName"`
	ActivationCode string `json:"activationCode"`
	TelegramChatID string `json:"telegramChatId"`
	Status         string `json:"status"`
}

type WebhookTestResult struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message"`
}

type WebhookConfigResponse struct {
	AnalyzeCompetencies string `json:"analyzeCompetencies"`
	AssignJobRole       string `json:"assignJobRole"`
	GenerateAIProfile   string `json:"generateAiProfile"`
	TimeoutSeconds      int    `json:"timeoutSeconds"`
}
