package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Default n8n endpoints used when no webhook URLs are configured.
const (
	DefaultAnalyzeCompetenciesURL = "https://guglovskij.app.n8n.cloud/webhook/0d0a654b-772e-447a-9223-8b443f788175"
	DefaultAssignJobRoleURL       = "https://guglovskij.app.n8n.cloud/webhook/113447c6-c39e-410c-ab15-4f5ab7809fd9"
	DefaultGenerateAIProfileURL   = "https://guglovskij.app.n8n.cloud/webhook/bbd2959f-bedc-43fc-a558-69c0fe7b4db"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		// DSN empty means mock mode: the app runs on in-memory repositories.
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Webhooks struct {
		AnalyzeCompetencies string `yaml:"analyze_competencies"`
		AssignJobRole       string `yaml:"assign_job_role"`
		GenerateAIProfile   string `yaml:"generate_ai_profile"`
		TimeoutSeconds      int    `yaml:"timeout_seconds"`
	} `yaml:"webhooks"`

	Storage struct {
		Type      string `yaml:"type"`       // local, s3
		BasePath  string `yaml:"base_path"`  // For local storage
		BaseURL   string `yaml:"base_url"`   // Public URL base
		Bucket    string `yaml:"bucket"`     // For S3
		Endpoint  string `yaml:"endpoint"`   // For S3-compatible stores
		AccessKey string `yaml:"access_key"` // For S3
		SecretKey string `yaml:"secret_key"` // For S3
		UseSSL    bool   `yaml:"use_ssl"`    // For S3
	} `yaml:"storage"`

	Upload struct {
		MaxSize         int64    `yaml:"max_size"`       // Max file size in bytes
		MaxFilesPerCall int      `yaml:"max_files"`      // Max files per request
		AllowedTypes    []string `yaml:"allowed_types"`  // Allowed MIME types
		RetentionDays   int      `yaml:"retention_days"` // Cleanup threshold
	} `yaml:"upload"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`
}

var AppConfig *Config

// LoadConfig populates AppConfig from config.yaml, then applies environment
// overrides. When CONFIG_PATH and the default file are both absent the
// config is built from environment variables and fallbacks alone, which is
// also the mock-mode path (no DATABASE_URL -> in-memory repositories).
func LoadConfig() {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			f.Close()
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}
		f.Close()
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	AppConfig = &cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port, _ = strconv.Atoi(v)
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("WEBHOOK_ANALYZE_COMPETENCIES"); v != "" {
		cfg.Webhooks.AnalyzeCompetencies = v
	}
	if v := os.Getenv("WEBHOOK_ASSIGN_JOB_ROLE"); v != "" {
		cfg.Webhooks.AssignJobRole = v
	}
	if v := os.Getenv("WEBHOOK_GENERATE_AI_PROFILE"); v != "" {
		cfg.Webhooks.GenerateAIProfile = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.Storage.BasePath = v
	}
	if v := os.Getenv("MAX_FILE_SIZE"); v != "" {
		if size, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Upload.MaxSize = size
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "evalyze-dev-secret"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 24 * 60
	}

	if cfg.Webhooks.AnalyzeCompetencies == "" {
		cfg.Webhooks.AnalyzeCompetencies = DefaultAnalyzeCompetenciesURL
	}
	if cfg.Webhooks.AssignJobRole == "" {
		cfg.Webhooks.AssignJobRole = DefaultAssignJobRoleURL
	}
	if cfg.Webhooks.GenerateAIProfile == "" {
		cfg.Webhooks.GenerateAIProfile = DefaultGenerateAIProfileURL
	}
	if cfg.Webhooks.TimeoutSeconds == 0 {
		cfg.Webhooks.TimeoutSeconds = 30
	}

	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/api/files"
	}

	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if cfg.Upload.MaxFilesPerCall == 0 {
		cfg.Upload.MaxFilesPerCall = 10
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"text/plain",
			"image/jpeg",
			"image/png",
			"image/gif",
		}
	}
	if cfg.Upload.RetentionDays == 0 {
		cfg.Upload.RetentionDays = 30
	}
}

// MockMode reports whether the app runs without a real database.
func (c *Config) MockMode() bool {
	return c.Database.DSN == ""
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
