package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration. It is loaded once at the process
// boundary and passed by value; nothing below the boundary reads the
// environment.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	ObjectStoreType string
	LocalStoreDir   string

	AzureConnectionString       string
	AzureResultConnectionString string
	StorageAccountName          string
	SourceContainer             string
	ResultContainer             string

	AWSRegion   string
	S3Bucket    string
	S3Prefix    string
	SSEKMSKeyID string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	DocIntEndpoint   string
	DocIntKey        string
	DocIntAPIVersion string
	DocIntModelID    string
	DocIntTimeout    time.Duration

	FlowSharedSecret string
	ExportMode       string

	DatabaseURL string

	BatchEventsQueueURL string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is not set; batch runs are kept in memory")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost,http://localhost:3000")),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),

		AzureConnectionString:       os.Getenv("AZURE_STORAGE_CONNECTION_STRING"),
		AzureResultConnectionString: os.Getenv("AZURE_STORAGE_RESULT_CONNECTION_STRING"),
		StorageAccountName:          strings.TrimSpace(os.Getenv("AZURE_STORAGE_ACCOUNT_NAME")),
		SourceContainer:             getEnv("AZURE_STORAGE_SOURCE_CONTAINER", "invoicebatch"),
		ResultContainer:             getEnv("AZURE_STORAGE_RESULT_CONTAINER", "invoicebatch-result"),

		AWSRegion:   getEnv("AWS_REGION", ""),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Prefix:    getEnv("S3_PREFIX", ""),
		SSEKMSKeyID: getEnv("SSE_KMS_KEY_ID", ""),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", true),

		DocIntEndpoint:   strings.TrimRight(strings.TrimSpace(os.Getenv("DOCINT_ENDPOINT")), "/"),
		DocIntKey:        strings.TrimSpace(os.Getenv("DOCINT_KEY")),
		DocIntAPIVersion: getEnv("DOCINT_API_VERSION", "2024-11-30"),
		DocIntModelID:    getEnv("DOCINT_MODEL_ID", "prebuilt-invoice"),
		DocIntTimeout:    time.Duration(getEnvInt("DOCINT_TIMEOUT_SECONDS", 60)) * time.Second,

		FlowSharedSecret: os.Getenv("FLOW_SHARED_SECRET"),
		ExportMode:       strings.ToLower(getEnv("EXPORT_MODE", "fixed")),

		DatabaseURL: dbURL,

		BatchEventsQueueURL: strings.TrimSpace(os.Getenv("BATCH_EVENTS_QUEUE_URL")),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid int %q, using %d", key, raw, def)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		log.Printf("config %s invalid float %q, using %v", key, raw, def)
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "azure", "azblob":
		return "azure"
	case "s3":
		return "s3"
	case "minio":
		return "minio"
	default:
		return "local"
	}
}
