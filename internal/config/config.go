package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

var (
	JwtSecret           string
	Issuer              string
	TokenTTL            time.Duration
	DbHost              string
	DbPort              string
	DbUser              string
	DbPassword          string
	DbName              string
	DbSSLMode           string
	DbStatementTimeout  time.Duration
	LogSQL              bool
	ServerPort          string
	IsProduction        bool
	AllowedOrigins      []string
	MinioEndpoint       string
	MinioAccessKey      string
	MinioSecretKey      string
	MinioUseSSL         bool
	MinioBucket         string
	MaxAttachmentSize   int64
	AuditRetentionDays  int
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// fileValues holds keys read from the optional YAML file. Environment
// variables take precedence over it.
var fileValues map[string]string

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	fileValues = nil
	if path := os.Getenv("SIMTRACK_CONFIG"); path != "" {
		values, err := loadFile(path)
		if err != nil {
			log.Printf("[Config] ignoring %s: %v", path, err)
		} else {
			fileValues = values
		}
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("ISSUER", "simtrack")
	TokenTTL = getDuration("TOKEN_TTL", 24*time.Hour)
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "simtrack")
	DbSSLMode = getEnv("DB_SSLMODE", "disable")
	DbStatementTimeout = getDuration("DB_STATEMENT_TIMEOUT", 30*time.Second)
	LogSQL, _ = strconv.ParseBool(getEnv("LOG_SQL", "false"))
	ServerPort = getEnv("SERVER_PORT", "8080")
	IsProduction = getEnv("APP_ENV", "development") == "production"
	AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"))

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "simtrack-attachments")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	MaxAttachmentSize = int64(getInt("MAX_ATTACHMENT_MB", 25)) << 20

	AuditRetentionDays = getInt("AUDIT_RETENTION_DAYS", 180)
	DefaultHistoryLimit = getInt("DEFAULT_HISTORY_LIMIT", 50)
}

// DSN returns the Postgres connection string for the configured database.
func DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		DbHost,
		DbPort,
		DbUser,
		DbPassword,
		DbName,
		DbSSLMode,
	)
}

func loadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return values, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	if value, ok := fileValues[key]; ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		log.Printf("[Config] invalid %s, using %d", key, fallback)
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		log.Printf("[Config] invalid %s, using %s", key, fallback)
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
