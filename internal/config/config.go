package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL settings for the posting audit trail.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for the brief archive.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MatchingConfig is the tolerance and investigation surface of the pipeline.
// Defaults follow the stock policy: 5% price variance, 2% quantity variance,
// five evidence records, vendor mismatch blocks auto-posting.
type MatchingConfig struct {
	PriceTolerancePercent    float64
	QuantityTolerancePercent float64
	MaxEvidenceRecords       int
	VendorMismatchBlocks     bool
}

// LedgerConfig points at the downstream ERP posting endpoint.
type LedgerConfig struct {
	Endpoint   string
	TimeoutSec int
}

// AppConfig is the centralized configuration struct for the service.
// It is populated from environment variables. Sensitive values are not
// hardcoded.
type AppConfig struct {
	AppHost    string
	Port       string
	CatalogDir string
	Matching   MatchingConfig
	Ledger     LedgerConfig
	Database   DatabaseConfig
	MinIO      MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence; no .env file is required.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:    getEnv("APP_HOST", "localhost:8080"),
		Port:       getEnv("PORT", "8080"),
		CatalogDir: getEnv("CATALOG_DIR", "data"),
		Matching: MatchingConfig{
			PriceTolerancePercent:    getEnvFloat("PRICE_TOLERANCE_PERCENT", 5),
			QuantityTolerancePercent: getEnvFloat("QUANTITY_TOLERANCE_PERCENT", 2),
			MaxEvidenceRecords:       getEnvInt("MAX_EVIDENCE_RECORDS", 5),
			VendorMismatchBlocks:     getEnvBool("VENDOR_MISMATCH_BLOCKS", true),
		},
		Ledger: LedgerConfig{
			Endpoint:   getEnv("LEDGER_ENDPOINT", ""),
			TimeoutSec: getEnvInt("LEDGER_TIMEOUT_SEC", 10),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
