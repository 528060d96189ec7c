package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Uploads  UploadsConfig  `json:"uploads"`
	CORS     CORSConfig     `json:"cors"`
	Security SecurityConfig `json:"security"`
	Chain    ChainConfig    `json:"chain"`
	Janitor  JanitorConfig  `json:"janitor"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// DatabaseConfig holds the MongoDB connection settings
type DatabaseConfig struct {
	URI    string `json:"uri"`
	DBName string `json:"db_name"`
}

// UploadsConfig controls where evidence files land
type UploadsConfig struct {
	Backend  string `json:"backend"` // "local" or "s3"
	Dir      string `json:"dir"`
	S3Bucket string `json:"s3_bucket"`
	S3Region string `json:"s3_region"`
	// MaxFileSize is the multipart upload cap in bytes
	MaxFileSize int64 `json:"max_file_size"`
}

// CORSConfig carries the exact-match allowed frontend origin
type CORSConfig struct {
	FrontendOrigin string `json:"frontend_origin"`
}

// SecurityConfig
type SecurityConfig struct {
	JWTSecret string `json:"jwt_secret"`
}

// ChainConfig identifies the credit token contract
type ChainConfig struct {
	ContractAddress string `json:"contract_address"`
}

// JanitorConfig drives the orphaned-upload sweep
type JanitorConfig struct {
	Schedule     string `json:"schedule"` // cron spec, empty disables
	RetentionHrs int    `json:"retention_hours"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Default config
	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 4000,
		},
		Database: DatabaseConfig{
			URI:    "mongodb://localhost:27017",
			DBName: "mrv_portal",
		},
		Uploads: UploadsConfig{
			Backend:     "local",
			Dir:         "uploads/monitoring",
			MaxFileSize: 15 << 20, // 15 MB
		},
		CORS: CORSConfig{
			FrontendOrigin: "http://localhost:5173",
		},
		Janitor: JanitorConfig{
			RetentionHrs: 72,
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		config.Database.URI = uri
	}
	if name := os.Getenv("MONGO_DBNAME"); name != "" {
		config.Database.DBName = name
	}
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		config.CORS.FrontendOrigin = origin
	}
	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		config.Uploads.Dir = dir
	}
	if backend := os.Getenv("UPLOADS_BACKEND"); backend != "" {
		config.Uploads.Backend = backend
	}
	if bucket := os.Getenv("UPLOADS_S3_BUCKET"); bucket != "" {
		config.Uploads.S3Bucket = bucket
	}
	if region := os.Getenv("UPLOADS_S3_REGION"); region != "" {
		config.Uploads.S3Region = region
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Security.JWTSecret = secret
	}
	if addr := os.Getenv("CREDIT_CONTRACT_ADDRESS"); addr != "" {
		config.Chain.ContractAddress = addr
	}
	if spec := os.Getenv("JANITOR_SCHEDULE"); spec != "" {
		config.Janitor.Schedule = spec
	}
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
