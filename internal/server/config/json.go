package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sooldama/sooldama/internal/flagx"
	"github.com/sooldama/sooldama/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Only fields present
// in the file override the current values.
type JSONConfig struct {
	HTTPAddr            *string         `json:"http_addr"`
	GRPCHealthAddr      *string         `json:"grpc_health_addr"`
	DatabaseDSN         *string         `json:"database_dsn"`
	LogLevel            *string         `json:"log_level"`
	AuthSessionKey      *string         `json:"auth_session_key"`
	SessionCookieName   *string         `json:"session_cookie_name"`
	SessionSecret       *string         `json:"session_secret"`
	SessionTTL          *timex.Duration `json:"session_ttl"`
	BcryptCost          *int            `json:"bcrypt_cost"`
	HealthCheckInterval *timex.Duration `json:"health_check_interval"`
	S3RootUser          *string         `json:"s3_root_user"`
	S3RootPassword      *string         `json:"s3_root_password"`
	S3Bucket            *string         `json:"s3_bucket"`
	S3Region            *string         `json:"s3_region"`
	S3BaseEndpoint      *string         `json:"s3_base_endpoint"`
	ImageURLTTL         *timex.Duration `json:"image_url_ttl"`
}

// parseJSON loads the file named by -c/-config, if any, over config.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCHealthAddr, c.GRPCHealthAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.AuthSessionKey, c.AuthSessionKey)
	setString(&config.SessionCookieName, c.SessionCookieName)
	setString(&config.SessionSecret, c.SessionSecret)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.SessionTTL != nil {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.HealthCheckInterval != nil {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
	if c.ImageURLTTL != nil {
		config.ImageURLTTL = c.ImageURLTTL.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}

	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
