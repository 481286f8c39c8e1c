package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr       string
	DatabaseURL    string
	AdminToken     string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3UseSSL       bool
	UploadURLTTL   time.Duration
	PlaybackURLTTL time.Duration
	UploadVerify   bool
}

// Load reads config from the environment, with an optional .env file
// underneath. Required values fail fast with a named error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // .env is optional, env vars win either way
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("S3_USE_SSL", true)
	v.SetDefault("UPLOAD_URL_TTL", 15*time.Minute)
	v.SetDefault("PLAYBACK_URL_TTL", time.Hour)
	v.SetDefault("UPLOAD_VERIFY", false)

	cfg := &Config{
		HTTPAddr:       v.GetString("HTTP_ADDR"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		AdminToken:     v.GetString("ADMIN_TOKEN"),
		S3Endpoint:     v.GetString("S3_ENDPOINT"),
		S3AccessKey:    v.GetString("S3_ACCESS_KEY"),
		S3SecretKey:    v.GetString("S3_SECRET_KEY"),
		S3Bucket:       v.GetString("S3_BUCKET"),
		S3UseSSL:       v.GetBool("S3_USE_SSL"),
		UploadURLTTL:   v.GetDuration("UPLOAD_URL_TTL"),
		PlaybackURLTTL: v.GetDuration("PLAYBACK_URL_TTL"),
		UploadVerify:   v.GetBool("UPLOAD_VERIFY"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	required := map[string]string{
		"DATABASE_URL": c.DatabaseURL,
		"ADMIN_TOKEN":  c.AdminToken,
		"S3_ENDPOINT":  c.S3Endpoint,
		"S3_BUCKET":    c.S3Bucket,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("config: %s is not set", name)
		}
	}
	if c.UploadURLTTL <= 0 {
		return fmt.Errorf("config: UPLOAD_URL_TTL must be positive")
	}
	if c.PlaybackURLTTL <= 0 {
		return fmt.Errorf("config: PLAYBACK_URL_TTL must be positive")
	}
	return nil
}
