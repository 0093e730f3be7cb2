// Package config loads service configuration from a YAML file with
// environment-variable overrides, so deployments can keep secrets out of the
// file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort     int      `yaml:"HTTP_PORT"`
	DBHost       string   `yaml:"DB_HOST"`
	DBPort       int      `yaml:"DB_PORT"`
	DBUser       string   `yaml:"DB_USER"`
	DBPassword   string   `yaml:"DB_PASSWORD"`
	DBName       string   `yaml:"DB_NAME"`
	DBSSLMode    string   `yaml:"DB_SSLMODE"`
	KafkaBrokers []string `yaml:"KAFKA_BROKERS"`
	Topic        string   `yaml:"TOPIC"`
	// ConsumerGroup enables the audit consumer when set.
	ConsumerGroup string `yaml:"CONSUMER_GROUP"`
	JWTSecret     string `yaml:"JWT_SECRET"`

	LoginUser          string `yaml:"LOGIN_USER"`
	LoginPassword      string `yaml:"LOGIN_PASSWORD"`
	LoginMaxAttempts   int    `yaml:"LOGIN_MAX_ATTEMPTS"`
	LoginWindowSeconds int    `yaml:"LOGIN_WINDOW_SECONDS"`
}

// Load reads the YAML file at path, then lets CRM_-prefixed environment
// variables override individual keys (e.g. CRM_DB_PASSWORD).
func Load(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("CRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	overrideInt(v, "HTTP_PORT", &cfg.HTTPPort)
	overrideString(v, "DB_HOST", &cfg.DBHost)
	overrideInt(v, "DB_PORT", &cfg.DBPort)
	overrideString(v, "DB_USER", &cfg.DBUser)
	overrideString(v, "DB_PASSWORD", &cfg.DBPassword)
	overrideString(v, "DB_NAME", &cfg.DBName)
	overrideString(v, "DB_SSLMODE", &cfg.DBSSLMode)
	overrideString(v, "TOPIC", &cfg.Topic)
	overrideString(v, "CONSUMER_GROUP", &cfg.ConsumerGroup)
	overrideString(v, "JWT_SECRET", &cfg.JWTSecret)
	overrideString(v, "LOGIN_USER", &cfg.LoginUser)
	overrideString(v, "LOGIN_PASSWORD", &cfg.LoginPassword)
	if brokers := v.GetString("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.LoginMaxAttempts == 0 {
		cfg.LoginMaxAttempts = 5
	}
	if cfg.LoginWindowSeconds == 0 {
		cfg.LoginWindowSeconds = 900
	}
	return &cfg, nil
}

func overrideString(v *viper.Viper, key string, dst *string) {
	if val := v.GetString(key); val != "" {
		*dst = val
	}
}

func overrideInt(v *viper.Viper, key string, dst *int) {
	if val := v.GetInt(key); val != 0 {
		*dst = val
	}
}
