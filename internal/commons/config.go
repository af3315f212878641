package commons

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"chaospizza/internal/config"
)

type fileConfig struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		Name            string `yaml:"name"`
		MaxOpenConns    int    `yaml:"maxOpenConns"`
		MaxIdleConns    int    `yaml:"maxIdleConns"`
		ConnMaxLifetime string `yaml:"connMaxLifetime"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Order struct {
		TxTimeout        string `yaml:"txTimeout"`
		MaxRetryAttempts int    `yaml:"maxRetryAttempts"`
	} `yaml:"order"`
}

func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	connMaxLifetime, err := time.ParseDuration(raw.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("parsing database.connMaxLifetime: %w", err)
	}

	txTimeout, err := time.ParseDuration(raw.Order.TxTimeout)
	if err != nil {
		return nil, fmt.Errorf("parsing order.txTimeout: %w", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port: raw.Server.Port,
		},
		Database: config.DatabaseConfig{
			Host:            raw.Database.Host,
			Port:            raw.Database.Port,
			User:            raw.Database.User,
			Password:        raw.Database.Password,
			Name:            raw.Database.Name,
			MaxOpenConns:    raw.Database.MaxOpenConns,
			MaxIdleConns:    raw.Database.MaxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: config.LogConfig{
			Level: raw.Log.Level,
		},
		Order: config.OrderConfig{
			TxTimeout:        txTimeout,
			MaxRetryAttempts: raw.Order.MaxRetryAttempts,
		},
	}

	return cfg, nil
}
