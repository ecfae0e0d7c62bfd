package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Assistant AssistantConfig `yaml:"assistant"`
	Site      SiteConfig      `yaml:"site"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type KafkaConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	ChatAuditTopicName     string `yaml:"chat_audit_topic_name"`
	TrackingAuditTopicName string `yaml:"tracking_audit_topic_name"`
}

// AssistantConfig описывает chat-completion провайдера.
// Пустые endpoint или api_key — это не ошибка старта: чат просто
// работает в режиме заготовленных ответов.
type AssistantConfig struct {
	Endpoint   string `yaml:"endpoint"`
	APIKey     string `yaml:"api_key"`
	Deployment string `yaml:"deployment"`
}

type SiteConfig struct {
	HTTPAddr string `yaml:"http_addr"`

	CaseCacheTTLSeconds int `yaml:"case_cache_ttl_seconds"`

	// Лимит сообщений чата на сессию в минуту. 0 — лимитер выключен.
	ChatRateLimitPerMinute int `yaml:"chat_rate_limit_per_minute"`
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &config, nil
}
