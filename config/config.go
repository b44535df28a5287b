package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tulsagolf/teetimes/internal/domain"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	ForeUp   ForeUpConfig   `yaml:"foreup"`
	Cache    CacheConfig    `yaml:"cache"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Worker   WorkerConfig   `yaml:"worker"`

	// Courses listed here are registered on top of the built-in Tulsa set.
	Courses []domain.Course `yaml:"courses"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type ForeUpConfig struct {
	BookingHost    string `yaml:"booking_host"`
	UserAgent      string `yaml:"user_agent"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (f ForeUpConfig) Timeout() time.Duration {
	if f.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(f.TimeoutSeconds) * time.Second
}

type CacheConfig struct {
	ScheduleTTLHours int `yaml:"schedule_ttl_hours"`
	TimesTTLMinutes  int `yaml:"times_ttl_minutes"`
}

func (c CacheConfig) ScheduleTTL() time.Duration {
	if c.ScheduleTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.ScheduleTTLHours) * time.Hour
}

func (c CacheConfig) TimesTTL() time.Duration {
	if c.TimesTTLMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TimesTTLMinutes) * time.Minute
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	// Addr empty means the in-process cache is used instead.
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type WorkerConfig struct {
	SweepMinutes int `yaml:"sweep_minutes"`
}

func (w WorkerConfig) SweepInterval() time.Duration {
	if w.SweepMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(w.SweepMinutes) * time.Minute
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
