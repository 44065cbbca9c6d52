package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"creator-ledger/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env        string           `mapstructure:"env"`
	LogLevel   string           `mapstructure:"log_level"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Policy     PolicyConfig     `mapstructure:"policy"`
}

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Timezone string `mapstructure:"timezone"`
	Worker   bool   `mapstructure:"worker"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
	Migrate  bool   `mapstructure:"migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SettlementConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	ServiceTokenSecret string `mapstructure:"service_token_secret"`
}

type CacheConfig struct {
	ActivityTTL time.Duration `mapstructure:"activity_ttl"`
}

// PolicyConfig holds revenue shares as decimal strings so "0.70" stays exact.
type PolicyConfig struct {
	VideoCreatorShare  string `mapstructure:"video_creator_share"`
	MeetCreatorShare   string `mapstructure:"meet_creator_share"`
	StudioVideoShare   string `mapstructure:"studio_video_share"`
	AdsPointsDivisor   int64  `mapstructure:"ads_points_divisor"`
	SlotCadenceMinutes int    `mapstructure:"slot_cadence_minutes"`
	TaskPoints         int64  `mapstructure:"task_points"`
	SharePoints        int64  `mapstructure:"share_points"`
	PurchasePoints     int64  `mapstructure:"purchase_points"`
}

var (
	instance *Config
	mu       sync.RWMutex
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("server.worker", true)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "creator_ledger")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("settlement.base_url", "http://localhost:8545")
	v.SetDefault("settlement.api_key", "")
	v.SetDefault("settlement.timeout", 15*time.Second)

	v.SetDefault("auth.service_token_secret", "")

	v.SetDefault("cache.activity_ttl", 30*time.Second)

	v.SetDefault("policy.video_creator_share", "0.70")
	v.SetDefault("policy.meet_creator_share", "0.80")
	v.SetDefault("policy.studio_video_share", "0.60")
	v.SetDefault("policy.ads_points_divisor", 10)
	v.SetDefault("policy.slot_cadence_minutes", 10)
	v.SetDefault("policy.task_points", 10)
	v.SetDefault("policy.share_points", 5)
	v.SetDefault("policy.purchase_points", 20)
}

// Load reads .env, an optional config file and the environment, in that order of precedence
// (environment wins). SERVER_PORT overrides server.port and so on.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("Config:Load:NoDotEnv", "error", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logger.Info("Config:Load:NoConfigFile, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()

	return &cfg, nil
}

// Get panics when Load was never called.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config not initialized")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

// Set installs cfg as the process config. Tests use it instead of Load.
func Set(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}
