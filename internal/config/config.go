package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Guru   GuruConfig
	Log    LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	guru, err := loadGuruConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Guru: guru, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// GuruConfig 描述推荐助手的行为配置。
type GuruConfig struct {
	ReplyDelay    time.Duration
	StaggerDelay  time.Duration
	SessionTTL    time.Duration
	MatchMode     string
	CatalogPath   string
	SynopsisLimit int
}

func loadGuruConfig() (GuruConfig, error) {
	replyDelay, err := parseDurationEnv("GURU_REPLY_DELAY", time.Second)
	if err != nil {
		return GuruConfig{}, err
	}

	staggerDelay, err := parseDurationEnv("GURU_STAGGER_DELAY", 500*time.Millisecond)
	if err != nil {
		return GuruConfig{}, err
	}

	sessionTTL, err := parseDurationEnv("GURU_SESSION_TTL", 30*time.Minute)
	if err != nil {
		return GuruConfig{}, err
	}

	synopsisLimit := 100
	if override, err := parseOptionalIntEnv("GURU_SYNOPSIS_LIMIT"); err != nil {
		return GuruConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return GuruConfig{}, fmt.Errorf("invalid GURU_SYNOPSIS_LIMIT value %d: must be positive", *override)
		}
		synopsisLimit = *override
	}

	mode := strings.ToLower(getEnvOrDefault("GURU_MATCH_MODE", "unified"))
	if mode != "unified" && mode != "mood" {
		return GuruConfig{}, fmt.Errorf("invalid GURU_MATCH_MODE value %q: want unified or mood", mode)
	}

	return GuruConfig{
		ReplyDelay:    replyDelay,
		StaggerDelay:  staggerDelay,
		SessionTTL:    sessionTTL,
		MatchMode:     mode,
		CatalogPath:   strings.TrimSpace(os.Getenv("GURU_CATALOG_PATH")),
		SynopsisLimit: synopsisLimit,
	}, nil
}

// LogConfig 描述日志输出配置。
type LogConfig struct {
	Level  string
	Format string
}

func loadLogConfig() (LogConfig, error) {
	format := strings.ToLower(getEnvOrDefault("LOG_FORMAT", "console"))
	if format != "console" && format != "json" {
		return LogConfig{}, fmt.Errorf("invalid LOG_FORMAT value %q: want console or json", format)
	}

	return LogConfig{
		Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Format: format,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("invalid %s value %q: must not be negative", key, raw)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
