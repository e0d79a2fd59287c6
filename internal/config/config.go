// Package config 讀取服務設定：環境變數優先，其次為可選的 config.yml
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string `mapstructure:"APP_ENV"`
	Port           string `mapstructure:"PORT"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int    `mapstructure:"REDIS_DB"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	ApexDomain     string `mapstructure:"APEX_DOMAIN"`
	UploadDir      string `mapstructure:"UPLOAD_DIR"`
	TLSCertFile    string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile     string `mapstructure:"TLS_KEY_FILE"`
	WorkerCount    int    `mapstructure:"WORKER_COUNT"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
}

var keys = []string{
	"APP_ENV", "PORT", "DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"JWT_SECRET", "ALLOWED_ORIGINS", "APEX_DOMAIN", "UPLOAD_DIR",
	"TLS_CERT_FILE", "TLS_KEY_FILE", "WORKER_COUNT", "LOG_LEVEL",
}

// Load 從環境變數與 config.yml 組出設定並驗證
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AutomaticEnv()
	// AutomaticEnv 只對已知 key 生效，Unmarshal 前先綁定
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("WORKER_COUNT", 2)
	v.SetDefault("LOG_LEVEL", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate 檢查必要欄位；production 另外要求 TLS 與 APEX_DOMAIN
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required")
	}
	if c.WorkerCount < 1 {
		return errors.New("WORKER_COUNT must be at least 1")
	}
	if c.IsProduction() {
		if c.TLSCertFile == "" || c.TLSKeyFile == "" {
			return errors.New("TLS_CERT_FILE and TLS_KEY_FILE are required in production")
		}
		if c.ApexDomain == "" {
			return errors.New("APEX_DOMAIN is required in production")
		}
	}
	return nil
}

// Origins 回傳允許的 CORS 來源：apex 與 www、ALLOWED_ORIGINS，非 production 再加 localhost
func (c *Config) Origins() []string {
	seen := map[string]bool{}
	var out []string
	add := func(o string) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			return
		}
		seen[o] = true
		out = append(out, o)
	}
	if c.ApexDomain != "" {
		add("https://" + c.ApexDomain)
		add("https://www." + c.ApexDomain)
	}
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if u, err := url.Parse(strings.TrimSpace(o)); err == nil && u.Scheme != "" && u.Host != "" {
			add(u.Scheme + "://" + u.Host)
		}
	}
	if !c.IsProduction() {
		add("http://localhost:3000")
		add("http://localhost:5173")
		add("http://127.0.0.1:5173")
	}
	return out
}
