package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tripcart/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	State    StateConfig    `mapstructure:"state"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		Level:      c.Level,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CatalogConfig 商品目录配置
type CatalogConfig struct {
	Source                 string `mapstructure:"source"` // file / http
	Path                   string `mapstructure:"path"`
	URL                    string `mapstructure:"url"`
	TimeoutSeconds         int    `mapstructure:"timeout_seconds"`
	Currency               string `mapstructure:"currency"`
	CacheTTLMinutes        int    `mapstructure:"cache_ttl_minutes"`
	RefreshIntervalMinutes int    `mapstructure:"refresh_interval_minutes"` // 0 表示不定时刷新
	ReloadIntervalSeconds  int    `mapstructure:"reload_interval_seconds"`  // api 模式从缓存同步 worker 刷新结果
}

// Timeout 拉取超时
func (c CatalogConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL Redis 热缓存过期时间（0 表示不过期）
func (c CatalogConfig) CacheTTL() time.Duration {
	if c.CacheTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// RefreshInterval 定时刷新间隔
func (c CatalogConfig) RefreshInterval() time.Duration {
	if c.RefreshIntervalMinutes <= 0 {
		return 0
	}
	return time.Duration(c.RefreshIntervalMinutes) * time.Minute
}

// ReloadInterval api 模式下同步目录的间隔，默认 30 秒
func (c CatalogConfig) ReloadInterval() time.Duration {
	if c.ReloadIntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.ReloadIntervalSeconds) * time.Second
}

// StateConfig 状态写入配置
type StateConfig struct {
	SaveMaxRetries        int `mapstructure:"save_max_retries"`
	SaveInitialIntervalMS int `mapstructure:"save_initial_interval_ms"`
	SaveMaxElapsedMS      int `mapstructure:"save_max_elapsed_ms"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	RefreshRateLimit RateLimitConfig `mapstructure:"refresh_rate_limit"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	// .env 可选，不存在时忽略
	if err := godotenv.Load(); err == nil {
		logger.Infow("dotenv_loaded", "file", ".env")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")     // 从当前目录查找
	v.AddConfigPath("../")   // 如果从 cmd/server 运行
	v.AddConfigPath("./etc") // etc 文件夹

	setDefaults(v)

	// 环境变量支持（例如 server.port -> SERVER_PORT）
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	cfg, err := decode(v)
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return cfg
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.Catalog.Source = strings.ToLower(strings.TrimSpace(c.Catalog.Source))
	switch c.Catalog.Source {
	case "", "file":
		c.Catalog.Source = "file"
	case "http":
		if strings.TrimSpace(c.Catalog.URL) == "" {
			return fmt.Errorf("catalog.url is required when catalog.source is http")
		}
	default:
		return fmt.Errorf("unsupported catalog source: %s", c.Catalog.Source)
	}

	code := strings.ToUpper(strings.TrimSpace(c.Catalog.Currency))
	if code == "" {
		code = "USD"
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Errorf("catalog.currency[%s] is not valid: %w", code, err)
	}
	c.Catalog.Currency = unit.String()
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "app.log")
	v.SetDefault("log.level", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/tripcart.db")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "tc")
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 2)
	v.SetDefault("queue.queues", map[string]int{
		"default": 1,
	})
	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "./products.json")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.timeout_seconds", 10)
	v.SetDefault("catalog.currency", "USD")
	v.SetDefault("catalog.cache_ttl_minutes", 0)
	v.SetDefault("catalog.refresh_interval_minutes", 0)
	v.SetDefault("catalog.reload_interval_seconds", 30)
	v.SetDefault("state.save_max_retries", 3)
	v.SetDefault("state.save_initial_interval_ms", 50)
	v.SetDefault("state.save_max_elapsed_ms", 2000)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Accept-Language",
		"Cache-Control",
		"X-Requested-With",
		"X-Request-ID",
		"X-Shopper-ID",
	})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.refresh_rate_limit.window_seconds", 60)
	v.SetDefault("security.refresh_rate_limit.max_requests", 5)
}
