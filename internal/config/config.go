package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Redis     RedisConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
	Wellness  WellnessConfig  `mapstructure:"wellness"`
	Log       LogConfig       `mapstructure:"log"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool   `mapstructure:"-"`
	MigrateOnly  bool   `mapstructure:"-"`
	RunJob       string `mapstructure:"-"`
}

// LogConfig 日志目录与轮转参数，审计日志单独保存更久
type LogConfig struct {
	Dir             string `mapstructure:"dir"`
	MaxSizeMB       int    `mapstructure:"max_size_mb"`
	MaxBackups      int    `mapstructure:"max_backups"`
	MaxAgeDays      int    `mapstructure:"max_age_days"`
	AuditMaxAgeDays int    `mapstructure:"audit_max_age_days"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests     int `mapstructure:"max_requests"`
	UserMaxRequests int `mapstructure:"user_max_requests"`
	WindowMinutes   int `mapstructure:"window_minutes"`
}

func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowMinutes) * time.Minute
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ScheduleConfig 周期任务配置，时区决定所有"今天"/"本周"的边界
type ScheduleConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	Timezone           string `mapstructure:"timezone"`
	SundaySnapshotCron string `mapstructure:"sunday_snapshot_cron"`
	MondayResetCron    string `mapstructure:"monday_reset_cron"`
	Concurrency        int    `mapstructure:"concurrency"`
	LockTTLMinutes     int    `mapstructure:"lock_ttl_minutes"`

	location *time.Location
}

// Location 返回解析后的学校时区，未解析时回退到 UTC+8 固定时区
func (s *ScheduleConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	if s.Timezone != "" {
		if loc, err := time.LoadLocation(s.Timezone); err == nil {
			s.location = loc
			return loc
		}
	}
	return time.FixedZone("UTC+8", 8*60*60)
}

type WellnessConfig struct {
	ClockSkewToleranceMinutes int `mapstructure:"clock_skew_tolerance_minutes"`
	DailyQuizCount            int `mapstructure:"daily_quiz_count"`
}

func (w WellnessConfig) ClockSkewTolerance() time.Duration {
	return time.Duration(w.ClockSkewToleranceMinutes) * time.Minute
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.user_max_requests", 120)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("schedule.enabled", true)
	v.SetDefault("schedule.timezone", "Asia/Manila")
	v.SetDefault("schedule.sunday_snapshot_cron", "30 23 * * 0")
	v.SetDefault("schedule.monday_reset_cron", "5 0 * * 1")
	v.SetDefault("schedule.concurrency", 8)
	v.SetDefault("schedule.lock_ttl_minutes", 30)
	v.SetDefault("wellness.clock_skew_tolerance_minutes", 10)
	v.SetDefault("wellness.daily_quiz_count", 3)
	v.SetDefault("log.dir", "logs")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.audit_max_age_days", 365)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("MINDCARE")
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")

	// Schedule
	v.BindEnv("schedule.enabled", "SCHEDULE_ENABLED")
	v.BindEnv("schedule.timezone", "SCHOOL_TIMEZONE")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验运行所必需的配置项
func (c *Config) Validate() error {
	// 生产环境校验 JWT Secret 强度
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}

	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return fmt.Errorf("invalid schedule.timezone %q: %w", c.Schedule.Timezone, err)
	}
	c.Schedule.location = loc

	if c.Schedule.Concurrency <= 0 {
		c.Schedule.Concurrency = 1
	}
	if c.Wellness.DailyQuizCount <= 0 {
		c.Wellness.DailyQuizCount = 3
	}
	return nil
}
