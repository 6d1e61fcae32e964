package configs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// AppConfig dibaca dari file YAML opsional (CONFIG_FILE) lalu di-override ENV.
// Key ENV sama dengan tag koanf versi huruf besar, mis. DB_HOST -> db_host.
type AppConfig struct {
	Port        string `koanf:"port"`
	Timezone    string `koanf:"app_timezone"`
	CorsOrigins string `koanf:"cors_origins"`

	DBHost        string `koanf:"db_host"`
	DBPort        string `koanf:"db_port"`
	DBUser        string `koanf:"db_user"`
	DBPassword    string `koanf:"db_password"`
	DBName        string `koanf:"db_name"`
	DBSSLMode     string `koanf:"db_sslmode"`
	DBAutoMigrate bool   `koanf:"db_auto_migrate"`

	JWTSecret string        `koanf:"jwt_secret"`
	JWTTTL    time.Duration `koanf:"jwt_ttl"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	AssetDriver string `koanf:"asset_driver"`

	OSSEndpoint      string `koanf:"ali_oss_endpoint"`
	OSSAccessKey     string `koanf:"ali_oss_access_key"`
	OSSSecretKey     string `koanf:"ali_oss_secret_key"`
	OSSBucket        string `koanf:"ali_oss_bucket"`
	OSSPublicBase    string `koanf:"ali_oss_public_base"`
	S3Region         string `koanf:"s3_region"`
	S3Endpoint       string `koanf:"s3_endpoint"`
	S3AccessKey      string `koanf:"s3_access_key"`
	S3SecretKey      string `koanf:"s3_secret_key"`
	S3Bucket         string `koanf:"s3_bucket"`
	S3PublicBase     string `koanf:"s3_public_base"`
	S3ForcePathStyle bool   `koanf:"s3_force_path_style"`

	LeaderboardSyncCron string `koanf:"leaderboard_sync_cron"`
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env tidak ditemukan, pakai ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}
}

// Load: .env -> file CONFIG_FILE (opsional) -> ENV. Hasilnya dioper lewat Deps.
func Load() (*AppConfig, error) {
	LoadEnv()
	return build(GetEnv("CONFIG_FILE"))
}

func build(configPath string) (*AppConfig, error) {
	k := koanf.New(".")

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		log.Printf("[WARN] load env config: %v", err)
	}

	cfg := &AppConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()

	if cfg.JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	c.Port = orDefault(c.Port, "3000")
	c.Timezone = orDefault(c.Timezone, "Asia/Bangkok")
	c.DBSSLMode = orDefault(c.DBSSLMode, "require")
	c.AssetDriver = strings.ToLower(orDefault(c.AssetDriver, "none"))
	c.S3Region = orDefault(c.S3Region, "us-east-1")
	c.LeaderboardSyncCron = orDefault(c.LeaderboardSyncCron, "@every 10m")
	if c.JWTTTL <= 0 {
		c.JWTTTL = 24 * time.Hour
	}
}

// Location zona proses untuk parsing & evaluasi deadline.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("[WARN] timezone %q tidak dikenal, fallback UTC+7: %v", c.Timezone, err)
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}

func (c *AppConfig) AllowedOrigins() []string {
	if strings.TrimSpace(c.CorsOrigins) == "" {
		return []string{"http://localhost:5173", "http://localhost:3000"}
	}
	var out []string
	for _, o := range strings.Split(c.CorsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	n := *l
	n.LogLevel = level
	return &n
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
