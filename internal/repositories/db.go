// Package repositories provides the data access layer.
// It owns the database handle and all persistence logic.
package repositories

import (
	"log"
	"os"
	"time"

	"basepay/internal/config"
	"basepay/internal/models"
	"basepay/internal/repositories/cache"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// CacheService fronts Redis for the read path. Nil when Redis is not
// configured; callers must tolerate that.
var CacheService *cache.CacheService

// DBConfig holds database connection pool configuration.
type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

var dbConfig = DBConfig{
	MaxIdleConns:    10,
	MaxOpenConns:    100,
	ConnMaxLifetime: time.Hour,
	ConnMaxIdleTime: time.Minute * 30,
}

// InitDB initializes the Postgres connection and the Redis cache, then
// migrates the schema. DB_HOST and DB_PASSWORD are required; the
// process refuses to start without them.
func InitDB() error {
	initPostgres()

	if config.GetEnv("REDIS_HOST", "") != "" {
		redisCfg := &cache.RedisConfig{
			Host:     config.GetEnv("REDIS_HOST", "localhost"),
			Port:     config.GetEnv("REDIS_PORT", "6379"),
			Password: config.GetEnv("REDIS_PASSWORD", ""),
			DB:       config.GetIntEnv("REDIS_DB", 0),
		}
		redisClient := cache.NewRedisClient(redisCfg)
		CacheService = cache.NewCacheService(redisClient, 24*time.Hour)
	}

	return DB.AutoMigrate(&models.QRCode{})
}

func initPostgres() {
	dsn := "host=" + config.MustGetEnv("DB_HOST") +
		" user=" + config.GetEnv("DB_USER", "postgres") +
		" password=" + config.MustGetEnv("DB_PASSWORD") +
		" dbname=" + config.GetEnv("DB_NAME", "basepay") +
		" port=" + config.GetEnv("DB_PORT", "5432") +
		" sslmode=" + config.GetEnv("DB_SSLMODE", "disable")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Unique-index violations surface as gorm.ErrDuplicatedKey so
		// the service can map a lost duplicate-check race to a 409.
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database instance:", err)
	}

	sqlDB.SetMaxIdleConns(config.GetIntEnv("DB_MAX_IDLE_CONNS", dbConfig.MaxIdleConns))
	sqlDB.SetMaxOpenConns(config.GetIntEnv("DB_MAX_OPEN_CONNS", dbConfig.MaxOpenConns))
	sqlDB.SetConnMaxLifetime(durationEnv("DB_CONN_MAX_LIFETIME", dbConfig.ConnMaxLifetime))
	sqlDB.SetConnMaxIdleTime(durationEnv("DB_CONN_MAX_IDLE_TIME", dbConfig.ConnMaxIdleTime))

	// "record not found" is an expected lookup outcome, not noise for
	// the error log.
	db.Logger = logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	log.Println("PostgreSQL connected & migrations applied")
}

func durationEnv(key string, defaultVal time.Duration) time.Duration {
	if raw := config.GetEnv(key, ""); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return defaultVal
}
