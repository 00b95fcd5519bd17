package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Env struct {
	AppAddr  string `env:"APP_ADDR" env-default:":8080"`
	GinMode  string `env:"GIN_MODE"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	DBHost        string `env:"DB_HOST" env-default:"127.0.0.1"`
	DBPort        int    `env:"DB_PORT" env-default:"3306"`
	DBUser        string `env:"DB_USER" env-default:"root"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME" env-default:"agency_lms"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE" env-default:"true"`

	JWTSecret      string        `env:"JWT_SECRET" env-default:"super-secret-key-change-me"`
	TokenTTL       time.Duration `env:"JWT_TTL" env-default:"24h"`
	RememberMeTTL  time.Duration `env:"JWT_REMEMBER_TTL" env-default:"720h"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173"`

	UploadDir   string `env:"UPLOAD_DIR" env-default:"./uploads"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION" env-default:"us-east-1"`
	S3AccessKey string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `env:"S3_SECRET_ACCESS_KEY"`

	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" env-default:"0"`
	CourseCacheTTL time.Duration `env:"COURSE_CACHE_TTL" env-default:"5m"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" env-separator:","`
	KafkaTopic   string   `env:"KAFKA_ENROLLMENT_TOPIC" env-default:"enrollment-events"`

	SendgridAPIKey string `env:"SENDGRID_API_KEY"`
	MailFrom       string `env:"MAIL_FROM" env-default:"noreply@localhost"`
	MailFromName   string `env:"MAIL_FROM_NAME" env-default:"Agency Academy"`
	AgencyInbox    string `env:"AGENCY_INBOX"`
}

// LoadEnv reads ./config/.env when present and falls back to the process environment.
func LoadEnv() (Env, error) {
	var env Env
	if err := cleanenv.ReadConfig("./config/.env", &env); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Env{}, err
		}
		if err := cleanenv.ReadEnv(&env); err != nil {
			return Env{}, err
		}
	}
	return env, nil
}

// DSN builds the go-sql-driver/mysql connection string.
func (e Env) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=Local&charset=utf8mb4&clientFoundRows=true&timeout=5s&readTimeout=30s&writeTimeout=30s",
		e.DBUser,
		e.DBPassword,
		e.DBHost,
		e.DBPort,
		e.DBName,
	)
}
