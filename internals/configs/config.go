package configs

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// =======================
// CONFIG
// =======================

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
	// statement_timeout (ms) dikirim lewat DSN
	StatementTimeoutMS int
	AutoMigrate        bool
	LogLevel           string
}

type MidtransConfig struct {
	ServerKey string
	UseProd   bool
}

type EmailConfig struct {
	Provider       string // sendgrid | smtp | console
	FromEmail      string
	FromName       string
	SendgridAPIKey string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	RatePerSecond  int
	MaxRetries     int
	RetryDelay     time.Duration
	QueueSize      int
}

type Config struct {
	AppEnv   string
	AppName  string
	Port     string
	TimeZone string

	JWTSecret string

	PaymentWebhookSecret string
	WebhookMaxSkew       time.Duration
	PaymentTxTimeout     time.Duration
	WebhookRateLimit     int

	CorsOrigins []string

	// CIDR proxy/load balancer; kosong = X-Forwarded-For diabaikan
	TrustedProxies []string

	// audience Google ID token untuk /api/auth/verify-token
	GoogleClientIDs []string

	RollbarToken string
	BuildVersion string

	DB       DBConfig
	Midtrans MidtransConfig
	Email    EmailConfig
}

var (
	Conf *Config
	v    = viper.New()
)

func init() {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "DanceFlow")
	v.SetDefault("PORT", "3000")
	v.SetDefault("TZ_NAME", "UTC")

	v.SetDefault("WEBHOOK_MAX_SKEW", 5*time.Minute)
	v.SetDefault("PAYMENT_TX_TIMEOUT", 5*time.Second)
	v.SetDefault("WEBHOOK_RATE_LIMIT", 60)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_STATEMENT_TIMEOUT_MS", 3000)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("DB_LOG_LEVEL", "warn")

	v.SetDefault("MIDTRANS_USE_PROD", false)

	v.SetDefault("EMAIL_PROVIDER", "console")
	v.SetDefault("EMAIL_FROM", "noreply@localhost")
	v.SetDefault("EMAIL_FROM_NAME", "DanceFlow Studio")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("EMAIL_RATE_PER_SECOND", 10)
	v.SetDefault("EMAIL_MAX_RETRIES", 3)
	v.SetDefault("EMAIL_RETRY_DELAY", time.Second)
	v.SetDefault("EMAIL_QUEUE_SIZE", 256)

	v.AutomaticEnv()
}

// =======================
// ENV LOADER
// =======================

// LoadEnv membaca .env (kalau ada) lalu menyusun Config dari environment.
func LoadEnv() *Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[INFO] .env not found, using system environment")
		} else {
			log.Println("[INFO] .env loaded")
		}
	}

	Conf = FromEnv()
	for _, missing := range Conf.Validate() {
		log.Printf("[WARN] %s is not set", missing)
	}
	return Conf
}

// FromEnv builds a Config without touching .env files.
func FromEnv() *Config {
	return &Config{
		AppEnv:   v.GetString("APP_ENV"),
		AppName:  v.GetString("APP_NAME"),
		Port:     v.GetString("PORT"),
		TimeZone: v.GetString("TZ_NAME"),

		JWTSecret: v.GetString("JWT_SECRET"),

		PaymentWebhookSecret: v.GetString("PAYMENT_WEBHOOK_SECRET"),
		WebhookMaxSkew:       v.GetDuration("WEBHOOK_MAX_SKEW"),
		PaymentTxTimeout:     v.GetDuration("PAYMENT_TX_TIMEOUT"),
		WebhookRateLimit:     v.GetInt("WEBHOOK_RATE_LIMIT"),

		CorsOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		TrustedProxies:  splitList(v.GetString("TRUSTED_PROXIES")),
		GoogleClientIDs: splitList(v.GetString("GOOGLE_CLIENT_IDS")),
		RollbarToken:    v.GetString("ROLLBAR_TOKEN"),
		BuildVersion:    v.GetString("BUILD_VERSION"),

		DB: DBConfig{
			User:               v.GetString("DB_USER"),
			Password:           v.GetString("DB_PASSWORD"),
			Host:               v.GetString("DB_HOST"),
			Port:               v.GetString("DB_PORT"),
			Name:               v.GetString("DB_NAME"),
			SSLMode:            v.GetString("DB_SSLMODE"),
			StatementTimeoutMS: v.GetInt("DB_STATEMENT_TIMEOUT_MS"),
			AutoMigrate:        v.GetBool("DB_AUTO_MIGRATE"),
			LogLevel:           v.GetString("DB_LOG_LEVEL"),
		},
		Midtrans: MidtransConfig{
			ServerKey: v.GetString("MIDTRANS_SERVER_KEY"),
			UseProd:   v.GetBool("MIDTRANS_USE_PROD"),
		},
		Email: EmailConfig{
			Provider:       strings.ToLower(v.GetString("EMAIL_PROVIDER")),
			FromEmail:      v.GetString("EMAIL_FROM"),
			FromName:       v.GetString("EMAIL_FROM_NAME"),
			SendgridAPIKey: v.GetString("SENDGRID_API_KEY"),
			SMTPHost:       v.GetString("SMTP_HOST"),
			SMTPPort:       v.GetInt("SMTP_PORT"),
			SMTPUser:       v.GetString("SMTP_USER"),
			SMTPPassword:   v.GetString("SMTP_PASSWORD"),
			RatePerSecond:  v.GetInt("EMAIL_RATE_PER_SECOND"),
			MaxRetries:     v.GetInt("EMAIL_MAX_RETRIES"),
			RetryDelay:     v.GetDuration("EMAIL_RETRY_DELAY"),
			QueueSize:      v.GetInt("EMAIL_QUEUE_SIZE"),
		},
	}
}

// Validate returns the names of required variables that are missing or invalid.
func (c *Config) Validate() []string {
	var missing []string
	if len(c.JWTSecret) < 32 {
		missing = append(missing, "JWT_SECRET (min 32 chars)")
	}
	if c.PaymentWebhookSecret == "" {
		missing = append(missing, "PAYMENT_WEBHOOK_SECRET")
	}
	for name, val := range map[string]string{
		"DB_USER": c.DB.User,
		"DB_NAME": c.DB.Name,
	} {
		if val == "" {
			missing = append(missing, name)
		}
	}
	if c.IsProduction() {
		if c.RollbarToken == "" {
			missing = append(missing, "ROLLBAR_TOKEN (required in production)")
		}
		for _, o := range c.CorsOrigins {
			if o == "*" {
				missing = append(missing, "CORS_ORIGINS (wildcard not allowed in production)")
			}
		}
	}
	switch c.Email.Provider {
	case "sendgrid":
		if c.Email.SendgridAPIKey == "" {
			missing = append(missing, "SENDGRID_API_KEY")
		}
	case "smtp":
		if c.Email.SMTPHost == "" {
			missing = append(missing, "SMTP_HOST")
		}
	case "console":
	default:
		missing = append(missing, "EMAIL_PROVIDER (sendgrid|smtp|console)")
	}
	return missing
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// DSN untuk gorm (pgx). statement_timeout ikut dikirim.
func (d DBConfig) DSN() string {
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	q.Set("application_name", "danceflow")
	if d.StatementTimeoutMS > 0 {
		q.Set("options", fmt.Sprintf("-c statement_timeout=%d", d.StatementTimeoutMS))
	}
	return d.build(q)
}

// URL tanpa options tambahan, dipakai golang-migrate (lib/pq).
func (d DBConfig) URL() string {
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	return d.build(q)
}

func (d DBConfig) build(q url.Values) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
