package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Session  SessionConfig
	Guard    GuardConfig
	Storage  StorageConfig
	Mail     MailConfig
	SMTP     SMTPConfig
	Mailtrap MailtrapConfig
	AI       AIConfig
	Shop     ShopConfig
}

type AppConfig struct {
	Env     string
	Addr    string
	BaseURL string
}

func (a AppConfig) IsProduction() bool { return a.Env == "production" }

type DBConfig struct {
	Driver string // mysql|postgres|sqlite
	DSN    string
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// GuardConfig bounds the role lookup done by the admin guard.
type GuardConfig struct {
	RoleLookupTimeout time.Duration
}

type StorageConfig struct {
	Driver         string // local|s3
	LocalDir       string
	LocalURLPrefix string
	S3Region       string
	S3Bucket       string
	S3Prefix       string
	S3PublicBase   string
}

type MailConfig struct {
	Driver   string // smtp|mailtrap|log
	From     string
	FromName string
}

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	TLSMode       string // none|starttls|tls
	SkipVerifyTLS bool
}

type MailtrapConfig struct {
	APIURL   string
	APIToken string
}

type AIConfig struct {
	GeminiAPIKey string
	GeminiModel  string
}

type ShopConfig struct {
	Currency             string
	FlatShippingCents    int
	FreeShippingOver     int
	WholesaleDiscountPct int
}

// Load reads configuration from the environment. A missing .env file is not
// an error; production uses real env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var errs []string
	fail := func(format string, args ...any) { errs = append(errs, fmt.Sprintf(format, args...)) }

	cfg := &Config{
		App: AppConfig{
			Env:     getEnv("APP_ENV", "development"),
			Addr:    getEnv("APP_ADDR", ":8080"),
			BaseURL: strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:8080"), "/"),
		},
		DB: DBConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", "mysql")),
			DSN:    os.Getenv("DB_DSN"),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE", "ss_session"),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			LocalDir:       getEnv("LOCAL_UPLOAD_DIR", "./storage/uploads"),
			LocalURLPrefix: getEnv("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
			S3Region:       os.Getenv("S3_REGION"),
			S3Bucket:       os.Getenv("S3_BUCKET"),
			S3Prefix:       getEnv("S3_PREFIX", "uploads"),
			S3PublicBase:   os.Getenv("S3_PUBLIC_BASE_URL"),
		},
		Mail: MailConfig{
			Driver:   strings.ToLower(getEnv("MAIL_DRIVER", "log")),
			From:     getEnv("EMAIL_FROM", "no-reply@saltandscoville.test"),
			FromName: getEnv("EMAIL_FROM_NAME", "Salt & Scoville"),
		},
		SMTP: SMTPConfig{
			Host:    getEnv("SMTP_HOST", "localhost"),
			Port:    getEnv("SMTP_PORT", "1025"),
			User:    os.Getenv("SMTP_USER"),
			Pass:    os.Getenv("SMTP_PASS"),
			TLSMode: strings.ToLower(getEnv("SMTP_TLS_MODE", "none")),
		},
		Mailtrap: MailtrapConfig{
			APIURL:   os.Getenv("MAILTRAP_API_URL"),
			APIToken: os.Getenv("MAILTRAP_API_TOKEN"),
		},
		AI: AIConfig{
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Shop: ShopConfig{
			Currency: strings.ToUpper(getEnv("SHOP_CURRENCY", "USD")),
		},
	}

	var err error
	if cfg.Session.TTL, err = getDuration("SESSION_TTL", 14*24*time.Hour); err != nil {
		fail("%v", err)
	}
	if cfg.Session.Secure, err = getBool("SESSION_SECURE", cfg.App.IsProduction()); err != nil {
		fail("%v", err)
	}
	if cfg.Guard.RoleLookupTimeout, err = getDuration("GUARD_ROLE_TIMEOUT", 3*time.Second); err != nil {
		fail("%v", err)
	}
	if cfg.SMTP.SkipVerifyTLS, err = getBool("SMTP_SKIP_VERIFY_TLS", false); err != nil {
		fail("%v", err)
	}
	if cfg.Shop.FlatShippingCents, err = getInt("SHOP_FLAT_SHIPPING_CENTS", 799); err != nil {
		fail("%v", err)
	}
	if cfg.Shop.FreeShippingOver, err = getInt("SHOP_FREE_SHIPPING_OVER_CENTS", 5000); err != nil {
		fail("%v", err)
	}
	if cfg.Shop.WholesaleDiscountPct, err = getInt("SHOP_WHOLESALE_DISCOUNT_PCT", 20); err != nil {
		fail("%v", err)
	}

	if cfg.DB.DSN == "" {
		fail("DB_DSN is required")
	}
	switch cfg.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		fail("unknown DB_DRIVER: %s", cfg.DB.Driver)
	}
	switch cfg.Storage.Driver {
	case "local":
	case "s3":
		if cfg.Storage.S3Region == "" || cfg.Storage.S3Bucket == "" || cfg.Storage.S3PublicBase == "" {
			fail("S3 config missing: S3_REGION, S3_BUCKET, S3_PUBLIC_BASE_URL required")
		}
	default:
		fail("unknown STORAGE_DRIVER: %s", cfg.Storage.Driver)
	}
	switch cfg.Mail.Driver {
	case "smtp", "log":
	case "mailtrap":
		if cfg.Mailtrap.APIURL == "" || cfg.Mailtrap.APIToken == "" {
			fail("mailtrap config missing: MAILTRAP_API_URL, MAILTRAP_API_TOKEN required")
		}
	default:
		fail("unknown MAIL_DRIVER: %s", cfg.Mail.Driver)
	}
	switch cfg.SMTP.TLSMode {
	case "none", "starttls", "tls":
	default:
		fail("unknown SMTP_TLS_MODE: %s", cfg.SMTP.TLSMode)
	}
	if cfg.Shop.WholesaleDiscountPct < 0 || cfg.Shop.WholesaleDiscountPct > 90 {
		fail("SHOP_WHOLESALE_DISCOUNT_PCT must be between 0 and 90")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d <= 0 {
		return fallback, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}
