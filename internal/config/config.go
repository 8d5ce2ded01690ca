package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	RedisHost       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	SessionTTL      time.Duration
	CORSOrigins     []string
	WeightTolerance int
	SettleDelay     time.Duration
	VerifyDelay     time.Duration
	ScanErrorTTL    time.Duration
	ReceiptTTL      time.Duration
	StrictReceipts  bool
	LookupRateLimit int

	SMTP SMTPConfig
	Shop ShopConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether receipts can be e-mailed.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

// ShopConfig is printed on invoices.
type ShopConfig struct {
	Name    string
	Address string
	Phone   string
}

// Load reads .env (if present) then the environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using the system environment")
	} else {
		log.Println("✅ .env loaded")
	}
	return FromEnv()
}

// FromEnv builds the config from environment variables only.
func FromEnv() Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("⚠️  JWT_SECRET missing, using the development secret")
		secret = "super_secret"
	}
	return Config{
		Port:            envString("PORT", "8080"),
		RedisHost:       envString("REDIS_HOST", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         envInt("REDIS_DB", 0),
		JWTSecret:       secret,
		SessionTTL:      envDuration("SESSION_TTL", 24*time.Hour),
		CORSOrigins:     envList("CORS_ORIGINS", []string{"*"}),
		WeightTolerance: envInt("WEIGHT_TOLERANCE_GRAMS", 50),
		SettleDelay:     envDuration("SETTLE_DELAY", 1500*time.Millisecond),
		VerifyDelay:     envDuration("VERIFY_DELAY", 1500*time.Millisecond),
		ScanErrorTTL:    envDuration("SCAN_ERROR_TTL", 3*time.Second),
		ReceiptTTL:      envDuration("RECEIPT_TTL", 24*time.Hour),
		StrictReceipts:  envBool("STRICT_RECEIPTS", false),
		LookupRateLimit: envInt("LOOKUP_RATE_LIMIT", 60),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("MAIL_FROM"),
		},
		Shop: ShopConfig{
			Name:    envString("SHOP_NAME", "ScanPay Store"),
			Address: os.Getenv("SHOP_ADDRESS"),
			Phone:   os.Getenv("SHOP_PHONE"),
		},
	}
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  %s=%q is not a number, using %d", key, v, def)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("⚠️  %s=%q is not a boolean, using %v", key, v, def)
		return def
	}
	return b
}

// envDuration accepts Go durations ("1.5s") or plain milliseconds ("1500").
func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️  %s=%q is not a duration, using %s", key, v, def)
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
