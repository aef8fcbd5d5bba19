package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "secret"

// Config holds all configuration values. It is loaded once at startup and
// handed to the components that need it; nothing reads it from global state.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Session tokens.
	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTExpire time.Duration `mapstructure:"JWT_EXPIRE"`

	// OTPless gateway.
	OTPlessClientID     string `mapstructure:"OTPLESS_CLIENT_ID"`
	OTPlessClientSecret string `mapstructure:"OTPLESS_CLIENT_SECRET"`
	OTPlessBaseURL      string `mapstructure:"OTPLESS_BASE_URL"`
	OTPCountryCode      string `mapstructure:"OTP_COUNTRY_CODE"`
	OTPExpirySeconds    int    `mapstructure:"OTP_EXPIRY_SECONDS"`
	OTPLength           int    `mapstructure:"OTP_LENGTH"`

	// Public prefix for absolute image URLs, e.g. https://api.example.com.
	DomainURL string `mapstructure:"DOMAIN_URL"`

	// Image storage.
	UploadDir           string `mapstructure:"UPLOAD_DIR"`
	StorageDriver       string `mapstructure:"STORAGE_DRIVER"`
	CloudinaryURL       string `mapstructure:"CLOUDINARY_URL"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisOTPDB    int    `mapstructure:"REDIS_OTP_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Rate limiting and background jobs.
	MaxRequestsPerWindow int           `mapstructure:"MAX_REQUESTS_PER_WINDOW"`
	RateLimitWindow      time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	OrphanSweepSpec      string        `mapstructure:"ORPHAN_SWEEP_SPEC"`

	// Proxies whose X-Forwarded-For / X-Real-IP are believed; comma-separated
	// IPs or CIDRs. Empty means the peer address is the client.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`
}

// LoadConfig reads an optional .env file, then config.yaml from the working
// directory or ./config, and finally the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Every key needs a default so AutomaticEnv overrides are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "admin-panel")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRE", "720h")
	v.SetDefault("OTPLESS_CLIENT_ID", "")
	v.SetDefault("OTPLESS_CLIENT_SECRET", "")
	v.SetDefault("OTPLESS_BASE_URL", "https://auth.otpless.app")
	v.SetDefault("OTP_COUNTRY_CODE", "91")
	v.SetDefault("OTP_EXPIRY_SECONDS", 120)
	v.SetDefault("OTP_LENGTH", 6)
	v.SetDefault("DOMAIN_URL", "https://yourdomain.com")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("CLOUDINARY_URL", "")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("CLOUDINARY_FOLDER", "wallpapers")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_OTP_DB", 2)
	v.SetDefault("REDIS_QUEUE_DB", 3)
	v.SetDefault("MAX_REQUESTS_PER_WINDOW", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("ORPHAN_SWEEP_SPEC", "@every 1h")
	v.SetDefault("TRUSTED_PROXIES", []string{})
}

// Warnings lists configuration values that are unsafe or incomplete.
func (c Config) Warnings() []string {
	var out []string
	if c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret {
		out = append(out, "JWT_SECRET is not set or using default value. This is not secure for production.")
	}
	if !c.OTPlessEnabled() {
		out = append(out, "OTPLESS_CLIENT_ID or OTPLESS_CLIENT_SECRET is not set. Falling back to the local OTP gateway.")
	}
	if c.StorageDriver == "cloudinary" && c.CloudinaryURL == "" && c.CloudinaryCloudName == "" {
		out = append(out, "STORAGE_DRIVER is cloudinary but no Cloudinary credentials are set.")
	}
	return out
}

// OTPlessEnabled reports whether both OTPless credentials are present.
func (c Config) OTPlessEnabled() bool {
	return c.OTPlessClientID != "" && c.OTPlessClientSecret != ""
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
