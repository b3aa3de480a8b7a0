package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	JWTSecret          string
	StoragePath        string
	StorageBaseURL     string
	GeoIPDBPath        string
	CORSAllowedOrigins []string
	GeminiAPIKey       string
	GeminiBaseURL      string
	GeminiTextModel    string
	GeminiImageModel   string
	VeoFastModel       string
	VeoQualityModel    string
	VideoPollInterval  time.Duration
	VideoPollTimeout   time.Duration
	VideoDelivery      string
	CampaignImageDelay time.Duration
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
}

const (
	// VideoDeliveryRehost downloads finished videos and serves them from local storage.
	VideoDeliveryRehost = "rehost"
	// VideoDeliveryPassthrough hands the signed remote URI to the client unchanged.
	VideoDeliveryPassthrough = "passthrough"

	minVideoPollInterval = 8 * time.Second
	maxVideoPollInterval = 10 * time.Second
)

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	port := getEnv("PORT", "8080")
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               port,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		StoragePath:        getEnv("STORAGE_PATH", "./storage"),
		StorageBaseURL:     getEnv("STORAGE_BASE_URL", fmt.Sprintf("http://localhost:%s/static", port)),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		GeminiAPIKey:       strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiTextModel:    getEnv("GEMINI_TEXT_MODEL", "gemini-3-pro-preview"),
		GeminiImageModel:   getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		VeoFastModel:       getEnv("VEO_FAST_MODEL", "veo-3.1-fast-generate-preview"),
		VeoQualityModel:    getEnv("VEO_QUALITY_MODEL", "veo-3.1-generate-preview"),
		VideoPollInterval:  clampDuration(time.Second*time.Duration(getEnvInt("VIDEO_POLL_INTERVAL_SECONDS", 10)), minVideoPollInterval, maxVideoPollInterval),
		VideoPollTimeout:   time.Second * time.Duration(getEnvInt("VIDEO_POLL_TIMEOUT_SECONDS", 1200)),
		VideoDelivery:      strings.ToLower(getEnv("VIDEO_DELIVERY", VideoDeliveryRehost)),
		CampaignImageDelay: time.Millisecond * time.Duration(getEnvInt("CAMPAIGN_IMAGE_DELAY_MS", 800)),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 30)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 180)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	switch cfg.VideoDelivery {
	case VideoDeliveryRehost, VideoDeliveryPassthrough:
	default:
		return nil, fmt.Errorf("VIDEO_DELIVERY must be %q or %q", VideoDeliveryRehost, VideoDeliveryPassthrough)
	}

	if cfg.VideoPollTimeout < 0 {
		cfg.VideoPollTimeout = 0
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
