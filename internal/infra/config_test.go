package infra

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_BASE_URL", "")
	t.Setenv("VIDEO_POLL_INTERVAL_SECONDS", "")
	t.Setenv("VIDEO_DELIVERY", "")
	t.Setenv("CAMPAIGN_IMAGE_DELAY_MS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.StorageBaseURL != "http://localhost:8080/static" {
		t.Fatalf("StorageBaseURL mismatch: got %q", cfg.StorageBaseURL)
	}
	if cfg.VideoPollInterval != 10*time.Second {
		t.Fatalf("VideoPollInterval = %s, want 10s", cfg.VideoPollInterval)
	}
	if cfg.VideoDelivery != VideoDeliveryRehost {
		t.Fatalf("VideoDelivery = %q, want %q", cfg.VideoDelivery, VideoDeliveryRehost)
	}
	if cfg.CampaignImageDelay != 800*time.Millisecond {
		t.Fatalf("CampaignImageDelay = %s, want 800ms", cfg.CampaignImageDelay)
	}
}

func TestLoadConfigInheritsPortInStorageBaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "1919")
	t.Setenv("STORAGE_BASE_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.StorageBaseURL != "http://localhost:1919/static" {
		t.Fatalf("StorageBaseURL mismatch: got %q", cfg.StorageBaseURL)
	}
}

func TestLoadConfigClampsPollInterval(t *testing.T) {
	cases := map[string]time.Duration{
		"1":  8 * time.Second,
		"9":  9 * time.Second,
		"60": 10 * time.Second,
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			setRequired(t)
			t.Setenv("VIDEO_POLL_INTERVAL_SECONDS", raw)
			cfg, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig returned error: %v", err)
			}
			if cfg.VideoPollInterval != want {
				t.Fatalf("VideoPollInterval = %s, want %s", cfg.VideoPollInterval, want)
			}
		})
	}
}

func TestLoadConfigRejectsUnknownDelivery(t *testing.T) {
	setRequired(t)
	t.Setenv("VIDEO_DELIVERY", "both")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unsupported VIDEO_DELIVERY")
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoadConfigSplitsCORSOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.markova.io, http://localhost:5173 ,")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	want := []string{"https://app.markova.io", "http://localhost:5173"}
	if len(cfg.CORSAllowedOrigins) != len(want) {
		t.Fatalf("CORSAllowedOrigins = %#v, want %#v", cfg.CORSAllowedOrigins, want)
	}
	for i := range want {
		if cfg.CORSAllowedOrigins[i] != want[i] {
			t.Fatalf("CORSAllowedOrigins[%d] = %q, want %q", i, cfg.CORSAllowedOrigins[i], want[i])
		}
	}
}
