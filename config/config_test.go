package config

import (
	"errors"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("AUTH_ISSUER_URL", "")
	t.Setenv("AUTH_JWKS_URL", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", cfg.Addr())
	}
	if cfg.Url() != "http://localhost:8080" {
		t.Errorf("Url() = %q, want http://localhost:8080", cfg.Url())
	}
	if cfg.MongoDatabase != "dropbydrop" {
		t.Errorf("MongoDatabase = %q, want dropbydrop", cfg.MongoDatabase)
	}
	if cfg.SummaryCacheTTL != 30*time.Second {
		t.Errorf("SummaryCacheTTL = %v, want 30s", cfg.SummaryCacheTTL)
	}
}

func TestLoadRequiresMongoURI(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MONGO_URI", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingMongoURI) {
		t.Errorf("Load() error = %v, want ErrMissingMongoURI", err)
	}
}

func TestLoadDerivesJWKSURL(t *testing.T) {
	tests := []struct {
		name   string
		issuer string
		jwks   string
		want   string
	}{
		{
			name:   "derived from issuer",
			issuer: "https://auth.example.com",
			want:   "https://auth.example.com/.well-known/jwks.json",
		},
		{
			name:   "trailing slash trimmed",
			issuer: "https://auth.example.com/",
			want:   "https://auth.example.com/.well-known/jwks.json",
		},
		{
			name:   "explicit value wins",
			issuer: "https://auth.example.com",
			jwks:   "https://keys.example.com/jwks",
			want:   "https://keys.example.com/jwks",
		},
		{
			name: "nothing configured",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv("AUTH_ISSUER_URL", tt.issuer)
			t.Setenv("AUTH_JWKS_URL", tt.jwks)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.AuthJWKSURL != tt.want {
				t.Errorf("AuthJWKSURL = %q, want %q", cfg.AuthJWKSURL, tt.want)
			}
		})
	}
}
