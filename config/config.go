package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is populated from the environment, with an optional .env file for
// local development. MONGO_URI and an identity-provider issuer (or explicit
// JWKS URL) are deployment requirements; everything else has a default.
type Config struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port uint   `envconfig:"PORT" default:"8080"`

	MongoURI      string `envconfig:"MONGO_URI"`
	MongoDatabase string `envconfig:"MONGO_DB_NAME" default:"dropbydrop"`

	AuthIssuerURL string `envconfig:"AUTH_ISSUER_URL"`
	AuthJWKSURL   string `envconfig:"AUTH_JWKS_URL"`

	CORSOrigins     []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	SummaryCacheTTL time.Duration `envconfig:"SUMMARY_CACHE_TTL" default:"30s"`
	Debug           bool          `envconfig:"DEBUG"`
}

var ErrMissingMongoURI = errors.New("config: MONGO_URI is required")

func Load() (cfg Config, err error) {
	godotenv.Load()

	err = envconfig.Process("", &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: process environment: %w", err)
	}

	if cfg.MongoURI == "" {
		return cfg, ErrMissingMongoURI
	}

	if cfg.AuthJWKSURL == "" && cfg.AuthIssuerURL != "" {
		cfg.AuthJWKSURL = strings.TrimSuffix(cfg.AuthIssuerURL, "/") + "/.well-known/jwks.json"
	}

	return cfg, nil
}

func (cfg Config) Addr() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port)))
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr()
	url = strings.Replace(url, "0.0.0.0", "localhost", 1)
	return "http://" + url
}
