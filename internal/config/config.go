// Package config
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var ErrConfig = errors.New("configuration error")

const (
	BackendSheets   = "sheets"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	HeaderPolicyReset = "reset"
	HeaderPolicyFail  = "fail"

	DefaultChannelID = "UCp1X8MWFdDSRAn6bvo6qiCg"
)

type Config struct {
	APIKey       string        `env:"YT_API_KEY" validate:"required"`
	ChannelID    string        `env:"CHANNEL_ID" validate:"required"`
	APIBaseURL   string        `env:"YT_API_BASE_URL" validate:"required,url"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" validate:"gt=0"`

	TableID         string `env:"SHEET_ID" validate:"required"`
	Backend         string `env:"TABLE_BACKEND" validate:"oneof=sheets sqlite postgres"`
	TableDSN        string `env:"TABLE_DSN" validate:"required_unless=Backend sheets"`
	CredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE"`
	HeaderPolicy    string `env:"HEADER_POLICY" validate:"oneof=reset fail"`

	Address        string   `env:"HTTP_ADDR" validate:"required"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
}

func Load() *Config {
	godotenv.Load()

	fetchTimeout := 30 * time.Second
	if raw := os.Getenv("FETCH_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			fetchTimeout = parsed
		}
	}

	var origins []string
	for o := range strings.SplitSeq(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		APIKey:       os.Getenv("YT_API_KEY"),
		ChannelID:    getenv("CHANNEL_ID", DefaultChannelID),
		APIBaseURL:   getenv("YT_API_BASE_URL", "https://www.googleapis.com/youtube/v3"),
		FetchTimeout: fetchTimeout,

		TableID:         os.Getenv("SHEET_ID"),
		Backend:         strings.ToLower(getenv("TABLE_BACKEND", BackendSheets)),
		TableDSN:        os.Getenv("TABLE_DSN"),
		CredentialsFile: getenv("GOOGLE_CREDENTIALS_FILE", "service_account.json"),
		HeaderPolicy:    strings.ToLower(getenv("HEADER_POLICY", HeaderPolicyReset)),

		Address:        getenv("HTTP_ADDR", ":8501"),
		AllowedOrigins: origins,

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),
	}
}

// ValidateCollector checks everything the collector needs. The HTTP address
// is not used by the collector.
func (c *Config) ValidateCollector() error {
	return c.validate("Address")
}

// ValidateViewer checks everything the viewer needs. The viewer never calls
// the counters API, so the API key may be absent.
func (c *Config) ValidateViewer() error {
	return c.validate("APIKey")
}

func (c *Config) validate(except ...string) error {
	v := validator.New()

	err := v.StructExcept(c, except...)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, messageFor(e))
	}

	return fmt.Errorf("%w: %s", ErrConfig, strings.Join(msgs, "; "))
}

func messageFor(e validator.FieldError) string {
	name := envName(e.StructField())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("missing env: %s (add it to .env)", name)
	case "required_unless":
		return fmt.Sprintf("missing env: %s (required unless %s)", name, strings.Replace(e.Param(), "Backend ", "TABLE_BACKEND=", 1))
	case "oneof":
		return fmt.Sprintf("invalid env: %s must be one of [%s]", name, e.Param())
	case "url":
		return fmt.Sprintf("invalid env: %s must be a URL", name)
	}

	return fmt.Sprintf("invalid env: %s", name)
}

func envName(field string) string {
	if f, ok := reflect.TypeOf(Config{}).FieldByName(field); ok {
		if tag := f.Tag.Get("env"); tag != "" {
			return tag
		}
	}
	return strings.ToUpper(field)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
