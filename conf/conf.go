// Package conf loads the application configuration from config files and
// environment variables.
package conf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/estately/estately/internal/authz"
	"github.com/estately/estately/internal/log"
	"github.com/estately/estately/internal/server"
	"github.com/estately/estately/internal/server/biz"
	"github.com/estately/estately/internal/server/db"
	"github.com/estately/estately/internal/storage"
)

type Config struct {
	APIServer server.Config  `conf:"server" yaml:"server" json:"server"`
	DB        db.Config      `conf:"db" yaml:"db" json:"db"`
	Log       log.Config     `conf:"log" yaml:"log" json:"log"`
	Storage   storage.Config `conf:"storage" yaml:"storage" json:"storage"`
	Auth      biz.AuthConfig `conf:"auth" yaml:"auth" json:"auth"`
	Authz     authz.Config   `conf:"authz" yaml:"authz" json:"authz"`
}

// Load reads config.yml plus ESTATELY_* environment variables. A missing
// config file is fine, the defaults cover local development.
func Load() (Config, error) {
	// Optional .env bootstrap for local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/estately")

	v.SetEnvPrefix("ESTATELY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config

	err := v.Unmarshal(&config, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "conf"
	})
	if err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "estately")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 60*time.Second)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.cors.enabled", true)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors.allowed_headers", []string{"Origin", "Content-Type", "Authorization"})
	v.SetDefault("server.cors.allow_credentials", true)
	v.SetDefault("server.cors.max_age", 12*time.Hour)

	v.SetDefault("db.dialect", "sqlite3")
	v.SetDefault("db.dsn", "file:estately.db?cache=shared&_fk=1")
	v.SetDefault("db.debug", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.color", true)

	v.SetDefault("storage.backend", "os")
	v.SetDefault("storage.dir", "data/images")
	v.SetDefault("storage.public_base_url", "/images")

	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("authz.default_role", "buyer")
}
