package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// defaultTokenTTL applies when TOKEN_TTL is unset, unparseable or not positive.
const defaultTokenTTL = 360000 * time.Second

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env         string
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	TokenTTL    time.Duration
	ResetDB     bool
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("MYSQL_DSN", "user:password@tcp(localhost:3306)/devconnector?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("TOKEN_TTL", "360000s")
	v.SetDefault("RESET_DB", false)

	return &Config{
		Env:         v.GetString("APP_ENV"),
		ServerPort:  v.GetString("PORT"),
		MySQLDSN:    v.GetString("MYSQL_DSN"),
		RedisAddr:   v.GetString("REDIS_ADDR"),
		RedisDB:     v.GetInt("REDIS_DB"),
		RedisPass:   v.GetString("REDIS_PASSWORD"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		TokenTTL:    secondsOrDuration(v, "TOKEN_TTL", defaultTokenTTL),
		ResetDB:     v.GetBool("RESET_DB"),
		SwaggerHost: v.GetString("SWAGGER_HOST"),
	}
}

// secondsOrDuration reads key as a bare number of seconds ("360000") or a
// duration string ("100h").
func secondsOrDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	d := v.GetDuration(key)
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		d = time.Duration(secs) * time.Second
	}
	if d <= 0 {
		return fallback
	}
	return d
}

// Development reports whether the service runs in a development environment.
func (c *Config) Development() bool {
	return c.Env == "" || c.Env == "development"
}
