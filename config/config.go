package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type DB struct {
	Host string
	Port int
	User string
	Pass string
	Name string
}

type HTTP struct {
	Host string
	Port int
}

type Mail struct {
	Enabled    bool
	Host       string
	Port       int
	Sender     string
	SenderName string
	Password   string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Verify holds the three fixed outcome pages a verification link redirects
// the browser to.
type Verify struct {
	SuccessURL string
	ExpiredURL string
	InvalidURL string
}

type Config struct {
	HTTP HTTP
	DB   DB
	JWT  struct {
		Secret string
		Issuer string
		ExpMin int
	}
	Mail    Mail
	Redis   Redis
	Spotify struct {
		ClientID     string
		ClientSecret string
	}
	OpenAI struct {
		APIKey string
		Model  string
	}
	// Owner optionally seeds the bootstrap owner account at startup. Role
	// changes are owner-gated, so without a seeded owner there is no way to
	// promote anyone.
	Owner struct {
		Username string
		Password string
		Email    string
	}
	// BaseURL is the public origin of this API, used to build verification
	// links that work across environments.
	BaseURL string
	CORS    struct {
		Origins []string
	}
	Verify Verify
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.name", "rps")
	v.SetDefault("jwt.issuer", "rps-backend")
	v.SetDefault("jwt.exp_min", 1440)
	v.SetDefault("mail.enabled", true)
	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.sender", "rpsnotifcation@gmail.com")
	v.SetDefault("mail.sender_name", "RPS Notifications")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("cors.origins", []string{"https://rps9.github.io"})
	v.SetDefault("verify.success_url", "https://rps9.github.io/verified")
	v.SetDefault("verify.expired_url", "https://rps9.github.io/verify-expired")
	v.SetDefault("verify.invalid_url", "https://rps9.github.io/verify-invalid")

	// Secrets come from the environment, never from the yaml file.
	_ = v.BindEnv("jwt.secret", "SECRET_KEY")
	_ = v.BindEnv("db.pass", "DB_PASSWORD")
	_ = v.BindEnv("mail.password", "EMAIL_PASSWORD")
	_ = v.BindEnv("spotify.client_id", "SPOTIFY_CLIENT_ID")
	_ = v.BindEnv("spotify.client_secret", "SPOTIFY_CLIENT_SECRET")
	_ = v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("base_url", "BASE_URL")
	_ = v.BindEnv("owner.password", "OWNER_PASSWORD")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("http.host"), Port: v.GetInt("http.port")},
		DB: DB{
			Host: v.GetString("db.host"),
			Port: v.GetInt("db.port"),
			User: v.GetString("db.user"),
			Pass: v.GetString("db.pass"),
			Name: v.GetString("db.name"),
		},
		Mail: Mail{
			Enabled:    v.GetBool("mail.enabled"),
			Host:       v.GetString("mail.host"),
			Port:       v.GetInt("mail.port"),
			Sender:     v.GetString("mail.sender"),
			SenderName: v.GetString("mail.sender_name"),
			Password:   v.GetString("mail.password"),
		},
		Redis: Redis{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		BaseURL: strings.TrimRight(v.GetString("base_url"), "/"),
	}
	cfg.JWT.Secret = v.GetString("jwt.secret")
	cfg.JWT.Issuer = v.GetString("jwt.issuer")
	cfg.JWT.ExpMin = v.GetInt("jwt.exp_min")
	cfg.Spotify.ClientID = v.GetString("spotify.client_id")
	cfg.Spotify.ClientSecret = v.GetString("spotify.client_secret")
	cfg.OpenAI.APIKey = v.GetString("openai.api_key")
	cfg.OpenAI.Model = v.GetString("openai.model")
	cfg.Owner.Username = v.GetString("owner.username")
	cfg.Owner.Password = v.GetString("owner.password")
	cfg.Owner.Email = v.GetString("owner.email")
	cfg.CORS.Origins = v.GetStringSlice("cors.origins")
	cfg.Verify.SuccessURL = v.GetString("verify.success_url")
	cfg.Verify.ExpiredURL = v.GetString("verify.expired_url")
	cfg.Verify.InvalidURL = v.GetString("verify.invalid_url")

	// Missing secrets are startup-fatal, not per-request surprises.
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("SECRET_KEY is not set")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BASE_URL is not set")
	}
	if cfg.Mail.Enabled && cfg.Mail.Password == "" {
		return nil, fmt.Errorf("EMAIL_PASSWORD is not set")
	}
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 1440
	}
	return cfg, nil
}
