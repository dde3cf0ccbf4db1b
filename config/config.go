package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Booking   BookingConfig   `yaml:"booking"`
	Chat      ChatConfig      `yaml:"chat"`
	HotelsAPI HotelsAPIConfig `yaml:"hotels_api"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

type HTTPConfig struct {
	Address             string `yaml:"address"`
	SwaggerDir          string `yaml:"swagger_dir"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int32  `yaml:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// URL renders the connection as a postgres:// URL, the form golang-migrate expects.
func (d DatabaseConfig) URL() string {
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	ReserveInventory bool `yaml:"reserve_inventory"`
	CatalogCacheTTL  int  `yaml:"catalog_cache_ttl_seconds"`
}

type ChatConfig struct {
	Model             string `yaml:"model"`
	APIKey            string `yaml:"-"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
	HistoryLimit      int    `yaml:"history_limit"`
	ListLimit         int    `yaml:"list_limit"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
}

type HotelsAPIConfig struct {
	BaseURL           string `yaml:"base_url"`
	Host              string `yaml:"host"`
	APIKey            string `yaml:"-"`
	ResultsSize       int    `yaml:"results_size"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	CheckInOffsetDays int    `yaml:"check_in_offset_days"`
	Nights            int    `yaml:"nights"`
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type TracingConfig struct {
	ServiceName  string `yaml:"service_name"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// LoadConfig reads the yaml file at path, then applies environment overrides.
// A .env file next to the process is loaded first when present.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the values used for keys absent from the yaml file.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:             ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "fanzone",
			Name:     "fanzone",
			SSLMode:  "disable",
			MaxConns: 10,
		},
		Kafka: KafkaConfig{
			BookingTopic:       "fanzone.bookings",
			NotificationsTopic: "fanzone.notifications",
			GroupID:            "fanzone-worker",
		},
		Booking: BookingConfig{
			ReserveInventory: true,
			CatalogCacheTTL:  60,
		},
		Chat: ChatConfig{
			Model:             "gemini-2.0-flash",
			SessionTTLMinutes: 60,
			HistoryLimit:      50,
			ListLimit:         5,
			TimeoutSeconds:    20,
		},
		HotelsAPI: HotelsAPIConfig{
			BaseURL:           "https://hotels4.p.rapidapi.com",
			Host:              "hotels4.p.rapidapi.com",
			ResultsSize:       3,
			TimeoutSeconds:    10,
			CheckInOffsetDays: 30,
			Nights:            3,
		},
		Auth: AuthConfig{
			TokenTTLMinutes: 24 * 60,
		},
		Log: LogConfig{Level: "info"},
		Tracing: TracingConfig{
			ServiceName: "fanzone",
		},
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Chat.APIKey = v
	}
	if v := os.Getenv("HOTELS_API_KEY"); v != "" {
		c.HotelsAPI.APIKey = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		c.HTTP.Address = v
	}
	if v := os.Getenv("BOOKING_RESERVE_INVENTORY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid BOOKING_RESERVE_INVENTORY %q: %w", v, err)
		}
		c.Booking.ReserveInventory = b
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret or JWT_SECRET must be set")
	}
	return nil
}
