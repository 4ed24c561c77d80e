package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Providers ProvidersConfig
	Planner   PlannerConfig
	Refresh   RefreshConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	ArrivalsCacheTTL time.Duration
	StopsCacheTTL    time.Duration
}

type LogConfig struct {
	Level string
}

// ProvidersConfig holds credentials and hosts for the external transit APIs.
// An empty key disables the corresponding provider; the lookup pipeline then
// skips it and falls through to the next tier.
type ProvidersConfig struct {
	KakaoRESTKey  string
	KakaoHost     string
	PublicDataKey string
	TagoHost      string
	SeoulBISHost  string
	GyeonggiHost  string
	Timeout       time.Duration
}

// PlannerConfig holds the departure-time arithmetic constants.
type PlannerConfig struct {
	WalkingSpeedMps float64
	MarginSeconds   int
}

type RefreshConfig struct {
	Enabled       bool
	Interval      time.Duration
	ConsumerGroup string
	MaxRetries    int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			ArrivalsCacheTTL: time.Duration(viper.GetInt("ARRIVALS_CACHE_TTL")) * time.Second,
			StopsCacheTTL:    time.Duration(viper.GetInt("STOPS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Providers: ProvidersConfig{
			KakaoRESTKey:  viper.GetString("KAKAO_REST_KEY"),
			KakaoHost:     viper.GetString("KAKAO_HOST"),
			PublicDataKey: viper.GetString("PUBLIC_DATA_API_KEY"),
			TagoHost:      viper.GetString("TAGO_HOST"),
			SeoulBISHost:  viper.GetString("SEOUL_BIS_HOST"),
			GyeonggiHost:  viper.GetString("GYEONGGI_BIS_HOST"),
			Timeout:       time.Duration(viper.GetInt("PROVIDER_TIMEOUT")) * time.Second,
		},
		Planner: PlannerConfig{
			WalkingSpeedMps: viper.GetFloat64("WALKING_SPEED_MPS"),
			MarginSeconds:   viper.GetInt("DEPARTURE_MARGIN_SECONDS"),
		},
		Refresh: RefreshConfig{
			Enabled:       viper.GetBool("REFRESH_ENABLED"),
			Interval:      time.Duration(viper.GetInt("REFRESH_INTERVAL")) * time.Second,
			ConsumerGroup: viper.GetString("ALERT_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("ALERT_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Providers.KakaoHost == "" {
		cfg.Providers.KakaoHost = "https://dapi.kakao.com"
	}
	if cfg.Providers.TagoHost == "" {
		cfg.Providers.TagoHost = "https://apis.data.go.kr/1613000"
	}
	if cfg.Providers.SeoulBISHost == "" {
		cfg.Providers.SeoulBISHost = "http://ws.bus.go.kr/api/rest"
	}
	if cfg.Providers.GyeonggiHost == "" {
		cfg.Providers.GyeonggiHost = "http://apis.data.go.kr/6410000"
	}
	if cfg.Providers.Timeout == 0 {
		cfg.Providers.Timeout = 10 * time.Second
	}
	if cfg.Planner.WalkingSpeedMps == 0 {
		cfg.Planner.WalkingSpeedMps = 1.11 // ~4 km/h
	}
	if cfg.Planner.MarginSeconds == 0 {
		cfg.Planner.MarginSeconds = 60
	}
	if cfg.Refresh.Interval == 0 {
		cfg.Refresh.Interval = 30 * time.Second
	}
	if cfg.Refresh.ConsumerGroup == "" {
		cfg.Refresh.ConsumerGroup = "busalert-dispatchers"
	}
	if cfg.Refresh.MaxRetries == 0 {
		cfg.Refresh.MaxRetries = 3
	}
	if cfg.Cache.ArrivalsCacheTTL == 0 {
		cfg.Cache.ArrivalsCacheTTL = 30 * time.Second
	}
	if cfg.Cache.StopsCacheTTL == 0 {
		cfg.Cache.StopsCacheTTL = 5 * time.Minute
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
