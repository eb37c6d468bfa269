package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza la configuración cargada del entorno.
type Config struct {
	Port               int
	LeagueAPIBase      string
	RedisURL           string
	SessionCookie      string
	SessionTTL         time.Duration
	AllowOrigins       []string
	RateLimitPublic    RateLimitConfig
	RateLimitAuth      RateLimitConfig
	RateLimitSession   RateLimitConfig
	ResultsPollEnabled bool
	ResultsPollEvery   time.Duration
}

// RateLimitConfig representa límites simples de throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load carga variables de entorno y aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválido")
	}
	cfg.Port = port

	base := strings.TrimSpace(getEnv("LEAGUE_API_BASE", "/api"))
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		host := strings.TrimRight(strings.TrimSpace(getEnv("LEAGUE_API_HOST", "")), "/")
		if host == "" {
			return nil, errors.New("LEAGUE_API_HOST obligatorio cuando LEAGUE_API_BASE es relativo")
		}
		base = host + "/" + strings.TrimLeft(base, "/")
	}
	cfg.LeagueAPIBase = strings.TrimRight(base, "/")

	cfg.RedisURL = getEnv("REDIS_URL", "")
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL obligatorio")
	}

	cfg.SessionCookie = strings.TrimSpace(getEnv("SESSION_COOKIE", "campeonato_session"))
	if cfg.SessionCookie == "" {
		cfg.SessionCookie = "campeonato_session"
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = sessionTTL

	allowOrigins := strings.Split(getEnv("ALLOW_ORIGINS", ""), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	cfg.RateLimitAuth = RateLimitConfig{RequestsPerSecond: 5, Burst: 10}
	cfg.RateLimitSession = RateLimitConfig{RequestsPerSecond: 20, Burst: 40}

	cfg.ResultsPollEnabled = getEnv("RESULTS_POLL", "1") != "0"
	pollEvery, err := parseDurationEnv("RESULTS_POLL_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.ResultsPollEvery = pollEvery

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}
