package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Oturum depolama türleri
const (
	SessionStoreFile   = "file"
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

// Config, istemci ve geliştirme sunucusunun ortam değişkenlerinden okunan ayarlarıdır.
type Config struct {
	APIURL         string        `envconfig:"MARKET_API_URL" default:"http://localhost:8001/api"`
	RequestTimeout time.Duration `envconfig:"MARKET_REQUEST_TIMEOUT" default:"15s"`
	RateLimit      float64       `envconfig:"MARKET_RATE_LIMIT" default:"0"`
	SessionStore   string        `envconfig:"MARKET_SESSION_STORE" default:"file"`
	SessionFile    string        `envconfig:"MARKET_SESSION_FILE" default:""`
	RedisAddr      string        `envconfig:"MARKET_REDIS_ADDR" default:"localhost:6379"`
	RedisPrefix    string        `envconfig:"MARKET_REDIS_PREFIX" default:"sanalmarket:"`
	LogLevel       string        `envconfig:"MARKET_LOG_LEVEL" default:"info"`
	Port           string        `envconfig:"PORT" default:"8001"`
	DataFile       string        `envconfig:"MARKET_DATA_FILE" default:""`
}

// Load, varsa .env dosyasını yükler ve ortamdan Config üretir.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate, envconfig etiketleriyle ifade edilemeyen değerleri denetler.
func (c *Config) Validate() error {
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.APIURL == "" {
		return errors.New("MARKET_API_URL is empty")
	}
	switch c.SessionStore {
	case SessionStoreFile, SessionStoreRedis, SessionStoreMemory:
	default:
		return errors.Errorf("unknown MARKET_SESSION_STORE %q", c.SessionStore)
	}
	if c.RateLimit < 0 {
		return errors.Errorf("MARKET_RATE_LIMIT must not be negative, got %v", c.RateLimit)
	}
	return nil
}

// NewLogger, LogLevel'e göre zap logger oluşturur. "debug" geliştirme biçimini seçer.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "parse log level %q", level)
	}
	if lvl == zapcore.DebugLevel {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
