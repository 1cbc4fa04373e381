// Command market, mağaza API'si üzerinde sepet, favori ve sipariş işlemlerini
// terminalden yürüten istemcidir.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/api"
	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/config"
	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ayarlar yüklenemedi: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Logger oluşturulamadı: %v", err)
	}
	defer logger.Sync()

	storage, closeStorage, err := newStorage(cfg)
	if err != nil {
		logger.Fatal("Session storage", zap.Error(err))
	}
	defer closeStorage()

	client := api.New(cfg.APIURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithRateLimit(cfg.RateLimit),
		api.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(os.Stdout, client, session.NewIdentity(storage, logger), time.Now, logger)
	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "hata:", err)
		os.Exit(1)
	}
}

// newStorage, ayarlara göre oturum deposunu kurar.
func newStorage(cfg *config.Config) (session.Storage, func(), error) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return session.NewRedisStorage(rdb, cfg.RedisPrefix), func() { _ = rdb.Close() }, nil
	case config.SessionStoreMemory:
		return session.NewMemoryStorage(), func() {}, nil
	default:
		path := cfg.SessionFile
		if path == "" {
			var err error
			if path, err = session.DefaultFilePath(); err != nil {
				return nil, nil, err
			}
		}
		return session.NewFileStorage(path), func() {}, nil
	}
}
