// Package session, kurulum başına bir kez üretilen anonim oturum kimliğini yönetir.
// Sunucu sepeti, favorileri ve siparişleri bu kimlikle kapsamlar.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Key, oturum kimliğinin kalıcı depodaki sabit anahtarıdır.
const Key = "session_id"

const tokenPrefix = "session_"

// ErrStorageUnavailable, oturum kimliği okunamadığında ya da yazılamadığında döner.
var ErrStorageUnavailable = errors.New("session storage unavailable")

// Storage, cihaz üzerindeki kalıcı anahtar-değer deposudur.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Identity, oturum kimliğini çözer ve çözülen değeri süreç boyunca saklar.
type Identity struct {
	storage Storage
	logger  *zap.Logger

	mu sync.Mutex
	id string
}

// NewIdentity, yeni bir Identity örneği oluşturur
func NewIdentity(storage Storage, logger *zap.Logger) *Identity {
	return &Identity{storage: storage, logger: logger}
}

// Ensure, kayıtlı oturum kimliğini döndürür; yoksa yenisini üretip kaydeder.
// Kimlik kaydedilemezse hata döner ve kalıcı olmayan bir kimlik asla verilmez.
func (i *Identity) Ensure(ctx context.Context) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.id != "" {
		return i.id, nil
	}

	id, ok, err := i.storage.Get(ctx, Key)
	if err != nil {
		i.logger.Error("Identity.Ensure - read failed", zap.Error(err))
		return "", errors.Wrapf(ErrStorageUnavailable, "read %s: %v", Key, err)
	}
	if ok && id != "" {
		i.id = id
		return id, nil
	}

	id = NewToken()
	if err := i.storage.Set(ctx, Key, id); err != nil {
		i.logger.Error("Identity.Ensure - write failed", zap.Error(err))
		return "", errors.Wrapf(ErrStorageUnavailable, "write %s: %v", Key, err)
	}
	i.logger.Info("Identity.Ensure - created new session", zap.String("session_id", id))
	i.id = id
	return id, nil
}

// NewToken, URL'de güvenle kullanılabilen rastgele bir oturum kimliği üretir.
func NewToken() string {
	return tokenPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
