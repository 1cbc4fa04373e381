package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStorage, anahtar-değer çiftlerini tek bir JSON dosyasında tutar.
type FileStorage struct {
	mu       sync.Mutex
	data     map[string]string
	filePath string
	loaded   bool
}

// NewFileStorage, yeni bir FileStorage örneği oluşturur. Dosya ilk erişimde okunur.
func NewFileStorage(filePath string) *FileStorage {
	return &FileStorage{filePath: filePath}
}

// DefaultFilePath, kullanıcının ev dizini altındaki varsayılan oturum dosyasıdır.
func DefaultFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home dir")
	}
	return filepath.Join(home, ".sanalmarket", "session.json"), nil
}

func (fs *FileStorage) loadData() error {
	if fs.loaded {
		return nil
	}
	fs.data = map[string]string{}

	fileData, err := os.ReadFile(fs.filePath)
	if os.IsNotExist(err) {
		fs.loaded = true
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "read %s", fs.filePath)
	}
	// Boş dosya, boş depo demektir
	if len(fileData) > 0 {
		if err := json.Unmarshal(fileData, &fs.data); err != nil {
			return errors.Wrapf(err, "decode %s", fs.filePath)
		}
	}
	fs.loaded = true
	return nil
}

func (fs *FileStorage) saveData() error {
	data, err := json.MarshalIndent(fs.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fs.filePath), 0o755); err != nil {
		return errors.Wrapf(err, "create dir for %s", fs.filePath)
	}
	return errors.Wrapf(os.WriteFile(fs.filePath, data, 0o644), "write %s", fs.filePath)
}

// Get, anahtarın değerini döndürür.
func (fs *FileStorage) Get(_ context.Context, key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.loadData(); err != nil {
		return "", false, err
	}
	v, ok := fs.data[key]
	return v, ok, nil
}

// Set, değeri kaydeder ve dosyayı yeniden yazar.
func (fs *FileStorage) Set(_ context.Context, key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.loadData(); err != nil {
		return err
	}
	fs.data[key] = value
	return fs.saveData()
}
