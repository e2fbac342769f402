package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"shop-service/internal/config"
)

// Ошибки уровня хранилища. Обработчики переводят их в HTTP статусы.
var (
	ErrNotFound         = errors.New("record not found")
	ErrLoginExists      = errors.New("login already exists")
	ErrLoginConflict    = errors.New("more than one user with this login")
	ErrBadPassword      = errors.New("wrong password")
	ErrIDSpaceExhausted = errors.New("no free user ids left")
)

// Store представляет каталог с файлами данных. Файлы таблиц
// перечитываются при каждом запросе и переписываются целиком
// при каждой мутации.
type Store struct {
	dir          string
	productsPath string
	usersPath    string
}

// NewStore создает каталог данных, если его еще нет
func NewStore(cfg *config.StorageConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	return &Store{
		dir:          cfg.DataDir,
		productsPath: filepath.Join(cfg.DataDir, cfg.ProductsFile),
		usersPath:    filepath.Join(cfg.DataDir, cfg.UsersFile),
	}, nil
}

// CreateMarkerFile создает пустой файл-маркер для нового пользователя.
// Файл ничего не содержит, но его появление в каталоге данных входит
// в наблюдаемое поведение регистрации.
func (s *Store) CreateMarkerFile(id int64) error {
	f, err := os.Create(filepath.Join(s.dir, fmt.Sprintf("%d.txt", id)))
	if err != nil {
		return fmt.Errorf("failed to create marker file: %w", err)
	}
	return f.Close()
}
