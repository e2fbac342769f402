package store

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"shop-service/internal/models"
	"shop-service/internal/utils"

	"github.com/xuri/excelize/v2"
)

// Заголовок таблицы пользователей. Порядок колонок фиксирован форматом файла.
var userHeader = []string{"id", "name", "surname", "age", "login", "password", "admin"}

const (
	usersSheet = "Sheet1"

	// Диапазон, из которого выбираются id пользователей
	userIDMin = 1
	userIDMax = 9999

	// Множитель запаса попыток при случайном подборе id
	idAttemptsFactor = 10
)

// UserStoreInterface определяет интерфейс хранилища пользователей
type UserStoreInterface interface {
	List(ctx context.Context) ([]models.User, error)
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, login, password string) (*models.User, error)
	Remove(ctx context.Context, login string) error
}

// UserStore работает с таблицей пользователей в customers.xlsx.
// Как и у товаров, весь цикл чтения-изменения-записи выполняется
// под мьютексом таблицы.
type UserStore struct {
	store *Store
	mu    sync.Mutex

	// границы диапазона id, в тестах сужаются
	idMin int64
	idMax int64
}

// NewUserStore создает новый экземпляр UserStore
func NewUserStore(store *Store) *UserStore {
	return &UserStore{
		store: store,
		idMin: userIDMin,
		idMax: userIDMax,
	}
}

// List возвращает всех пользователей, перечитывая файл заново
func (u *UserStore) List(ctx context.Context) ([]models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.read()
}

// FindByLogin находит первого пользователя с данным логином
func (u *UserStore) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.read()
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Login == login {
			return &users[i], nil
		}
	}

	return nil, ErrNotFound
}

// Register добавляет нового пользователя. Логин должен быть уникален
// среди сохраненных строк; id выбирается случайно из диапазона
// [idMin, idMax] с проверкой коллизий и ограниченным числом попыток.
// Флаг admin при регистрации всегда false.
func (u *UserStore) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.read()
	if err != nil {
		return nil, err
	}

	for _, existing := range users {
		if existing.Login == req.Login {
			return nil, ErrLoginExists
		}
	}

	id, err := u.pickID(users)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       id,
		Name:     req.Name,
		Surname:  req.Surname,
		Age:      req.Age,
		Login:    req.Login,
		Password: req.Password,
		Admin:    false,
	}
	users = append(users, user)

	if err := u.write(users); err != nil {
		return nil, err
	}

	if err := u.store.CreateMarkerFile(id); err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate сверяет пароль пользователя. Ноль строк с логином дает
// ErrNotFound, больше одной - ErrLoginConflict (нарушение целостности
// таблицы сообщается, но не чинится), несовпадение пароля - ErrBadPassword.
func (u *UserStore) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.read()
	if err != nil {
		return nil, err
	}

	var found *models.User
	matches := 0
	for i := range users {
		if users[i].Login == login {
			matches++
			found = &users[i]
		}
	}

	switch {
	case matches == 0:
		return nil, ErrNotFound
	case matches > 1:
		return nil, ErrLoginConflict
	}

	if found.Password != password {
		return nil, ErrBadPassword
	}

	return found, nil
}

// Remove удаляет пользователя по точному совпадению логина
func (u *UserStore) Remove(ctx context.Context, login string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	users, err := u.read()
	if err != nil {
		return err
	}

	kept := make([]models.User, 0, len(users))
	for _, user := range users {
		if user.Login != login {
			kept = append(kept, user)
		}
	}

	if len(kept) == len(users) {
		return ErrNotFound
	}

	return u.write(kept)
}

// pickID подбирает свободный id случайными попытками. Когда свободных
// значений не осталось или запас попыток исчерпан, возвращается
// ErrIDSpaceExhausted вместо бесконечного цикла.
func (u *UserStore) pickID(users []models.User) (int64, error) {
	taken := make(map[int64]bool, len(users))
	for _, user := range users {
		taken[user.ID] = true
	}

	rangeSize := u.idMax - u.idMin + 1
	if int64(len(taken)) >= rangeSize {
		return 0, ErrIDSpaceExhausted
	}

	for attempt := int64(0); attempt < rangeSize*idAttemptsFactor; attempt++ {
		id := utils.RandomInt(u.idMin, u.idMax)
		if !taken[id] {
			return id, nil
		}
	}

	return 0, ErrIDSpaceExhausted
}

// read читает таблицу целиком. Отсутствующий файл трактуется как пустая
// таблица: создается книга с одной строкой заголовка.
func (u *UserStore) read() ([]models.User, error) {
	f, err := excelize.OpenFile(u.store.usersPath)
	if err != nil {
		if os.IsNotExist(err) {
			if err := u.write(nil); err != nil {
				return nil, err
			}
			return []models.User{}, nil
		}
		return nil, fmt.Errorf("failed to open users file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(usersSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read users sheet: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			// строка заголовка
			continue
		}
		user, err := parseUserRow(row, i+1)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// write переписывает книгу целиком, схлопывая строки, совпадающие
// по всем колонкам
func (u *UserStore) write(users []models.User) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(usersSheet, "A1", &userHeader); err != nil {
		return fmt.Errorf("failed to write users header: %w", err)
	}

	seen := make(map[string]bool, len(users))
	rowNum := 2
	for _, user := range users {
		key := strings.Join([]string{
			strconv.FormatInt(user.ID, 10),
			user.Name, user.Surname, user.Age, user.Login, user.Password,
			strconv.FormatBool(user.Admin),
		}, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true

		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		row := []interface{}{user.ID, user.Name, user.Surname, user.Age, user.Login, user.Password, user.Admin}
		if err := f.SetSheetRow(usersSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write user row: %w", err)
		}
		rowNum++
	}

	if err := f.SaveAs(u.store.usersPath); err != nil {
		return fmt.Errorf("failed to save users file: %w", err)
	}

	return nil
}

// parseUserRow разбирает одну строку листа в пользователя
func parseUserRow(row []string, line int) (models.User, error) {
	// excelize опускает пустые ячейки в конце строки
	for len(row) < len(userHeader) {
		row = append(row, "")
	}

	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return models.User{}, fmt.Errorf("users row %d: bad id: %w", line, err)
	}

	admin := false
	if row[6] != "" {
		admin, err = strconv.ParseBool(row[6])
		if err != nil {
			return models.User{}, fmt.Errorf("users row %d: bad admin flag: %w", line, err)
		}
	}

	return models.User{
		ID:       id,
		Name:     row[1],
		Surname:  row[2],
		Age:      row[3],
		Login:    row[4],
		Password: row[5],
		Admin:    admin,
	}, nil
}
