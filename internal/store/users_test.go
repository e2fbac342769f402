package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shop-service/internal/models"
	"shop-service/internal/utils"
)

func testRegisterRequest(login string) *models.RegisterRequest {
	return &models.RegisterRequest{
		Login:    login,
		Password: "abcdefgh",
		Name:     "Jan",
		Surname:  "Kowalski",
		Age:      "30",
	}
}

func TestUserStore_ListCreatesMissingFile(t *testing.T) {
	s := setupStoreTest(t)
	u := NewUserStore(s)

	users, err := u.List(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, users)

	// Книга с заголовком появилась на диске
	f, err := excelize.OpenFile(s.usersPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(usersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, userHeader, rows[0])
}

func TestUserStore_Register(t *testing.T) {
	s := setupStoreTest(t)
	u := NewUserStore(s)
	ctx := context.Background()

	user, err := u.Register(ctx, testRegisterRequest("frog1"))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, user.ID, int64(userIDMin))
	assert.LessOrEqual(t, user.ID, int64(userIDMax))
	assert.False(t, user.Admin)

	// Файл-маркер с именем id создан в каталоге данных
	marker := filepath.Join(s.dir, fmt.Sprintf("%d.txt", user.ID))
	info, err := os.Stat(marker)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	// Строка сохранена и перечитывается
	stored, err := u.FindByLogin(ctx, "frog1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
	assert.Equal(t, "Jan", stored.Name)
	assert.Equal(t, "abcdefgh", stored.Password)
}

func TestUserStore_RegisterDuplicateLogin(t *testing.T) {
	s := setupStoreTest(t)
	u := NewUserStore(s)
	ctx := context.Background()

	_, err := u.Register(ctx, testRegisterRequest("frog1"))
	require.NoError(t, err)

	_, err = u.Register(ctx, testRegisterRequest("frog1"))
	assert.ErrorIs(t, err, ErrLoginExists)
}

func TestUserStore_RegisterIDExhaustion(t *testing.T) {
	s := setupStoreTest(t)
	u := NewUserStore(s)
	u.idMin, u.idMax = 1, 3
	ctx := context.Background()

	ids := make(map[int64]bool)
	for i := 0; i < 3; i++ {
		user, err := u.Register(ctx, testRegisterRequest(utils.RandomString(8)))
		require.NoError(t, err)
		assert.False(t, ids[user.ID], "id %d выдан повторно", user.ID)
		ids[user.ID] = true
	}

	// Все значения диапазона заняты: явная ошибка вместо бесконечного цикла
	_, err := u.Register(ctx, testRegisterRequest(utils.RandomString(8)))
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
}

func TestUserStore_Authenticate(t *testing.T) {
	s := setupStoreTest(t)
	u := NewUserStore(s)
	ctx := context.Background()

	_, err := u.Register(ctx, testRegisterRequest("frog1"))
	require.NoError(t, err)

	t.Run("Верный пароль", func(t *testing.T) {
		user, err := u.Authenticate(ctx, "frog1", "abcdefgh")
		assert.NoError(t, err)
		assert.Equal(t, "frog1", user.Login)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		_, err := u.Authenticate(ctx, "frog1", "zlehaslo")
		assert.ErrorIs(t, err, ErrBadPassword)
	})

	t.Run("Неизвестный логин", func(t *testing.T) {
		_, err := u.Authenticate(ctx, "frog2", "abcdefgh")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserStore_AuthenticateLoginConflict(t *testing.T) {
	s := setupStoreTest(t)
	u := NewUserStore(s)
	ctx := context.Background()

	// Две строки с одним логином, но разными id - дубликаты по всем
	// колонкам они не образуют и при записи не схлопываются
	require.NoError(t, u.write([]models.User{
		{ID: 1, Login: "frog1", Password: "abcdefgh"},
		{ID: 2, Login: "frog1", Password: "abcdefgh"},
	}))

	_, err := u.Authenticate(ctx, "frog1", "abcdefgh")
	assert.ErrorIs(t, err, ErrLoginConflict)
}

func TestUserStore_Remove(t *testing.T) {
	s := setupStoreTest(t)
	u := NewUserStore(s)
	ctx := context.Background()

	_, err := u.Register(ctx, testRegisterRequest("frog1"))
	require.NoError(t, err)

	t.Run("Существующий логин", func(t *testing.T) {
		require.NoError(t, u.Remove(ctx, "frog1"))

		_, err := u.FindByLogin(ctx, "frog1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Несуществующий логин", func(t *testing.T) {
		assert.ErrorIs(t, u.Remove(ctx, "frog1"), ErrNotFound)
	})
}

func TestUserStore_AdminFlagRoundTrip(t *testing.T) {
	s := setupStoreTest(t)
	u := NewUserStore(s)
	ctx := context.Background()

	// Флаг admin выставляется только правкой файла, эндпоинта для него нет
	require.NoError(t, u.write([]models.User{
		{ID: 7, Login: "boss", Password: "sekret", Admin: true},
	}))

	user, err := u.FindByLogin(ctx, "boss")
	require.NoError(t, err)
	assert.True(t, user.Admin)
}
