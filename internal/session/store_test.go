package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_SetAndIsLoggedIn(t *testing.T) {
	s := NewStore()

	assert.False(t, s.IsLoggedIn("frog1"))

	s.Set("frog1", "token-1")

	assert.True(t, s.IsLoggedIn("frog1"))
	assert.Equal(t, 1, s.Len())
}

func TestStore_Delete(t *testing.T) {
	s := NewStore()
	s.Set("frog1", "token-1")

	t.Run("Удаление существующей сессии", func(t *testing.T) {
		assert.True(t, s.Delete("frog1"))
		assert.False(t, s.IsLoggedIn("frog1"))
	})

	t.Run("Удаление несуществующей сессии", func(t *testing.T) {
		assert.False(t, s.Delete("frog1"))
	})
}

func TestStore_HasToken(t *testing.T) {
	s := NewStore()
	s.Set("frog1", "token-1")
	s.Set("frog2", "token-2")

	// Токен ищется по значениям таблицы, а не по ключам
	assert.True(t, s.HasToken("token-1"))
	assert.True(t, s.HasToken("token-2"))
	assert.False(t, s.HasToken("frog1"))
	assert.False(t, s.HasToken("unknown"))
}

func TestStore_LoginByToken(t *testing.T) {
	s := NewStore()
	s.Set("frog1", "token-1")

	login, ok := s.LoginByToken("token-1")
	assert.True(t, ok)
	assert.Equal(t, "frog1", login)

	_, ok = s.LoginByToken("unknown")
	assert.False(t, ok)
}

func TestStore_LoginLogoutCycle(t *testing.T) {
	s := NewStore()

	s.Set("frog1", "token-1")
	assert.True(t, s.IsLoggedIn("frog1"))

	s.Delete("frog1")
	assert.False(t, s.IsLoggedIn("frog1"))
	assert.False(t, s.HasToken("token-1"))
}
