package auth

import (
	"context"
	"errors"

	"shop-service/internal/session"
	"shop-service/internal/store"
)

// GuardInterface определяет интерфейс проверки авторизации запросов
type GuardInterface interface {
	Authorize(ctx context.Context, performerToken string, requiresAdmin bool) (bool, error)
}

// Guard проверяет performer_token запроса по таблице сессий и, для
// привилегированных операций, флаг admin владельца сессии. Токен
// считается действительным, если он числится среди значений таблицы
// сессий: любой когда-либо выданный токен открывает доступ любому,
// кто его предъявит.
type Guard struct {
	sessions *session.Store
	users    store.UserStoreInterface
}

// NewGuard создает новый экземпляр Guard
func NewGuard(sessions *session.Store, users store.UserStoreInterface) *Guard {
	return &Guard{
		sessions: sessions,
		users:    users,
	}
}

// Authorize проверяет токен. Ошибка возвращается только при сбое чтения
// таблицы пользователей; все остальные исходы дают false без ошибки.
func (g *Guard) Authorize(ctx context.Context, performerToken string, requiresAdmin bool) (bool, error) {
	if performerToken == "" || !g.sessions.HasToken(performerToken) {
		return false, nil
	}

	if requiresAdmin {
		login, ok := g.sessions.LoginByToken(performerToken)
		if !ok {
			return false, nil
		}

		user, err := g.users.FindByLogin(ctx, login)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return false, nil
			}
			return false, err
		}

		if !user.Admin {
			return false, nil
		}
	}

	return true, nil
}
