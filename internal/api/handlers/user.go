package handlers

import (
	"net/http"

	"shop-service/internal/models"
	"shop-service/internal/session"
	"shop-service/internal/store"

	"github.com/gin-gonic/gin"
)

// UserHandler содержит обработчики для работы с пользователями и сессиями
type UserHandler struct {
	users    store.UserStoreInterface
	sessions *session.Store
}

// NewUserHandler создает новый экземпляр UserHandler
func NewUserHandler(users store.UserStoreInterface, sessions *session.Store) *UserHandler {
	return &UserHandler{
		users:    users,
		sessions: sessions,
	}
}

// ListUsers обрабатывает запрос на список всех пользователей
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Ошибка чтения таблицы пользователей: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.UserListResponse{Users: users})
}

// Register обрабатывает запрос на регистрацию нового пользователя
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Неверный запрос: " + err.Error(),
		})
		return
	}

	// Логин с активной сессией зарегистрировать нельзя
	if h.sessions.IsLoggedIn(req.Login) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Пользователь с таким логином уже залогинен",
		})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), &req); err != nil {
		if err == store.ErrLoginExists {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Пользователь с таким логином уже существует",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Ошибка при регистрации пользователя: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Пользователь успешно зарегистрирован"})
}

// Login обрабатывает запрос на вход. При успехе токен из тела запроса
// записывается в таблицу сессий, наружу уходит публичный профиль.
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Неверный запрос: " + err.Error(),
		})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Пользователь не найден",
			})
		case store.ErrLoginConflict:
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "В таблице больше одного пользователя с таким логином",
			})
		case store.ErrBadPassword:
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: "Неверный пароль",
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Ошибка при входе: " + err.Error(),
			})
		}
		return
	}

	h.sessions.Set(req.Login, req.Token)

	c.JSON(http.StatusOK, models.LoginResponse{
		Message: "Вход выполнен успешно",
		Login:   user.Login,
		Name:    user.Name,
		Surname: user.Surname,
		Age:     user.Age,
		Token:   req.Token,
	})
}

// Logout обрабатывает запрос на выход. Маршрут закрыт middleware
// с проверкой токена.
func (h *UserHandler) Logout(c *gin.Context) {
	login := c.Param("login")

	if !h.sessions.Delete(login) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Пользователь не залогинен",
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Выход выполнен успешно"})
}

// RemoveUser обрабатывает запрос на удаление пользователя.
// Маршрут закрыт админским middleware.
func (h *UserHandler) RemoveUser(c *gin.Context) {
	login := c.Param("login")

	if err := h.users.Remove(c.Request.Context(), login); err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Пользователь с таким логином не существует",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Ошибка при удалении пользователя: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Пользователь успешно удален"})
}

// CheckToken сообщает, залогинен ли указанный логин. Маршрут закрыт
// middleware с проверкой токена.
func (h *UserHandler) CheckToken(c *gin.Context) {
	login := c.Param("login")

	if h.sessions.IsLoggedIn(login) {
		c.JSON(http.StatusOK, models.MessageResponse{Message: "Пользователь залогинен"})
		return
	}

	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Пользователь не залогинен"})
}
