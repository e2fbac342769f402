package models

// User представляет строку таблицы customers.xlsx
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Age     string `json:"age"`
	Login   string `json:"login"`
	// Пароль хранится открытым текстом и сравнивается побайтно,
	// но наружу никогда не отдается
	Password string `json:"-"`
	Admin    bool   `json:"admin"`
}

// RegisterRequest представляет запрос на регистрацию пользователя.
// Поле token прилагается клиентом на каждый вызов, при регистрации
// оно не используется.
type RegisterRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Age      string `json:"age"`
	Token    string `json:"token"`
}

// LoginRequest представляет запрос на вход в систему
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

// LoginResponse представляет ответ с публичным профилем пользователя.
// Пароль и флаг admin в ответ не попадают.
type LoginResponse struct {
	Message string `json:"message"`
	Login   string `json:"login"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Age     string `json:"age"`
	Token   string `json:"token"`
}

// UserListResponse представляет ответ со списком пользователей
type UserListResponse struct {
	Users []User `json:"users"`
}
