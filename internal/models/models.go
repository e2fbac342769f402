package models

// ErrorResponse представляет ошибку API. Клиент показывает
// содержимое поля error на текущем экране.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse представляет успешный результат операции
type MessageResponse struct {
	Message string `json:"message"`
}
