package models

// Product представляет товар из таблицы products.csv.
// Цена хранится в минорных единицах (грошах); форматирование валюты
// выполняется только на стороне клиента.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// CreateProductRequest представляет запрос на добавление товара
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price" binding:"gte=0"`
	Quantity    int64  `json:"quantity" binding:"gte=0"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ProductListResponse представляет ответ со списком товаров
type ProductListResponse struct {
	Products []Product `json:"products"`
}
