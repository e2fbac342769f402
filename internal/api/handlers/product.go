package handlers

import (
	"net/http"
	"strconv"

	"shop-service/internal/models"
	"shop-service/internal/store"

	"github.com/gin-gonic/gin"
)

// ProductHandler содержит обработчики для работы с товарами
type ProductHandler struct {
	products store.ProductStoreInterface
}

// NewProductHandler создает новый экземпляр ProductHandler
func NewProductHandler(products store.ProductStoreInterface) *ProductHandler {
	return &ProductHandler{products: products}
}

// ListProducts обрабатывает запрос на список всех товаров
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Ошибка чтения таблицы товаров: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{Products: products})
}

// GetProduct обрабатывает запрос на один товар по id.
// Все поля ответа отдаются строками.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Товар не найден",
		})
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Товар не найден",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Ошибка чтения таблицы товаров: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          strconv.FormatInt(product.ID, 10),
		"name":        product.Name,
		"price":       strconv.FormatInt(product.Price, 10),
		"quantity":    strconv.FormatInt(product.Quantity, 10),
		"description": product.Description,
		"category":    product.Category,
	})
}

// AddProduct обрабатывает запрос на добавление товара.
// Маршрут закрыт админским middleware.
func (h *ProductHandler) AddProduct(c *gin.Context) {
	var req models.CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Неверный запрос: " + err.Error(),
		})
		return
	}

	if _, err := h.products.Insert(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Ошибка при добавлении товара: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Товар успешно добавлен"})
}

// RemoveProduct обрабатывает запрос на удаление товара. Числовой сегмент
// пути трактуется как id, любой другой - как точное имя товара.
func (h *ProductHandler) RemoveProduct(c *gin.Context) {
	target := c.Param("target")

	var err error
	if id, parseErr := strconv.ParseInt(target, 10, 64); parseErr == nil {
		err = h.products.RemoveByID(c.Request.Context(), id)
	} else {
		err = h.products.RemoveByName(c.Request.Context(), target)
	}

	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Товар не найден",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Ошибка при удалении товара: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Товар успешно удален"})
}
