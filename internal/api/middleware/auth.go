package middleware

import (
	"net/http"

	"shop-service/internal/auth"
	"shop-service/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireToken создает middleware, пропускающее запрос только при
// действительном performer_token из query-параметров
func RequireToken(guard auth.GuardInterface) gin.HandlerFunc {
	return requireToken(guard, false)
}

// RequireAdmin создает middleware, дополнительно требующее флаг admin
// у владельца сессии
func RequireAdmin(guard auth.GuardInterface) gin.HandlerFunc {
	return requireToken(guard, true)
}

func requireToken(guard auth.GuardInterface, requiresAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("performer_token")

		ok, err := guard.Authorize(c.Request.Context(), token, requiresAdmin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "Ошибка проверки токена: " + err.Error(),
			})
			c.Abort()
			return
		}

		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: "Нет прав для выполнения этой операции",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
