package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/upcycle-backend/internal/http/middleware"
)

func getUserID(c *gin.Context) (uuid.UUID, error) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, errors.New("userID не найден в контексте")
	}
	return userID, nil
}

// uuidParam читает параметр пути. Формат уже проверен UUIDValidator,
// ошибка здесь означает, что валидатор не подключён к маршруту.
func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}
