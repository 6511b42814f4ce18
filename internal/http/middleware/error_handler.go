package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/upcycle-backend/internal/interface/http/response"
	"github.com/ignatzorin/upcycle-backend/internal/logger"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
)

// ErrorHandler логирует внутренние ошибки, прикреплённые к запросу, и
// перехватывает паники. Клиент получает только обобщённое сообщение.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithContext(c.Request.Context()).WithFields(logrus.Fields{
					"panic":  rec,
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("panic при обработке запроса")
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
						Success: false,
						Error: &response.ErrorInfo{
							Code:    string(apperror.ErrCodeInternal),
							Message: "внутренняя ошибка сервера",
						},
					})
				}
			}
		}()

		c.Next()

		for _, ginErr := range c.Errors {
			logger.WithContext(c.Request.Context()).WithFields(logrus.Fields{
				"error":  ginErr.Error(),
				"code":   apperror.CodeOf(ginErr.Err),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("Request error")
		}
	}
}
