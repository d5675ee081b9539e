package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "taskboard/internal/transport/http/response"
)

func SimpleRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				c.Abort()
				if !c.Writer.Written() {
					resp.Err(c, http.StatusInternalServerError, "Internal server error")
				}
			}
		}()
		c.Next()
	}
}
