package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/domain"
)

// Err 统一错误体 {"error": msg}
func Err(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// FromError 把领域错误种类翻译成状态码；未知错误按存储失败处理，
// 细节写日志，客户端只拿笼统文案
func FromError(c *gin.Context, l *zap.Logger, err error, fallback string) {
	var verr *domain.ValidationError
	var blocked *domain.DeletionBlockedError

	switch {
	case errors.As(err, &verr):
		Err(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrDuplicateName):
		Err(c, http.StatusBadRequest, MsgDuplicateName)
	case errors.Is(err, domain.ErrNotFound):
		Err(c, http.StatusNotFound, MsgUserNotFound)
	case errors.As(err, &blocked):
		Err(c, http.StatusBadRequest, MsgDeletionBlocked)
	default:
		l.Error("storage failure",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		Err(c, http.StatusInternalServerError, fallback)
	}
}
