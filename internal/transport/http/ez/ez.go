package ez

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "taskboard/internal/transport/http/response"
)

// EZ 轻封装：handler 只返回 (body, error)，错误统一走 response.FromError
type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ { return EZ{g: g, log: l} }

// Handle 注册一个接口；fallback 是未知错误时回给客户端的笼统文案
func (e EZ) Handle(method, path string, status int, fallback string, h func(c *gin.Context) (any, error)) {
	e.g.Handle(method, path, func(c *gin.Context) {
		body, err := h(c)
		if err != nil {
			resp.FromError(c, e.log, err, fallback)
			return
		}
		// handler 可能已经自己写过响应（如参数校验短路）
		if c.Writer.Written() {
			return
		}
		c.JSON(status, body)
	})
}
