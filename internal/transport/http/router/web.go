package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mdw "taskboard/internal/transport/http/middleware"
	"taskboard/web"
)

// NewWebEngine 服务端渲染引擎：模板 + 表单路由
func NewWebEngine(l *zap.Logger, extra ...WebModule) *gin.Engine {
	r := gin.New()

	r.Use(
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
		mdw.RequestID(),
		mdw.MaxBodyBytes(1<<20),
	)

	r.SetHTMLTemplate(web.Templates())

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/users") })
	r.GET("/health", Health)

	MountAllWeb(r)
	for _, m := range extra {
		m.MountWeb(r)
	}

	r.NoRoute(NotFound)
	return r
}
