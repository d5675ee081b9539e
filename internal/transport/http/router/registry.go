package router

import (
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

// 模块按实现的接口挂到对应引擎上；一个模块可以两边都挂
type APIModule interface{ MountAPI(*gin.RouterGroup) }
type WebModule interface{ MountWeb(*gin.Engine) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂），默认 100
type prioritizer interface{ Priority() int }

var (
	mu      sync.RWMutex
	apiMods []APIModule
	webMods []WebModule
)

// Register 统一注册入口：按类型断言分发
func Register(mod any) {
	mu.Lock()
	defer mu.Unlock()
	if m, ok := mod.(APIModule); ok {
		apiMods = append(apiMods, m)
	}
	if m, ok := mod.(WebModule); ok {
		webMods = append(webMods, m)
	}
}

func MountAllAPI(api *gin.RouterGroup) {
	mu.RLock()
	mods := append([]APIModule(nil), apiMods...)
	mu.RUnlock()

	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(api)
	}
}

func MountAllWeb(r *gin.Engine) {
	mu.RLock()
	mods := append([]WebModule(nil), webMods...)
	mu.RUnlock()

	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountWeb(r)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
