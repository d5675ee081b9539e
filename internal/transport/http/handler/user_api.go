package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/core/cache"
	"taskboard/internal/domain"
	"taskboard/internal/feature/user"
	"taskboard/internal/transport/http/ez"
	resp "taskboard/internal/transport/http/response"
)

const (
	cacheKeyList = "users:list"
	cacheTTL     = 30 * time.Second
)

func cacheKeyUser(id int64) string { return fmt.Sprintf("users:%d", id) }

// UserAPI REST 适配器；cache 可为 nil（未配置 Redis 时直连库）
type UserAPI struct {
	svc   *user.Service
	cache *cache.Cache
	log   *zap.Logger
}

func NewUserAPI(svc *user.Service, c *cache.Cache, l *zap.Logger) *UserAPI {
	return &UserAPI{svc: svc, cache: c, log: l}
}

func (h *UserAPI) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)
	e.Handle(http.MethodGet, "/users", http.StatusOK, "Failed to fetch users", h.list)
	e.Handle(http.MethodGet, "/users/:id", http.StatusOK, "Failed to fetch user", h.get)
	e.Handle(http.MethodPost, "/users", http.StatusCreated, "Failed to create user", h.create)
	e.Handle(http.MethodPut, "/users/:id", http.StatusOK, "Failed to update user", h.update)
	e.Handle(http.MethodDelete, "/users/:id", http.StatusOK, "Failed to delete user", h.delete)
}

// 列表和详情用不同的响应形状：列表只带计数，详情带任务
type userRow struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	TaskCount int64     `json:"task_count"`
}

type userDetail struct {
	userRow
	Tasks []domain.Task `json:"tasks"`
}

func toRow(u *domain.User) userRow {
	return userRow{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt, TaskCount: u.TaskCount}
}

func toDetail(u *domain.User) userDetail {
	tasks := u.Tasks
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return userDetail{userRow: toRow(u), Tasks: tasks}
}

func (h *UserAPI) list(c *gin.Context) (any, error) {
	load := func(ctx *gin.Context) ([]userRow, error) {
		users, err := h.svc.List(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]userRow, 0, len(users))
		for i := range users {
			rows = append(rows, toRow(&users[i]))
		}
		return rows, nil
	}

	if h.cache == nil {
		rows, err := load(c)
		if err != nil {
			return nil, err
		}
		return gin.H{"users": rows}, nil
	}

	rows, err := cache.GetOrLoadJSON(h.cache, c, cacheKeyList, cacheTTL, func(ctx context.Context) ([]userRow, error) {
		return load(c)
	})
	if err != nil {
		return nil, err
	}
	return gin.H{"users": rows}, nil
}

func (h *UserAPI) get(c *gin.Context) (any, error) {
	id, ok := pathID(c)
	if !ok {
		return nil, nil
	}

	if h.cache == nil {
		u, err := h.svc.Get(c, id)
		if err != nil {
			return nil, err
		}
		return gin.H{"user": toDetail(u)}, nil
	}

	d, err := cache.GetOrLoadJSON(h.cache, c, cacheKeyUser(id), cacheTTL, func(ctx context.Context) (userDetail, error) {
		u, err := h.svc.Get(c, id)
		if err != nil {
			return userDetail{}, err
		}
		return toDetail(u), nil
	})
	if err != nil {
		return nil, err
	}
	return gin.H{"user": d}, nil
}

func (h *UserAPI) create(c *gin.Context) (any, error) {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, "Name is required")
		return nil, nil
	}
	u, err := h.svc.Create(c, in.Name)
	if err != nil {
		return nil, err
	}
	h.invalidate(c, 0)
	return gin.H{"user": toDetail(u)}, nil
}

func (h *UserAPI) update(c *gin.Context) (any, error) {
	id, ok := pathID(c)
	if !ok {
		return nil, nil
	}
	var in struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, "Name is required")
		return nil, nil
	}
	u, err := h.svc.Update(c, id, in.Name)
	if err != nil {
		return nil, err
	}
	h.invalidate(c, id)
	return gin.H{"user": toDetail(u)}, nil
}

func (h *UserAPI) delete(c *gin.Context) (any, error) {
	id, ok := pathID(c)
	if !ok {
		return nil, nil
	}
	if err := h.svc.Delete(c, id); err != nil {
		return nil, err
	}
	h.invalidate(c, id)
	return gin.H{"success": true}, nil
}

func (h *UserAPI) invalidate(c *gin.Context, id int64) {
	if h.cache == nil {
		return
	}
	keys := []string{cacheKeyList}
	if id != 0 {
		keys = append(keys, cacheKeyUser(id))
	}
	if err := h.cache.Invalidate(c, keys...); err != nil {
		h.log.Warn("cache invalidate", zap.Error(err))
	}
}

// pathID 非数字 id 在碰存储之前就挡下来
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		resp.Err(c, http.StatusBadRequest, resp.MsgInvalidID)
		return 0, false
	}
	return id, true
}
