package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/domain"
	"taskboard/internal/feature/user"
	resp "taskboard/internal/transport/http/response"
)

// UserWeb 服务端渲染适配器：表单提交，成功重定向，失败内联渲染错误
type UserWeb struct {
	svc *user.Service
	log *zap.Logger
}

func NewUserWeb(svc *user.Service, l *zap.Logger) *UserWeb {
	return &UserWeb{svc: svc, log: l}
}

func (h *UserWeb) MountWeb(r *gin.Engine) {
	r.GET("/users", h.index)
	r.GET("/users/new", h.newForm)
	r.POST("/users/new", h.create)
	r.GET("/users/:id", h.show)
	r.GET("/users/:id/edit", h.editForm)
	r.POST("/users/:id/edit", h.update)
	r.GET("/users/:id/delete", h.confirmDelete)
	r.POST("/users/:id/delete", h.delete)
}

func (h *UserWeb) index(c *gin.Context) {
	users, err := h.svc.List(c)
	if err != nil {
		resp.FromError(c, h.log, err, "Failed to fetch users")
		return
	}
	c.HTML(http.StatusOK, "users_index.tmpl", gin.H{"Users": users})
}

func (h *UserWeb) show(c *gin.Context) {
	u, ok := h.loadUser(c)
	if !ok {
		return
	}
	grouped := map[domain.TaskStatus][]domain.Task{}
	for _, t := range u.Tasks {
		grouped[t.Status] = append(grouped[t.Status], t)
	}
	c.HTML(http.StatusOK, "user_show.tmpl", gin.H{
		"User":       u,
		"Finished":   grouped[domain.TaskFinished],
		"InProgress": grouped[domain.TaskInProgress],
		"Unfinished": grouped[domain.TaskUnfinished],
	})
}

func (h *UserWeb) newForm(c *gin.Context) {
	c.HTML(http.StatusOK, "user_new.tmpl", gin.H{"Name": ""})
}

func (h *UserWeb) create(c *gin.Context) {
	name := c.PostForm("name")
	if _, err := h.svc.Create(c, name); err != nil {
		if msg, ok := formError(err); ok {
			c.HTML(http.StatusBadRequest, "user_new.tmpl", gin.H{"Error": msg, "Name": name})
			return
		}
		resp.FromError(c, h.log, err, "Failed to create user")
		return
	}
	c.Redirect(http.StatusFound, "/users")
}

func (h *UserWeb) editForm(c *gin.Context) {
	u, ok := h.loadUser(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "user_edit.tmpl", gin.H{"User": u})
}

func (h *UserWeb) update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	name := c.PostForm("name")
	u, err := h.svc.Update(c, id, name)
	if err != nil {
		if msg, ok := formError(err); ok {
			stale := &domain.User{ID: id, Name: name}
			c.HTML(http.StatusBadRequest, "user_edit.tmpl", gin.H{"Error": msg, "User": stale})
			return
		}
		resp.FromError(c, h.log, err, "Failed to update user")
		return
	}
	c.Redirect(http.StatusFound, "/users/"+strconv.FormatInt(u.ID, 10))
}

func (h *UserWeb) confirmDelete(c *gin.Context) {
	u, ok := h.loadUser(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "user_delete.tmpl", gin.H{"User": u})
}

// delete 守卫拦下时按约定回 400 JSON，而不是渲染页面
func (h *UserWeb) delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c, id); err != nil {
		resp.FromError(c, h.log, err, "Failed to delete user")
		return
	}
	c.Redirect(http.StatusFound, "/users")
}

func (h *UserWeb) loadUser(c *gin.Context) (*domain.User, bool) {
	id, ok := h.pathID(c)
	if !ok {
		return nil, false
	}
	u, err := h.svc.Get(c, id)
	if err != nil {
		resp.FromError(c, h.log, err, "Failed to fetch user")
		return nil, false
	}
	return u, true
}

func (h *UserWeb) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		resp.Err(c, http.StatusBadRequest, resp.MsgInvalidID)
		return 0, false
	}
	return id, true
}

// formError 校验失败和重名走表单内联渲染，其余交给统一错误出口
func formError(err error) (string, bool) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Error(), true
	}
	if errors.Is(err, domain.ErrDuplicateName) {
		return resp.MsgDuplicateName, true
	}
	return "", false
}
