package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard/internal/domain"
	"taskboard/internal/feature/user"
	"taskboard/internal/repo"
	"taskboard/internal/transport/http/handler"
	"taskboard/internal/transport/http/router"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Task{}))
	return db
}

func newAPITest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	r := repo.NewUserRepo(db)
	svc := user.NewService(r, r)
	api := handler.NewUserAPI(svc, nil, zap.NewNop())
	return router.NewAPIEngine(zap.NewNop(), api), db
}

func doJSON(t *testing.T, eng *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	eng.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestAPI_Health(t *testing.T) {
	eng, _ := newAPITest(t)
	w := doJSON(t, eng, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestAPI_RouteNotFound(t *testing.T) {
	eng, _ := newAPITest(t)
	w := doJSON(t, eng, http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", decode(t, w)["error"])
}

func TestAPI_ListEmpty(t *testing.T) {
	eng, _ := newAPITest(t)
	w := doJSON(t, eng, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	users, ok := decode(t, w)["users"].([]any)
	require.True(t, ok)
	assert.Empty(t, users)
}

func TestAPI_CreateAndGet(t *testing.T) {
	eng, _ := newAPITest(t)

	w := doJSON(t, eng, http.MethodPost, "/api/users", `{"name":"Bob"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "Bob", created["name"])
	assert.EqualValues(t, 0, created["task_count"])

	id := int64(created["id"].(float64))
	w = doJSON(t, eng, http.MethodGet, "/api/users/"+itoa(id), "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "Bob", got["name"])
	tasks, ok := got["tasks"].([]any)
	require.True(t, ok, "tasks must be a list, got %T", got["tasks"])
	assert.Len(t, tasks, 0)
}

func TestAPI_Create_Validation(t *testing.T) {
	eng, _ := newAPITest(t)

	w := doJSON(t, eng, http.MethodPost, "/api/users", `{"name":"  "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name is required", decode(t, w)["error"])

	w = doJSON(t, eng, http.MethodPost, "/api/users", `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_Create_Duplicate(t *testing.T) {
	eng, _ := newAPITest(t)

	w := doJSON(t, eng, http.MethodPost, "/api/users", `{"name":"Alice"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, eng, http.MethodPost, "/api/users", `{"name":"Alice"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "A user with this name already exists", decode(t, w)["error"])
}

func TestAPI_Get_BadID(t *testing.T) {
	eng, _ := newAPITest(t)
	w := doJSON(t, eng, http.MethodGet, "/api/users/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid user ID", decode(t, w)["error"])
}

func TestAPI_Get_NotFound(t *testing.T) {
	eng, _ := newAPITest(t)
	w := doJSON(t, eng, http.MethodGet, "/api/users/99", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode(t, w)["error"])
}

func TestAPI_Update(t *testing.T) {
	eng, _ := newAPITest(t)

	w := doJSON(t, eng, http.MethodPost, "/api/users", `{"name":"Alice"}`)
	id := int64(decode(t, w)["user"].(map[string]any)["id"].(float64))

	w = doJSON(t, eng, http.MethodPut, "/api/users/"+itoa(id), `{"name":"Alicia"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Alicia", decode(t, w)["user"].(map[string]any)["name"])

	w = doJSON(t, eng, http.MethodPut, "/api/users/12345", `{"name":"Ghost"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, eng, http.MethodPut, "/api/users/"+itoa(id), `{"name":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_Delete(t *testing.T) {
	eng, db := newAPITest(t)

	w := doJSON(t, eng, http.MethodPost, "/api/users", `{"name":"Alice"}`)
	id := int64(decode(t, w)["user"].(map[string]any)["id"].(float64))

	// 有任务时删除被守卫拦下
	require.NoError(t, db.Create(&domain.Task{Title: "Deploy to production", Status: domain.TaskUnfinished, UserID: id}).Error)
	w = doJSON(t, eng, http.MethodDelete, "/api/users/"+itoa(id), "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t,
		"Cannot delete user with assigned tasks. Please reassign or delete the tasks first.",
		decode(t, w)["error"])

	// 用户没被删
	w = doJSON(t, eng, http.MethodGet, "/api/users/"+itoa(id), "")
	require.Equal(t, http.StatusOK, w.Code)

	// 清空任务后可删
	require.NoError(t, db.Where("user_id = ?", id).Delete(&domain.Task{}).Error)
	w = doJSON(t, eng, http.MethodDelete, "/api/users/"+itoa(id), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])

	w = doJSON(t, eng, http.MethodGet, "/api/users/"+itoa(id), "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, eng, http.MethodDelete, "/api/users/"+itoa(id), "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
