package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard/internal/domain"
	"taskboard/internal/repo"
)

func newTestRepo(t *testing.T) (*repo.UserRepo, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Task{}))
	return repo.NewUserRepo(db), db
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	u := &domain.User{Name: "Alice"}
	require.NoError(t, r.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.NotNil(t, u.Tasks)

	got, err := r.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.NotNil(t, got.Tasks)
	assert.Empty(t, got.Tasks)
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &domain.User{Name: "Alice"}))
	err := r.Create(ctx, &domain.User{Name: "Alice"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestUserRepo_Get_NotFound(t *testing.T) {
	r, _ := newTestRepo(t)
	_, err := r.Get(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_Get_TasksNewestFirst(t *testing.T) {
	r, db := newTestRepo(t)
	ctx := context.Background()

	u := &domain.User{Name: "Alice"}
	require.NoError(t, r.Create(ctx, u))

	old := domain.Task{Title: "old", Status: domain.TaskFinished, UserID: u.ID, CreatedAt: time.Now().Add(-time.Hour)}
	newer := domain.Task{Title: "new", Status: domain.TaskUnfinished, UserID: u.ID}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&newer).Error)

	got, err := r.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "new", got.Tasks[0].Title)
	assert.Equal(t, "old", got.Tasks[1].Title)
	assert.EqualValues(t, 2, got.TaskCount)
}

func TestUserRepo_Update_DuplicateName(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &domain.User{Name: "Alice"}))
	b := &domain.User{Name: "Bob"}
	require.NoError(t, r.Create(ctx, b))

	b.Name = "Alice"
	assert.ErrorIs(t, r.Update(ctx, b), domain.ErrDuplicateName)
}

func TestUserRepo_Delete(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	u := &domain.User{Name: "Alice"}
	require.NoError(t, r.Create(ctx, u))
	require.NoError(t, r.Delete(ctx, u.ID))

	assert.ErrorIs(t, r.Delete(ctx, u.ID), domain.ErrNotFound)
}

func TestUserRepo_TitlesByUser(t *testing.T) {
	r, db := newTestRepo(t)
	ctx := context.Background()

	u := &domain.User{Name: "Alice"}
	require.NoError(t, r.Create(ctx, u))

	titles, err := r.TitlesByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, titles)

	require.NoError(t, db.Create(&domain.Task{Title: "Style the application", Status: domain.TaskUnfinished, UserID: u.ID}).Error)

	titles, err = r.TitlesByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Style the application"}, titles)
}

func TestUserRepo_List_CountsPerUser(t *testing.T) {
	r, db := newTestRepo(t)
	ctx := context.Background()

	a := &domain.User{Name: "Alice"}
	b := &domain.User{Name: "Bob"}
	require.NoError(t, r.Create(ctx, a))
	require.NoError(t, r.Create(ctx, b))
	require.NoError(t, db.Create(&domain.Task{Title: "t1", Status: domain.TaskUnfinished, UserID: a.ID}).Error)

	users, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	byName := map[string]int64{}
	for _, u := range users {
		byName[u.Name] = u.TaskCount
	}
	assert.EqualValues(t, 1, byName["Alice"])
	assert.EqualValues(t, 0, byName["Bob"])
}
