package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"taskboard/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	counts, err := r.taskCounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].TaskCount = counts[users[i].ID]
	}
	return users, nil
}

func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at DESC") }).
		First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if u.Tasks == nil {
		u.Tasks = []domain.Task{}
	}
	u.TaskCount = int64(len(u.Tasks))
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrDuplicateName
		}
		return err
	}
	if u.Tasks == nil {
		u.Tasks = []domain.Task{}
	}
	return nil
}

// Update 只改 name；updated_at 由 gorm 自动刷新
func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Model(u).Update("name", u.Name).Error
	if err != nil {
		if isDupKey(err) {
			return domain.ErrDuplicateName
		}
		return err
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) TitlesByUser(ctx context.Context, userID int64) ([]string, error) {
	var titles []string
	err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("title", &titles).Error
	return titles, err
}

func (r *UserRepo) taskCounts(ctx context.Context) (map[int64]int64, error) {
	type row struct {
		UserID int64
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Select("user_id, COUNT(*) AS n").
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[int64]int64, len(rows))
	for _, rw := range rows {
		counts[rw.UserID] = rw.N
	}
	return counts, nil
}

// isDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动/版本差异导致判断失效
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
