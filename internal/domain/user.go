package domain

import (
	"context"
	"time"
)

type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// TaskCount 由查询填充，不落库
	TaskCount int64  `gorm:"-" json:"task_count"`
	Tasks     []Task `gorm:"foreignKey:UserID" json:"tasks"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
}

// TaskReader 删除守卫只需要读任务标题
type TaskReader interface {
	TitlesByUser(ctx context.Context, userID int64) ([]string, error)
}
