package domain

import "time"

type TaskStatus string

const (
	TaskFinished   TaskStatus = "FINISHED"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskUnfinished TaskStatus = "UNFINISHED"
)

// Task 只作为 User 的从属关系出现；任务自身的增删改不在本服务内
type Task struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Content   string     `gorm:"type:text" json:"content"`
	Status    TaskStatus `gorm:"size:16;not null;default:UNFINISHED" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
}

func (Task) TableName() string { return "tasks" }
