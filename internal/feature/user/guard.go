package user

import (
	"context"

	"taskboard/internal/domain"
)

// DeletionGuard 删除前置检查：名下还有任务就拒绝，避免触发级联删除
type DeletionGuard struct {
	tasks domain.TaskReader
}

func NewDeletionGuard(tasks domain.TaskReader) *DeletionGuard {
	return &DeletionGuard{tasks: tasks}
}

// Check 只读不写；必须紧贴删除调用
func (g *DeletionGuard) Check(ctx context.Context, userID int64) error {
	titles, err := g.tasks.TitlesByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(titles) > 0 {
		return &domain.DeletionBlockedError{UserID: userID, Titles: titles}
	}
	return nil
}
