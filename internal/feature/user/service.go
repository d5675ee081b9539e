package user

import (
	"context"
	"strings"

	"taskboard/internal/domain"
)

// Service 把校验、仓储和删除守卫串成一条链，REST 和页面两个适配器共用
type Service struct {
	repo  domain.UserRepository
	guard *DeletionGuard
}

func NewService(repo domain.UserRepository, tasks domain.TaskReader) *Service {
	return &Service{repo: repo, guard: NewDeletionGuard(tasks)}
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string) (*domain.User, error) {
	if errs := ValidateName(name); len(errs) > 0 {
		return nil, &domain.ValidationError{Fields: errs}
	}
	u := &domain.User{Name: strings.TrimSpace(name)}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, id int64, name string) (*domain.User, error) {
	if errs := ValidateName(name); len(errs) > 0 {
		return nil, &domain.ValidationError{Fields: errs}
	}
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Name = strings.TrimSpace(name)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete 守卫检查和删除是两条语句，中间没有事务。两者之间插入的新任务
// 会撞外键或变孤儿，取决于存储引擎；当前使用方式下接受这个竞态。
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.guard.Check(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
