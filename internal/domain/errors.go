package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrDuplicateName = errors.New("name already exists")
)

// FieldError 字段级校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, ", ")
}

// DeletionBlockedError 守卫拒绝删除：用户名下仍有任务
type DeletionBlockedError struct {
	UserID int64
	Titles []string
}

func (e *DeletionBlockedError) Error() string {
	return "cannot delete user with assigned tasks"
}
