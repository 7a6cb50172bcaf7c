package utils

import "errors"

var (
	ErrHabitNotFound  = errors.New("habit not found")
	ErrGroupNotFound  = errors.New("group not found")
	ErrNudgeNotFound  = errors.New("nudge not found")
	ErrNotGroupMember = errors.New("user is not a member of the group")
	ErrInvalidInput   = errors.New("invalid input")
	ErrStorageFull    = errors.New("storage quota exceeded")
	ErrDatabaseError  = errors.New("database error")
)
