package session

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoTeacherAssigned = errors.New("session has no assigned or substitute teacher")
)
