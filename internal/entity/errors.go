package entity

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUpdateField = errors.New("field is not updatable")
)
