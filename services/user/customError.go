package user

import "errors"

var (
	ErrUserExists    = errors.New("user already exists")
	ErrEmailTaken    = errors.New("email already in use")
	ErrUserNotFound  = errors.New("user not found")
	ErrNothingToEdit = errors.New("no updatable fields provided")
)
