package domain

import "errors"

var ErrMissingFields = errors.New("all fields are required")

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("post belongs to another account")
)

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
	ErrFollowerNotFound = errors.New("follower not found")
)
