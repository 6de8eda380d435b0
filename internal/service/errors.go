package service

import "errors"

var (
	ErrInternal  = errors.New("internal server error")
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("you do not have permission to perform this action")

	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	ErrPasswordsDoNotMatch = errors.New("password fields didn't match")
	ErrPasswordTooWeak     = errors.New("password must be at least 8 characters and not entirely numeric")
	ErrUsernameTaken       = errors.New("a user with that username already exists")
	ErrEmailTaken          = errors.New("a user with that email already exists")

	ErrParentCommentNotFound   = errors.New("parent comment not found")
	ErrParentCommentNotRoot    = errors.New("replies can only target a top-level comment")
	ErrParentCommentOtherDiary = errors.New("parent comment belongs to a different diary")

	ErrFileMustBeImage = errors.New("file must be a jpeg, png or gif image")
	ErrFileTooLarge    = errors.New("file is too large")
)
