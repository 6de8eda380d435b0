package handler

import (
	"errors"
	"net/http"

	"github.com/momentglow/diary-service/internal/service"
)

var (
	errNotAuthorized  = errors.New("user is not authorized")
	errInvalidDiaryID = errors.New("invalid diary ID")
	errInvalidUserID  = errors.New("invalid user ID")
	errInvalidTagID   = errors.New("invalid tag ID")
	errMissingFile    = errors.New("missing file")
)

var badRequestErrors = []error{
	service.ErrInvalidCredentials,
	service.ErrAccountDisabled,
	service.ErrInvalidRefreshToken,
	service.ErrPasswordsDoNotMatch,
	service.ErrPasswordTooWeak,
	service.ErrUsernameTaken,
	service.ErrEmailTaken,
	service.ErrParentCommentNotFound,
	service.ErrParentCommentNotRoot,
	service.ErrParentCommentOtherDiary,
	service.ErrFileMustBeImage,
	service.ErrFileTooLarge,
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	}

	for _, badRequest := range badRequestErrors {
		if errors.Is(err, badRequest) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}
