package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/momentglow/diary-service/internal/dto"
)

func (h *Handler) usersRegister(c *gin.Context) {
	var input dto.RegisterRequest
	if err := c.ShouldBind(&input); err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	// avatar is optional at registration
	avatar, err := c.FormFile("avatar")
	if err != nil {
		avatar = nil
	}

	user, err := h.services.User.Register(c.Request.Context(), input, avatar)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusCreated, dto.RegisterResponse{
		Message:  "user registered successfully",
		Username: user.Username,
	})
}

func (h *Handler) usersLogin(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	result, err := h.services.User.Login(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, result)
}

func (h *Handler) tokenRefresh(c *gin.Context) {
	var input dto.RefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	token, err := h.services.User.Refresh(c.Request.Context(), input.Refresh)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, dto.RefreshResponse{Token: token})
}

func (h *Handler) profilesGet(c *gin.Context) {
	userID, err := pathID(c, "userID", errInvalidUserID)
	if err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	user, err := h.services.User.FindByID(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, user)
}

func (h *Handler) profilesUpdate(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		h.respondErr(c, http.StatusUnauthorized, errNotAuthorized)
		return
	}

	userID, err := pathID(c, "userID", errInvalidUserID)
	if err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	var input dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	user, err := h.services.User.UpdateProfile(c.Request.Context(), actor, userID, input)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, user)
}

func (h *Handler) avatarUpload(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		h.respondErr(c, http.StatusUnauthorized, errNotAuthorized)
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		h.respondErr(c, http.StatusBadRequest, errMissingFile)
		return
	}

	result, err := h.services.User.UploadAvatar(c.Request.Context(), actor, file)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, result)
}

func (h *Handler) avatarGetSelf(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		h.respondErr(c, http.StatusUnauthorized, errNotAuthorized)
		return
	}

	result, err := h.services.User.Avatar(c.Request.Context(), actor)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, result)
}

func (h *Handler) avatarGet(c *gin.Context) {
	userID, err := pathID(c, "userID", errInvalidUserID)
	if err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	result, err := h.services.User.Avatar(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, result)
}

func pathID(c *gin.Context, param string, invalid error) (int64, error) {
	raw := strings.TrimSpace(c.Param(param))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalid
	}
	return id, nil
}
