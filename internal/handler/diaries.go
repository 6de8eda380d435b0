package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momentglow/diary-service/internal/dto"
)

func (h *Handler) diariesGet(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		h.respondErr(c, http.StatusUnauthorized, errNotAuthorized)
		return
	}

	filter := dto.DiaryFilterFromQuery(c.Request.URL.Query())

	diaries, err := h.services.Diary.Find(c.Request.Context(), actor, filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, diaries)
}

func (h *Handler) diariesGetPublic(c *gin.Context) {
	filter := dto.DiaryFilterFromQuery(c.Request.URL.Query())

	diaries, err := h.services.Diary.FindPublic(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, diaries)
}

func (h *Handler) diariesCreate(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		h.respondErr(c, http.StatusUnauthorized, errNotAuthorized)
		return
	}

	var input dto.CreateDiaryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	diary, err := h.services.Diary.Create(c.Request.Context(), actor, input)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusCreated, diary)
}

func (h *Handler) diariesGetByID(c *gin.Context) {
	diaryID, err := pathID(c, "diaryID", errInvalidDiaryID)
	if err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	diary, err := h.services.Diary.FindByID(c.Request.Context(), optionalActorID(c), diaryID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, diary)
}

func (h *Handler) diariesUpdate(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		h.respondErr(c, http.StatusUnauthorized, errNotAuthorized)
		return
	}

	diaryID, err := pathID(c, "diaryID", errInvalidDiaryID)
	if err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	var input dto.UpdateDiaryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	diary, err := h.services.Diary.Update(c.Request.Context(), actor, diaryID, input)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, diary)
}

func (h *Handler) diariesDelete(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		h.respondErr(c, http.StatusUnauthorized, errNotAuthorized)
		return
	}

	diaryID, err := pathID(c, "diaryID", errInvalidDiaryID)
	if err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	if err := h.services.Diary.Delete(c.Request.Context(), actor, diaryID); err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, nil)
}

func (h *Handler) diariesUploadImage(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		h.respondErr(c, http.StatusUnauthorized, errNotAuthorized)
		return
	}

	diaryID, err := pathID(c, "diaryID", errInvalidDiaryID)
	if err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		h.respondErr(c, http.StatusBadRequest, errMissingFile)
		return
	}

	image, err := h.services.Diary.AddImage(c.Request.Context(), actor, diaryID, file)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusCreated, image)
}
