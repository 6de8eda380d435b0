package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momentglow/diary-service/internal/dto"
)

func (h *Handler) tagsGet(c *gin.Context) {
	tags, err := h.services.Tag.FindAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, tags)
}

func (h *Handler) tagsGetDiaries(c *gin.Context) {
	tagID, err := pathID(c, "tagID", errInvalidTagID)
	if err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	filter := dto.DiaryFilterFromQuery(c.Request.URL.Query())

	diaries, err := h.services.Tag.FindDiaries(c.Request.Context(), tagID, filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, diaries)
}
