package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momentglow/diary-service/internal/dto"
)

func (h *Handler) diariesAddComment(c *gin.Context) {
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

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	comment, err := h.services.Comment.Create(c.Request.Context(), actor, diaryID, input)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusCreated, comment)
}

func (h *Handler) diariesGetComments(c *gin.Context) {
	diaryID, err := pathID(c, "diaryID", errInvalidDiaryID)
	if err != nil {
		h.respondErr(c, http.StatusBadRequest, err)
		return
	}

	threads, err := h.services.Comment.FindDiaryThreads(c.Request.Context(), optionalActorID(c), diaryID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, http.StatusOK, threads)
}
