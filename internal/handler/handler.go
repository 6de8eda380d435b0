package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/momentglow/diary-service/internal/dto"
	"github.com/momentglow/diary-service/internal/service"
	"github.com/spf13/viper"
)

type Handler struct {
	services  *service.Service
	mediaRoot string
}

func New(services *service.Service, mediaRoot string) *Handler {
	return &Handler{
		services:  services,
		mediaRoot: mediaRoot,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Static("/media", h.mediaRoot)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", h.usersRegister)
			users.POST("/login", h.usersLogin)
		}

		api.POST("/token/refresh", h.tokenRefresh)

		profiles := api.Group("/profiles")
		{
			profiles.GET("/:userID", h.profilesGet)
			profiles.PUT("/:userID", h.authMiddleware, h.profilesUpdate)
		}

		avatar := api.Group("/avatar")
		{
			avatar.POST("/upload", h.authMiddleware, h.avatarUpload)
			avatar.GET("", h.authMiddleware, h.avatarGetSelf)
			avatar.GET("/:userID", h.avatarGet)
		}

		diaries := api.Group("/diaries")
		{
			diaries.GET("", h.authMiddleware, h.diariesGet)
			diaries.POST("", h.authMiddleware, h.diariesCreate)
			diaries.GET("/public", h.notRequiredAuthMiddleware, h.diariesGetPublic)

			diary := diaries.Group("/:diaryID")
			{
				diary.GET("", h.notRequiredAuthMiddleware, h.diariesGetByID)
				diary.PUT("", h.authMiddleware, h.diariesUpdate)
				diary.DELETE("", h.authMiddleware, h.diariesDelete)
				diary.POST("/images", h.authMiddleware, h.diariesUploadImage)
				diary.POST("/add_comment", h.authMiddleware, h.diariesAddComment)
				diary.GET("/comments", h.notRequiredAuthMiddleware, h.diariesGetComments)
			}
		}

		tags := api.Group("/tags")
		{
			tags.GET("", h.tagsGet)
			tags.GET("/:tagID/diaries", h.tagsGetDiaries)
		}
	}

	return r
}

// respond wraps the payload into the response envelope exactly once, at the
// edge of the handler.
func (h *Handler) respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.Wrap(status, data))
}

func (h *Handler) respondErr(c *gin.Context, status int, err error) {
	h.respond(c, status, dto.Detail(err.Error()))
}

// fail maps a service error to its HTTP status and writes the envelope.
func (h *Handler) fail(c *gin.Context, err error) {
	h.respondErr(c, statusOf(err), err)
}

func actorID(c *gin.Context) (int64, bool) {
	id, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}

	userID, ok := id.(int64)
	return userID, ok
}

func optionalActorID(c *gin.Context) *int64 {
	if id, ok := actorID(c); ok {
		return &id
	}
	return nil
}
