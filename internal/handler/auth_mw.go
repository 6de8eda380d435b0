package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	jwtmanager "github.com/morf1lo/jwt-pair-manager"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		h.respondErr(c, http.StatusUnauthorized, errNotAuthorized)
		c.Abort()
		return
	}

	accessToken := strings.Split(header, " ")[1]
	if accessToken == "" {
		h.respondErr(c, http.StatusUnauthorized, errNotAuthorized)
		c.Abort()
		return
	}

	claims, err := jwtmanager.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		h.respondErr(c, http.StatusUnauthorized, errNotAuthorized)
		c.Abort()
		return
	}

	id, ok := claims["id"].(float64)
	if !ok {
		h.respondErr(c, http.StatusUnauthorized, errNotAuthorized)
		c.Abort()
		return
	}

	c.Set("user_id", int64(id))

	c.Next()
}
