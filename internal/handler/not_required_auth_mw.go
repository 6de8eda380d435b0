package handler

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	jwtmanager "github.com/morf1lo/jwt-pair-manager"
)

// notRequiredAuthMiddleware resolves the actor when a valid token is
// present and lets the request through anonymously otherwise.
func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.Next()
		return
	}

	accessToken := strings.Split(header, " ")[1]
	if accessToken == "" {
		c.Next()
		return
	}

	claims, err := jwtmanager.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		c.Next()
		return
	}

	if id, ok := claims["id"].(float64); ok {
		c.Set("user_id", int64(id))
	}

	c.Next()
}
