package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskpulse/pkg/apierrors"
)

const userIDKey = "user_id"

// IdentityMiddleware reads the user id injected by the upstream
// authentication layer. Requests without a valid identity never reach
// the handlers.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		userID, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 64)
		if err != nil || userID == 0 {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) uint64 {
	if value, exists := c.Get(userIDKey); exists {
		if id, ok := value.(uint64); ok {
			return id
		}
	}
	return 0
}
