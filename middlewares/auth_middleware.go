package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spokefoods/spoke-backend/models"
	"github.com/spokefoods/spoke-backend/utils"
)

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		// Websocket clients cannot set headers; allow ?token=.
		if t := c.Query("token"); t != "" {
			return t, nil
		}
		return "", errors.New("authorization header missing")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errors.New("invalid token format")
	}
	return strings.TrimPrefix(authHeader, "Bearer "), nil
}

// AuthMiddleware authenticates a customer token and stamps user_id onto the
// request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}
		if claims.Scope != utils.ScopeUser || claims.SubjectID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token scope"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.SubjectID)
		c.Next()
	}
}

// ChefAuthMiddleware authenticates a chef token, verifies the chef still
// exists and stamps chef_id onto the request context.
func ChefAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}
		if claims.Scope != utils.ScopeChef || claims.SubjectID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token scope"))
			c.Abort()
			return
		}

		var chef models.Chef
		if err := db.First(&chef, claims.SubjectID).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("chef not found"))
			c.Abort()
			return
		}

		c.Set("chef_id", claims.SubjectID)
		c.Next()
	}
}

// AdminMiddleware authenticates a user token and requires the admin flag,
// checked against the database like the rest of the account state.
func AdminMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}
		if claims.Scope != utils.ScopeUser {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token scope"))
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.SubjectID).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found"))
			c.Abort()
			return
		}
		if !user.IsAdmin {
			utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Next()
	}
}
