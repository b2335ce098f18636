package server

import (
	"log"
	"net/http"
	"net/url"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	errs "github.com/quillhq/quill/errors"
	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/services/jwt"
)

const sessionCookie = "quill_session"

// Authorize gates authenticated routes. Anonymous or stale sessions are
// redirected to the login form carrying the originally requested path in
// `next` so the user lands back where they started.
func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromRequest(c)
		if accessToken == "" {
			redirectToLogin(c)
			return
		}

		if s.AuthRepository.IsTokenInBlacklist(accessToken) {
			redirectToLogin(c)
			return
		}

		secret := s.Config.JWTSecret
		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, secret)
		if err != nil {
			redirectToLogin(c)
			return
		}

		userIDValue := accessClaims["id"]
		var userID uint
		switch v := userIDValue.(type) {
		case float64:
			userID = uint(v)
		default:
			redirectToLogin(c)
			return
		}

		user, err := s.AuthRepository.FindUserByID(userID)
		if err != nil {
			log.Printf("Authorize: user %d not found: %v", userID, err)
			redirectToLogin(c)
			return
		}

		c.Set("user", user)
		c.Set("userID", userID)
		c.Set("access_token", accessToken)
		c.Set("username", user.Username)
		c.Next()
	}
}

// currentUser resolves the identity on routes that serve anonymous visitors
// too; it returns nil rather than redirecting.
func (s *Server) currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	accessToken := getTokenFromRequest(c)
	if accessToken == "" || s.AuthRepository.IsTokenInBlacklist(accessToken) {
		return nil
	}
	accessClaims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
	if err != nil {
		return nil
	}
	idValue, ok := accessClaims["id"].(float64)
	if !ok {
		return nil
	}
	user, err := s.AuthRepository.FindUserByID(uint(idValue))
	if err != nil {
		return nil
	}
	c.Set("user", user)
	return user
}

func redirectToLogin(c *gin.Context) {
	next := url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, "/auth/login?next="+next)
	c.Abort()
}

func limitRateForAuth(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: errs.ErrorHandler,
		KeyFunc:      keyFunc,
	})
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

// getTokenFromRequest reads the session cookie, falling back to a bearer
// Authorization header.
func getTokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) > 8 {
		return authHeader[7:]
	}
	return ""
}
