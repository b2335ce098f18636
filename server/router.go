package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()

	// LoggerWithFormatter middleware will write the logs to gin.DefaultWriter
	// By default gin.DefaultWriter = os.Stdout
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Minute, Limit: 10})
	limitLogin := limitRateForAuth(store)

	router.GET("/", s.handleIndex())
	router.GET("/group/:slug", s.handleGroupPosts())
	router.GET("/profile/:username", s.handleProfile())
	router.GET("/posts/:id", s.handlePostDetail())

	router.GET("/auth/signup", s.handleSignupForm())
	router.POST("/auth/signup", s.handleSignup())
	router.GET("/auth/login", s.handleLoginForm())
	router.POST("/auth/login", limitLogin, s.handleLogin())
	router.GET("/password/forgot", s.handleForgotPasswordForm())
	router.POST("/password/forgot", limitLogin, s.HandleForgotPassword())
	router.GET("/password/reset/:token", s.handleResetPasswordForm())
	router.POST("/password/reset/:token", s.ResetPassword())

	authorized := router.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/auth/logout", s.handleLogout())
	authorized.GET("/create", s.handleCreatePostForm())
	authorized.POST("/create", s.handleCreatePost())
	authorized.GET("/posts/:id/edit", s.handleEditPostForm())
	authorized.POST("/posts/:id/edit", s.handleEditPost())
	authorized.POST("/posts/:id/comment", s.handleAddComment())
	authorized.GET("/follow", s.handleFollowIndex())
	authorized.GET("/profile/:username/follow", s.handleProfileFollow())
	authorized.GET("/profile/:username/unfollow", s.handleProfileUnfollow())
}
