package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leebenson/conform"
	"github.com/quillhq/quill/models"
)

const sessionMaxAge = 60 * 60 * 24

func (s *Server) handleSignupForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, "signup.html", gin.H{})
	}
}

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := c.ShouldBind(&user); err != nil {
			s.render(c, http.StatusOK, "signup.html", gin.H{
				"Error": "please fill in all fields correctly",
				"Form":  &user,
			})
			return
		}
		if err := conform.Strings(&user); err != nil {
			s.renderServerError(c)
			return
		}

		if _, err := s.AuthService.SignupUser(&user); err != nil {
			s.render(c, http.StatusOK, "signup.html", gin.H{
				"Error": err.Error(),
				"Form":  &user,
			})
			return
		}
		c.Redirect(http.StatusFound, "/auth/login")
	}
}

func (s *Server) handleLoginForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, "login.html", gin.H{
			"Next": c.Query("next"),
		})
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			s.render(c, http.StatusOK, "login.html", gin.H{
				"Error": "email and password are required",
				"Next":  c.PostForm("next"),
			})
			return
		}

		_, token, loginErr := s.AuthService.LoginUser(&req)
		if loginErr != nil {
			s.render(c, http.StatusOK, "login.html", gin.H{
				"Error": loginErr.Message,
				"Next":  c.PostForm("next"),
			})
			return
		}

		c.SetCookie(sessionCookie, token, sessionMaxAge, "/", "", false, true)

		next := c.PostForm("next")
		if next == "" || next[0] != '/' {
			next = "/"
		}
		c.Redirect(http.StatusFound, next)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := mustGetUser(c)
		token := c.GetString("access_token")
		if err := s.AuthService.LogoutUser(user.Email, token); err != nil {
			log.Printf("logout error for %s: %v", user.Email, err)
		}
		c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/")
	}
}

func (s *Server) handleForgotPasswordForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, "forgot_password.html", gin.H{})
	}
}

func (s *Server) handleResetPasswordForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, "reset_password.html", gin.H{
			"Token": c.Param("token"),
		})
	}
}

func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ForgotPassword
		if err := c.ShouldBind(&req); err != nil {
			s.render(c, http.StatusOK, "forgot_password.html", gin.H{
				"Error": "a valid email is required",
			})
			return
		}

		// Whether or not the address exists, respond the same way.
		if err := s.AuthService.SendEmailForPasswordReset(&req); err != nil {
			log.Printf("password reset mail error: %v", err)
		}
		s.render(c, http.StatusOK, "forgot_password.html", gin.H{
			"Sent": true,
		})
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")

		var req models.ResetPassword
		if err := c.ShouldBind(&req); err != nil {
			s.render(c, http.StatusOK, "reset_password.html", gin.H{
				"Error": "both password fields are required",
				"Token": token,
			})
			return
		}

		if err := s.AuthService.ResetPassword(&req, token); err != nil {
			s.render(c, http.StatusOK, "reset_password.html", gin.H{
				"Error": err.Message,
				"Token": token,
			})
			return
		}
		c.Redirect(http.StatusFound, "/auth/login")
	}
}
