package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/pagination"
)

// handleFollowIndex shows the feed: posts by authors the signed-in user
// follows, newest first.
func (s *Server) handleFollowIndex() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := mustGetUser(c)
		page := pagination.ParsePageNumber(c.Query("page"))

		posts, pageMeta, err := s.FollowService.Feed(user.ID, page)
		if err != nil {
			s.renderServerError(c)
			return
		}
		s.render(c, http.StatusOK, "follow.html", gin.H{
			"Posts": posts,
			"Page":  pageMeta,
		})
	}
}

func (s *Server) handleProfileFollow() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := mustGetUser(c)
		username := c.Param("username")

		author, err := s.FollowService.FollowAuthor(user.ID, username)
		if err != nil {
			s.renderWorkflowError(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/profile/"+author.Username)
	}
}

func (s *Server) handleProfileUnfollow() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := mustGetUser(c)
		username := c.Param("username")

		author, err := s.FollowService.UnfollowAuthor(user.ID, username)
		if err != nil {
			s.renderWorkflowError(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/profile/"+author.Username)
	}
}
