package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/forms"
)

func (s *Server) handleAddComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := mustGetUser(c)
		postID, ok := parseID(c.Param("id"))
		if !ok {
			s.renderNotFound(c)
			return
		}

		input := &forms.CommentInput{Text: c.PostForm("text")}
		fieldErrs, err := s.CommentService.AddComment(user.ID, postID, input)
		if err != nil {
			s.renderWorkflowError(c, err)
			return
		}
		if fieldErrs.Any() {
			// Invalid comments are dropped; the reader lands back on the post
			// as if the submission succeeded.
			log.Printf("discarding invalid comment on post %d: %v", postID, fieldErrs)
		}
		c.Redirect(http.StatusFound, postDetailPath(postID))
	}
}
