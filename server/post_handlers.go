package server

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quillhq/quill/cache"
	apiError "github.com/quillhq/quill/errors"
	"github.com/quillhq/quill/forms"
	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/pagination"
	"github.com/quillhq/quill/services"
)

// handleIndex serves the home page. The rendered bytes are cached under a
// fixed key for the configured window; a hit is replayed verbatim even when
// posts were written in between. New posts appear once the window expires.
func (s *Server) handleIndex() gin.HandlerFunc {
	return func(c *gin.Context) {
		if body, ok := s.PageCache.Get(cache.IndexKey); ok {
			c.Data(http.StatusOK, htmlContentType, body)
			return
		}

		page := pagination.ParsePageNumber(c.Query("page"))
		posts, pageMeta, err := s.PostService.ListPosts(page)
		if err != nil {
			s.renderServerError(c)
			return
		}

		body, err := s.renderToBytes("index.html", gin.H{
			"Posts": posts,
			"Page":  pageMeta,
			"User":  s.currentUser(c),
		})
		if err != nil {
			log.Printf("index render error: %v", err)
			s.renderServerError(c)
			return
		}
		s.PageCache.Set(cache.IndexKey, body)
		c.Data(http.StatusOK, htmlContentType, body)
	}
}

func (s *Server) handleGroupPosts() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		page := pagination.ParsePageNumber(c.Query("page"))

		group, posts, pageMeta, err := s.PostService.ListGroupPosts(slug, page)
		if err != nil {
			s.renderWorkflowError(c, err)
			return
		}
		s.render(c, http.StatusOK, "group_list.html", gin.H{
			"Group": group,
			"Posts": posts,
			"Page":  pageMeta,
		})
	}
}

func (s *Server) handleProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		page := pagination.ParsePageNumber(c.Query("page"))

		author, posts, pageMeta, err := s.PostService.ListAuthorPosts(username, page)
		if err != nil {
			s.renderWorkflowError(c, err)
			return
		}

		following := false
		if user := s.currentUser(c); user != nil {
			following, _ = s.FollowService.IsFollowing(user.ID, author.ID)
		}

		s.render(c, http.StatusOK, "profile.html", gin.H{
			"Author":    author,
			"Posts":     posts,
			"Page":      pageMeta,
			"Following": following,
		})
	}
}

func (s *Server) handlePostDetail() gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, ok := parseID(c.Param("id"))
		if !ok {
			s.renderNotFound(c)
			return
		}

		post, comments, err := s.PostService.GetPostDetail(postID)
		if err != nil {
			s.renderWorkflowError(c, err)
			return
		}
		s.render(c, http.StatusOK, "post_detail.html", gin.H{
			"Post":     post,
			"Comments": comments,
			"Form":     &forms.CommentInput{},
		})
	}
}

func (s *Server) handleCreatePostForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.renderPostForm(c, http.StatusOK, false, nil, &forms.PostInput{}, nil)
	}
}

func (s *Server) handleCreatePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := mustGetUser(c)
		input, image := bindPostInput(c)

		_, fieldErrs, err := s.PostService.CreatePost(user.ID, input, image)
		if err != nil {
			s.renderServerError(c)
			return
		}
		if fieldErrs.Any() {
			s.renderPostForm(c, http.StatusOK, false, nil, input, fieldErrs)
			return
		}
		c.Redirect(http.StatusFound, "/profile/"+user.Username)
	}
}

func (s *Server) handleEditPostForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := mustGetUser(c)
		postID, ok := parseID(c.Param("id"))
		if !ok {
			s.renderNotFound(c)
			return
		}

		post, _, err := s.PostService.GetPostDetail(postID)
		if err != nil {
			s.renderWorkflowError(c, err)
			return
		}
		if post.AuthorID != user.ID {
			c.Redirect(http.StatusFound, postDetailPath(postID))
			return
		}

		input := &forms.PostInput{Text: post.Text, GroupID: post.GroupID, Image: post.Image}
		s.renderPostForm(c, http.StatusOK, true, post, input, nil)
	}
}

func (s *Server) handleEditPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := mustGetUser(c)
		postID, ok := parseID(c.Param("id"))
		if !ok {
			s.renderNotFound(c)
			return
		}
		input, image := bindPostInput(c)

		post, fieldErrs, err := s.PostService.EditPost(user.ID, postID, input, image)
		if err != nil {
			if errors.Is(err, services.ErrNotPostAuthor) {
				// Non-authors are bounced to the detail page without modification.
				c.Redirect(http.StatusFound, postDetailPath(postID))
				return
			}
			s.renderWorkflowError(c, err)
			return
		}
		if fieldErrs.Any() {
			s.renderPostForm(c, http.StatusOK, true, post, input, fieldErrs)
			return
		}
		c.Redirect(http.StatusFound, postDetailPath(postID))
	}
}

func (s *Server) renderPostForm(c *gin.Context, status int, isEdit bool, post *models.Post, input *forms.PostInput, fieldErrs forms.FieldErrors) {
	groups, err := s.GroupRepository.GetAllGroups()
	if err != nil {
		s.renderServerError(c)
		return
	}
	s.render(c, status, "create_post.html", gin.H{
		"IsEdit": isEdit,
		"Post":   post,
		"Form":   input,
		"Errors": fieldErrs,
		"Groups": groups,
	})
}

// renderWorkflowError maps service errors to a response: 404 page on
// NotFound, generic error page otherwise.
func (s *Server) renderWorkflowError(c *gin.Context, err error) {
	if errors.Is(err, apiError.ErrNotFound) {
		s.renderNotFound(c)
		return
	}
	s.renderServerError(c)
}

func bindPostInput(c *gin.Context) (*forms.PostInput, *multipart.FileHeader) {
	input := &forms.PostInput{Text: c.PostForm("text")}
	if raw := c.PostForm("group_id"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			// Group 0 never exists, so an unparseable value surfaces the
			// same "group does not exist" field error as an unknown id.
			id = 0
		}
		input.GroupID = &id
	}
	// Image is optional; a missing file part is not an error.
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}
	return input, image
}

func mustGetUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func postDetailPath(postID uint) string {
	return fmt.Sprintf("/posts/%d", postID)
}
