package services

import (
	"errors"
	"log"

	"github.com/quillhq/quill/config"
	"github.com/quillhq/quill/db"
	apiError "github.com/quillhq/quill/errors"
	"github.com/quillhq/quill/forms"
	"github.com/quillhq/quill/models"
	"gorm.io/gorm"
)

// CommentService appends comments to posts. Validation failures are reported
// back but the caller redirects as if successful; the comment is simply
// dropped.
type CommentService interface {
	AddComment(authorID, postID uint, input *forms.CommentInput) (forms.FieldErrors, error)
}

type commentService struct {
	Config      *config.Config
	commentRepo db.CommentRepository
	postRepo    db.PostRepository
}

func NewCommentService(commentRepo db.CommentRepository, postRepo db.PostRepository, conf *config.Config) CommentService {
	return &commentService{
		Config:      conf,
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *commentService) AddComment(authorID, postID uint, input *forms.CommentInput) (forms.FieldErrors, error) {
	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		return nil, apiError.ErrInternalServerError
	}

	fieldErrs := forms.ValidateComment(input)
	if fieldErrs.Any() {
		return fieldErrs, nil
	}

	comment := &models.Comment{
		Text:     input.Text,
		AuthorID: authorID,
		PostID:   &post.ID,
	}
	if err := s.commentRepo.CreateComment(comment); err != nil {
		log.Printf("AddComment error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return nil, nil
}
